package state

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/engrdod-prog/outagelog"
	"github.com/engrdod-prog/outagelog/gen/queries"
	"github.com/engrdod-prog/outagelog/internal/rmq"
	"github.com/engrdod-prog/outagelog/internal/validate"
	"github.com/google/uuid"
)

var ErrRecordNotFound = errors.New("no such outage record")

// RecordParams carries the operator-editable fields of an outage record.
// Duration is always derived here, never accepted from the caller.
type RecordParams struct {
	Date        time.Time
	StartTime   outagelog.MinuteOfDay
	EndTime     outagelog.MinuteOfDay
	FailureType outagelog.FailureType
	Remarks     string
}

// Queries is the subset of the generated queries used by the writer.
type Queries interface {
	GetOutageRecordsForDateEx(ctx context.Context, day time.Time) ([]outagelog.OutageRecord, error)
	GetOutageRecordEx(ctx context.Context, id uuid.UUID) (outagelog.OutageRecord, error)
	RecordOutage(ctx context.Context, arg queries.RecordOutageParams) (queries.OutagelogOutage, error)
	UpdateOutage(ctx context.Context, arg queries.UpdateOutageParams) (sql.Result, error)
	DeleteOutage(ctx context.Context, id uuid.UUID) (sql.Result, error)
}

// Writer authoritatively modifies the outage log: every change is validated
// against the same-day record set, written to the DB, and propagated to the
// outage-events queue.
type Writer interface {
	RecordOutage(ctx context.Context, params RecordParams) (*outagelog.OutageRecord, error)
	UpdateOutage(ctx context.Context, id uuid.UUID, params RecordParams) (*outagelog.OutageRecord, error)
	DeleteOutage(ctx context.Context, id uuid.UUID) error
}

func NewWriter(q Queries, producer rmq.Producer) Writer {
	return &writer{
		q:        q,
		producer: producer,
	}
}

type writer struct {
	q        Queries
	producer rmq.Producer
}

func (w *writer) RecordOutage(ctx context.Context, params RecordParams) (*outagelog.OutageRecord, error) {
	candidate := recordFromParams(uuid.Nil, params)

	// Validate against the records already logged for that day
	sameDay, err := w.q.GetOutageRecordsForDateEx(ctx, candidate.Date)
	if err != nil {
		return nil, err
	}
	if err := validate.Record(candidate, sameDay); err != nil {
		return nil, err
	}

	row, err := w.q.RecordOutage(ctx, queries.RecordOutageParams{
		OccurredOn:      candidate.Date,
		StartMinute:     int32(candidate.StartTime),
		EndMinute:       int32(candidate.EndTime),
		DurationMinutes: int32(candidate.DurationMinutes),
		FailureType:     string(candidate.FailureType),
		Remarks:         candidate.Remarks,
	})
	if err != nil {
		return nil, err
	}
	candidate.Id = row.ID

	// Produce an event to the outage-events queue so that downstream
	// consumers (report regeneration, dashboards) see the change
	if err := w.produce(ctx, &outagelog.Event{
		Type:     outagelog.EventTypeOutageRecorded,
		RecordId: candidate.Id,
		Record:   &candidate,
	}); err != nil {
		return nil, err
	}

	return &candidate, nil
}

func (w *writer) UpdateOutage(ctx context.Context, id uuid.UUID, params RecordParams) (*outagelog.OutageRecord, error) {
	// Require that the record exists before validating the edit
	if _, err := w.q.GetOutageRecordEx(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	candidate := recordFromParams(id, params)

	// Validate against the same-day set; the overlap check recognizes the
	// record's own ID and skips it
	sameDay, err := w.q.GetOutageRecordsForDateEx(ctx, candidate.Date)
	if err != nil {
		return nil, err
	}
	if err := validate.Record(candidate, sameDay); err != nil {
		return nil, err
	}

	result, err := w.q.UpdateOutage(ctx, queries.UpdateOutageParams{
		ID:              id,
		OccurredOn:      candidate.Date,
		StartMinute:     int32(candidate.StartTime),
		EndMinute:       int32(candidate.EndTime),
		DurationMinutes: int32(candidate.DurationMinutes),
		FailureType:     string(candidate.FailureType),
		Remarks:         candidate.Remarks,
	})
	if err != nil {
		return nil, err
	}
	if err := requireOneRow(result); err != nil {
		return nil, err
	}

	if err := w.produce(ctx, &outagelog.Event{
		Type:     outagelog.EventTypeOutageUpdated,
		RecordId: id,
		Record:   &candidate,
	}); err != nil {
		return nil, err
	}

	return &candidate, nil
}

func (w *writer) DeleteOutage(ctx context.Context, id uuid.UUID) error {
	result, err := w.q.DeleteOutage(ctx, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrRecordNotFound
	}

	return w.produce(ctx, &outagelog.Event{
		Type:     outagelog.EventTypeOutageDeleted,
		RecordId: id,
	})
}

func recordFromParams(id uuid.UUID, params RecordParams) outagelog.OutageRecord {
	r := outagelog.OutageRecord{
		Id:          id,
		StartTime:   params.StartTime,
		EndTime:     params.EndTime,
		FailureType: params.FailureType,
		Remarks:     params.Remarks,
	}
	if !params.Date.IsZero() {
		r.Date = time.Date(params.Date.Year(), params.Date.Month(), params.Date.Day(), 0, 0, 0, 0, time.UTC)
	}
	if params.EndTime > params.StartTime {
		r.DurationMinutes = int(params.EndTime - params.StartTime)
	}
	return r
}

func requireOneRow(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n != int64(1) {
		return fmt.Errorf("failed to update outage record: expected to affect 1 rows; instead affected %d", n)
	}
	return nil
}

func (w *writer) produce(ctx context.Context, ev *outagelog.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return w.producer.Send(ctx, data)
}
