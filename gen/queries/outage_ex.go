package queries

import (
	"context"
	"time"

	"github.com/engrdod-prog/outagelog"
	"github.com/google/uuid"
)

// toRecord converts a DB row into the wire/domain representation of an outage
// record, normalizing the stored date to midnight UTC.
func toRecord(row OutagelogOutage) outagelog.OutageRecord {
	return outagelog.OutageRecord{
		Id:              row.ID,
		Date:            time.Date(row.OccurredOn.Year(), row.OccurredOn.Month(), row.OccurredOn.Day(), 0, 0, 0, 0, time.UTC),
		StartTime:       outagelog.MinuteOfDay(row.StartMinute),
		EndTime:         outagelog.MinuteOfDay(row.EndMinute),
		DurationMinutes: int(row.DurationMinutes),
		FailureType:     outagelog.FailureType(row.FailureType),
		Remarks:         row.Remarks,
	}
}

func (q *Queries) GetOutageRecordsEx(ctx context.Context, arg GetOutageRecordsParams) ([]outagelog.OutageRecord, error) {
	rows, err := q.GetOutageRecords(ctx, arg)
	if err != nil {
		return nil, err
	}
	records := make([]outagelog.OutageRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}
	return records, nil
}

func (q *Queries) GetOutageRecordsForDateEx(ctx context.Context, day time.Time) ([]outagelog.OutageRecord, error) {
	rows, err := q.GetOutageRecordsForDate(ctx, day)
	if err != nil {
		return nil, err
	}
	records := make([]outagelog.OutageRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, toRecord(row))
	}
	return records, nil
}

func (q *Queries) GetOutageRecordEx(ctx context.Context, id uuid.UUID) (outagelog.OutageRecord, error) {
	row, err := q.GetOutageRecord(ctx, id)
	if err != nil {
		return outagelog.OutageRecord{}, err
	}
	return toRecord(row), nil
}
