package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/engrdod-prog/outagelog"
	"github.com/engrdod-prog/outagelog/gen/queries"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

var testRecords = []outagelog.OutageRecord{
	{
		Id:              uuid.MustParse("97b6b60e-5fd9-4b4c-8b6b-25afd1f9ad49"),
		Date:            time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC),
		StartTime:       outagelog.MinuteOfDay(10 * 60),
		EndTime:         outagelog.MinuteOfDay(11 * 60),
		DurationMinutes: 60,
		FailureType:     outagelog.FailureTypePower,
		Remarks:         "breaker trip",
	},
	{
		Id:              uuid.MustParse("7b847f4a-c2b1-49ab-9f2b-0d6a11bb1e4e"),
		Date:            time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       outagelog.MinuteOfDay(8 * 60),
		EndTime:         outagelog.MinuteOfDay(8*60 + 30),
		DurationMinutes: 30,
		FailureType:     outagelog.FailureTypeLink,
	},
}

func Test_handleGetRecords(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		q          *mockQueries
		wantStatus int
		wantBody   string
	}{
		{
			"normal usage",
			"/records",
			&mockQueries{records: testRecords},
			http.StatusOK,
			`{"records":[{"id":"97b6b60e-5fd9-4b4c-8b6b-25afd1f9ad49","date":"2024-02-15T00:00:00Z","startTime":"10:00","endTime":"11:00","durationMinutes":60,"failureType":"Power","remarks":"breaker trip"},{"id":"7b847f4a-c2b1-49ab-9f2b-0d6a11bb1e4e","date":"2023-11-02T00:00:00Z","startTime":"08:00","endTime":"08:30","durationMinutes":30,"failureType":"Link","remarks":""}]}`,
		},
		{
			"an empty log yields an empty array",
			"/records",
			&mockQueries{},
			http.StatusOK,
			`{"records":[]}`,
		},
		{
			"year and month filters are forwarded to the query",
			"/records?year=2024&month=2",
			&mockQueries{records: testRecords},
			http.StatusOK,
			"",
		},
		{
			"non-integer year is a 400",
			"/records?year=twenty",
			&mockQueries{},
			http.StatusBadRequest,
			"'year' must be an integer",
		},
		{
			"out-of-range month is a 400",
			"/records?month=13",
			&mockQueries{},
			http.StatusBadRequest,
			"'month' must be an integer from 1 to 12",
		},
		{
			"a query failure is a 500",
			"/records",
			&mockQueries{err: fmt.Errorf("oh no")},
			http.StatusInternalServerError,
			"oh no",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Server{
				q:   tt.q,
				now: func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) },
			}
			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			res := httptest.NewRecorder()
			s.handleGetRecords(res, req)

			b, err := io.ReadAll(res.Body)
			assert.NoError(t, err)
			body := strings.TrimSuffix(string(b), "\n")
			assert.Equal(t, tt.wantStatus, res.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, body)
			}
		})
	}

	t.Run("filters reach the query layer", func(t *testing.T) {
		q := &mockQueries{records: testRecords}
		s := &Server{q: q, now: time.Now}
		req := httptest.NewRequest(http.MethodGet, "/records?year=2024&month=2", nil)
		res := httptest.NewRecorder()
		s.handleGetRecords(res, req)

		assert.True(t, q.lastParams.FilterYear.Valid)
		assert.Equal(t, int32(2024), q.lastParams.FilterYear.Int32)
		assert.True(t, q.lastParams.FilterMonth.Valid)
		assert.Equal(t, int32(2), q.lastParams.FilterMonth.Int32)
	})
}

func Test_handleGetSummary(t *testing.T) {
	// With "today" pinned to 2024-03-01, the 2024 record is YTD-eligible and
	// the 2023 record is not
	s := &Server{
		q:   &mockQueries{records: testRecords},
		now: func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) },
	}
	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	res := httptest.NewRecorder()
	s.handleGetSummary(res, req)

	assert.Equal(t, http.StatusOK, res.Code)
	var report outagelog.Report
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&report))

	assert.Len(t, report.Monthly, 2)
	assert.Equal(t, 2023, report.Monthly[0].Year)
	assert.Equal(t, 11, report.Monthly[0].Month)
	assert.Equal(t, 2024, report.Monthly[1].Year)
	assert.Equal(t, 2, report.Monthly[1].Month)
	assert.Equal(t, 29, report.Monthly[1].DaysInMonth)
	assert.Equal(t, 30450, report.Monthly[1].BroadcastMinutesBudget)

	assert.Len(t, report.Yearly, 2)
	assert.NotNil(t, report.YTD)
	assert.Equal(t, 2024, report.YTD.Year)
	assert.Equal(t, 61, report.YTD.DaysElapsed)
	assert.Equal(t, 60, report.YTD.TotalDowntimeMinutes)
	assert.Equal(t, 1, report.YTD.FailureCount)
	assert.NotNil(t, report.YTD.Projection)
}

func Test_handleGetSummary_emptyLog(t *testing.T) {
	s := &Server{
		q:   &mockQueries{},
		now: func() time.Time { return time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC) },
	}
	req := httptest.NewRequest(http.MethodGet, "/summary", nil)
	res := httptest.NewRecorder()
	s.handleGetSummary(res, req)

	b, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Equal(t, `{"monthly":[],"yearly":[]}`, strings.TrimSuffix(string(b), "\n"))
}

type mockQueries struct {
	records    []outagelog.OutageRecord
	err        error
	lastParams queries.GetOutageRecordsParams
}

func (m *mockQueries) GetOutageRecordsEx(ctx context.Context, arg queries.GetOutageRecordsParams) ([]outagelog.OutageRecord, error) {
	m.lastParams = arg
	if m.err != nil {
		return nil, m.err
	}
	out := make([]outagelog.OutageRecord, 0, len(m.records))
	for _, r := range m.records {
		if arg.FilterYear.Valid && int32(r.Date.Year()) != arg.FilterYear.Int32 {
			continue
		}
		if arg.FilterMonth.Valid && int32(r.Date.Month()) != arg.FilterMonth.Int32 {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
