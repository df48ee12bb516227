// Package validate enforces the entry rules for outage records: required
// fields, chronology, broadcast-window containment, and non-overlap with
// existing same-day records.
package validate

import (
	"fmt"

	"github.com/engrdod-prog/outagelog"
)

// RecordError describes why a record was rejected. It is a user-input error:
// recoverable, with no state mutated.
type RecordError struct {
	Reason string
}

func (e *RecordError) Error() string {
	return e.Reason
}

func rejected(format string, args ...interface{}) *RecordError {
	return &RecordError{Reason: fmt.Sprintf(format, args...)}
}

// Record checks a candidate record against the entry rules, in order, with
// the first failure winning. The existing set should hold the records already
// logged for the candidate's date; when editing, the candidate's own prior
// version is recognized by Id and excluded from the overlap check. A nil
// return means the record is acceptable; the caller is then responsible for
// computing DurationMinutes from the start and end times.
func Record(r outagelog.OutageRecord, existing []outagelog.OutageRecord) error {
	// Required fields. A zero MinuteOfDay means unset: 00:00 can never be a
	// legal start or end, since the broadcast window opens at 04:30.
	if r.Date.IsZero() {
		return rejected("missing field: date")
	}
	if r.StartTime == 0 {
		return rejected("missing field: start time")
	}
	if r.EndTime == 0 {
		return rejected("missing field: end time")
	}
	if r.FailureType == "" {
		return rejected("missing field: failure type")
	}
	if !r.FailureType.IsValid() {
		return rejected("unknown failure type %q", string(r.FailureType))
	}

	if r.EndTime <= r.StartTime {
		return rejected("end before start")
	}

	if r.StartTime < outagelog.BroadcastWindowStart || r.EndTime > outagelog.BroadcastWindowEnd {
		return rejected("outside broadcast hours")
	}

	day := r.Date.Year()*10000 + int(r.Date.Month())*100 + r.Date.Day()
	for _, other := range existing {
		if other.Id == r.Id {
			continue
		}
		otherDay := other.Date.Year()*10000 + int(other.Date.Month())*100 + other.Date.Day()
		if otherDay != day {
			continue
		}
		// Half-open intervals: touching boundaries is not overlap.
		if r.StartTime < other.EndTime && r.EndTime > other.StartTime {
			return rejected("overlaps existing record")
		}
	}

	return nil
}
