package outagelog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// The transmitter signs on at 04:30 and off at 22:00, giving 17.5 hours (1050
// minutes) of scheduled airtime per day. Outages are only trackable inside
// that window.
const (
	BroadcastWindowStart   = MinuteOfDay(4*60 + 30)
	BroadcastWindowEnd     = MinuteOfDay(22 * 60)
	BroadcastMinutesPerDay = int(BroadcastWindowEnd - BroadcastWindowStart)

	// TargetAvailabilityPercent is used for display banding only; it never
	// feeds into any computed summary.
	TargetAvailabilityPercent = 99.0
)

// MinuteOfDay is a clock time with minute resolution, counted from midnight.
// It serializes as "HH:MM".
type MinuteOfDay int

func ParseMinuteOfDay(s string) (MinuteOfDay, error) {
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid time %q: bad hour", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q: bad minute", s)
	}
	return MinuteOfDay(h*60 + m), nil
}

func (m MinuteOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

func (m MinuteOfDay) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(m.String())), nil
}

func (m *MinuteOfDay) UnmarshalJSON(data []byte) error {
	s, err := strconv.Unquote(string(data))
	if err != nil {
		return fmt.Errorf("invalid time value %s", data)
	}
	parsed, err := ParseMinuteOfDay(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// FailureType categorizes the root cause of an outage.
type FailureType string

const (
	FailureTypePower       FailureType = "Power"
	FailureTypeTransmitter FailureType = "Transmitter"
	FailureTypeLink        FailureType = "Link"
	FailureTypeAntenna     FailureType = "Antenna"
	FailureTypeAudio       FailureType = "Audio"
	FailureTypeOther       FailureType = "Other"
)

// FailureTypes lists every valid failure type, in display order.
var FailureTypes = []FailureType{
	FailureTypePower,
	FailureTypeTransmitter,
	FailureTypeLink,
	FailureTypeAntenna,
	FailureTypeAudio,
	FailureTypeOther,
}

func (t FailureType) IsValid() bool {
	for _, v := range FailureTypes {
		if t == v {
			return true
		}
	}
	return false
}

// OutageRecord is one logged downtime incident. Date carries no time-of-day
// component; StartTime and EndTime are minute-of-day values within the
// broadcast window. DurationMinutes is always derived from StartTime and
// EndTime, never edited independently.
type OutageRecord struct {
	Id              uuid.UUID   `json:"id"`
	Date            time.Time   `json:"date"`
	StartTime       MinuteOfDay `json:"startTime"`
	EndTime         MinuteOfDay `json:"endTime"`
	DurationMinutes int         `json:"durationMinutes"`
	FailureType     FailureType `json:"failureType"`
	Remarks         string      `json:"remarks"`
}

// MonthlySummary is the availability rollup for one (year, month) bucket,
// recomputed on demand from the record set.
type MonthlySummary struct {
	Year                   int     `json:"year"`
	Month                  int     `json:"month"`
	MonthName              string  `json:"monthName"`
	TotalDowntimeMinutes   int     `json:"totalDowntimeMinutes"`
	FailureCount           int     `json:"failureCount"`
	AvgDowntimeMinutes     float64 `json:"avgDowntimeMinutes"`
	DaysInMonth            int     `json:"daysInMonth"`
	BroadcastMinutesBudget int     `json:"broadcastMinutesBudget"`
	AvailabilityPercent    float64 `json:"availabilityPercent"`
}

// YearlySummary is the availability rollup for one calendar year.
type YearlySummary struct {
	Year                   int     `json:"year"`
	TotalDowntimeMinutes   int     `json:"totalDowntimeMinutes"`
	FailureCount           int     `json:"failureCount"`
	AvgDowntimeMinutes     float64 `json:"avgDowntimeMinutes"`
	MaxDowntimeMinutes     int     `json:"maxDowntimeMinutes"`
	MinDowntimeMinutes     int     `json:"minDowntimeMinutes"`
	MaxDowntimeHours       float64 `json:"maxDowntimeHours"`
	MinDowntimeHours       float64 `json:"minDowntimeHours"`
	DaysInYear             int     `json:"daysInYear"`
	BroadcastMinutesBudget int     `json:"broadcastMinutesBudget"`
	AvailabilityPercent    float64 `json:"availabilityPercent"`
}

// Projection is a linear extrapolation of the YTD downtime rate out to a full
// year. It intentionally uses a fixed 365-day denominator regardless of leap
// years, and is display-only: it never feeds back into stored summaries.
type Projection struct {
	ProjectedTotalDowntimeMinutes float64 `json:"projectedTotalDowntimeMinutes"`
	ProjectedAvailabilityPercent  float64 `json:"projectedAvailabilityPercent"`
}

// YTDSummary covers the current calendar year from January 1 through today
// inclusive. Projection is nil once the year has fully elapsed.
type YTDSummary struct {
	Year                   int         `json:"year"`
	DaysElapsed            int         `json:"daysElapsed"`
	BroadcastMinutesBudget int         `json:"broadcastMinutesBudget"`
	TotalDowntimeMinutes   int         `json:"totalDowntimeMinutes"`
	AvailabilityPercent    float64     `json:"availabilityPercent"`
	FailureCount           int         `json:"failureCount"`
	AvgDowntimeMinutes     float64     `json:"avgDowntimeMinutes"`
	Projection             *Projection `json:"projection,omitempty"`
}

// Report is the full set of derived summaries for a record set. YTD is nil
// when the current year has no qualifying records; callers must treat that as
// "no YTD data" rather than zero availability.
type Report struct {
	Monthly []MonthlySummary `json:"monthly"`
	Yearly  []YearlySummary  `json:"yearly"`
	YTD     *YTDSummary      `json:"ytd,omitempty"`
}

// AvailabilityBand maps an availability percentage onto the operator-facing
// status banding around the 99% target.
func AvailabilityBand(pct float64) string {
	switch {
	case pct >= 99.5:
		return "excellent"
	case pct >= TargetAvailabilityPercent:
		return "good"
	default:
		return "needs attention"
	}
}

type EventType string

const (
	EventTypeOutageRecorded EventType = "outage_recorded"
	EventTypeOutageUpdated  EventType = "outage_updated"
	EventTypeOutageDeleted  EventType = "outage_deleted"
)

// Event is the message produced to the outage-events queue whenever the log
// changes. Record is nil for deletions.
type Event struct {
	Type     EventType     `json:"type"`
	RecordId uuid.UUID     `json:"recordId"`
	Record   *OutageRecord `json:"record,omitempty"`
}
