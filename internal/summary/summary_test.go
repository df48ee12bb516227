package summary

import (
	"testing"
	"time"

	"github.com/engrdod-prog/outagelog"
	"github.com/stretchr/testify/assert"
)

func record(date time.Time, start, end outagelog.MinuteOfDay, failureType outagelog.FailureType) outagelog.OutageRecord {
	return outagelog.OutageRecord{
		Date:            date,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: int(end - start),
		FailureType:     failureType,
	}
}

func Test_Compute_emptyInput(t *testing.T) {
	report := Compute(nil, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, []outagelog.MonthlySummary{}, report.Monthly)
	assert.Equal(t, []outagelog.YearlySummary{}, report.Yearly)
	assert.Nil(t, report.YTD)
}

func Test_Compute_monthlyLeapFebruary(t *testing.T) {
	// A single 60-minute outage in February of a leap year: 29 days in the
	// month, a budget of 29 * 1050 = 30450 minutes, and availability of
	// 100 * (30450 - 60) / 30450.
	records := []outagelog.OutageRecord{
		record(time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), 10*60, 11*60, outagelog.FailureTypePower),
	}
	report := Compute(records, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC))

	assert.Len(t, report.Monthly, 1)
	m := report.Monthly[0]
	assert.Equal(t, 2024, m.Year)
	assert.Equal(t, 2, m.Month)
	assert.Equal(t, "February", m.MonthName)
	assert.Equal(t, 29, m.DaysInMonth)
	assert.Equal(t, 30450, m.BroadcastMinutesBudget)
	assert.Equal(t, 60, m.TotalDowntimeMinutes)
	assert.Equal(t, 1, m.FailureCount)
	assert.Equal(t, 60.0, m.AvgDowntimeMinutes)
	assert.InDelta(t, 100*float64(30450-60)/30450, m.AvailabilityPercent, 1e-9)
	assert.InDelta(t, 99.803, m.AvailabilityPercent, 0.001)
}

func Test_Compute_monthlySortedAscending(t *testing.T) {
	records := []outagelog.OutageRecord{
		record(time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypeLink),
		record(time.Date(2023, 11, 2, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypePower),
		record(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypeAudio),
		record(time.Date(2023, 2, 14, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypeAntenna),
	}
	report := Compute(records, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))

	assert.Len(t, report.Monthly, 4)
	var got [][2]int
	for _, m := range report.Monthly {
		got = append(got, [2]int{m.Year, m.Month})
	}
	assert.Equal(t, [][2]int{{2023, 2}, {2023, 11}, {2024, 1}, {2024, 3}}, got)
}

func Test_Compute_yearly(t *testing.T) {
	records := []outagelog.OutageRecord{
		record(time.Date(2023, 1, 5, 0, 0, 0, 0, time.UTC), 9*60, 9*60+30, outagelog.FailureTypePower),    // 30m
		record(time.Date(2023, 6, 10, 0, 0, 0, 0, time.UTC), 12*60, 14*60, outagelog.FailureTypeLink),     // 120m
		record(time.Date(2023, 9, 1, 0, 0, 0, 0, time.UTC), 15*60, 15*60+45, outagelog.FailureTypeAudio),  // 45m
		record(time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypeTransmitter), // 60m
	}
	report := Compute(records, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	assert.Len(t, report.Yearly, 2)

	y2023 := report.Yearly[0]
	assert.Equal(t, 2023, y2023.Year)
	assert.Equal(t, 195, y2023.TotalDowntimeMinutes)
	assert.Equal(t, 3, y2023.FailureCount)
	assert.Equal(t, 65.0, y2023.AvgDowntimeMinutes)
	assert.Equal(t, 120, y2023.MaxDowntimeMinutes)
	assert.Equal(t, 30, y2023.MinDowntimeMinutes)
	assert.Equal(t, 2.0, y2023.MaxDowntimeHours)
	assert.Equal(t, 0.5, y2023.MinDowntimeHours)
	assert.Equal(t, 365, y2023.DaysInYear)
	assert.Equal(t, 365*1050, y2023.BroadcastMinutesBudget)
	assert.InDelta(t, 100*float64(365*1050-195)/float64(365*1050), y2023.AvailabilityPercent, 1e-9)

	y2024 := report.Yearly[1]
	assert.Equal(t, 366, y2024.DaysInYear)
	assert.Equal(t, 366*1050, y2024.BroadcastMinutesBudget)
}

func Test_Compute_centuryLeapRule(t *testing.T) {
	records := []outagelog.OutageRecord{
		record(time.Date(2000, 5, 1, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypePower),
		record(time.Date(2100, 5, 1, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypePower),
	}
	report := Compute(records, time.Date(2101, 1, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 366, report.Yearly[0].DaysInYear) // divisible by 400
	assert.Equal(t, 365, report.Yearly[1].DaysInYear) // divisible by 100 but not 400
}

func Test_Compute_ytd(t *testing.T) {
	today := time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC) // day 101 of a leap year
	records := []outagelog.OutageRecord{
		record(time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypePower),  // 60m, counted
		record(time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC), 9*60, 9*60+40, outagelog.FailureTypeLink), // 40m, today inclusive
		record(time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypeAudio),  // future, excluded
		record(time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypePower),  // prior year, excluded
	}
	report := Compute(records, today)

	assert.NotNil(t, report.YTD)
	ytd := report.YTD
	assert.Equal(t, 2024, ytd.Year)
	assert.Equal(t, 101, ytd.DaysElapsed)
	assert.Equal(t, 101*1050, ytd.BroadcastMinutesBudget)
	assert.Equal(t, 100, ytd.TotalDowntimeMinutes)
	assert.Equal(t, 2, ytd.FailureCount)
	assert.Equal(t, 50.0, ytd.AvgDowntimeMinutes)
	assert.InDelta(t, 100*float64(101*1050-100)/float64(101*1050), ytd.AvailabilityPercent, 1e-9)
	assert.NotNil(t, ytd.Projection)
}

func Test_Compute_ytdAbsentWithoutCurrentYearRecords(t *testing.T) {
	records := []outagelog.OutageRecord{
		record(time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypePower),
	}
	report := Compute(records, time.Date(2024, 4, 10, 0, 0, 0, 0, time.UTC))
	assert.Len(t, report.Yearly, 1)
	assert.Nil(t, report.YTD)
}

func Test_Compute_projection(t *testing.T) {
	// 500 minutes of downtime after 100 days projects to 500/100*265 = 1325
	// more minutes, 1825 total, against a fixed 365-day budget.
	today := time.Date(2023, 4, 10, 0, 0, 0, 0, time.UTC) // day 100 of a non-leap year
	records := []outagelog.OutageRecord{
		record(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), 9*60, 9*60+500, outagelog.FailureTypePower),
	}
	report := Compute(records, today)

	assert.NotNil(t, report.YTD)
	assert.Equal(t, 100, report.YTD.DaysElapsed)
	p := report.YTD.Projection
	assert.NotNil(t, p)
	assert.InDelta(t, 1825.0, p.ProjectedTotalDowntimeMinutes, 1e-9)
	fullBudget := float64(365 * 1050)
	assert.InDelta(t, 100*(fullBudget-1825)/fullBudget, p.ProjectedAvailabilityPercent, 1e-9)
}

func Test_Compute_noProjectionAfterDay365(t *testing.T) {
	today := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC) // day 365
	records := []outagelog.OutageRecord{
		record(time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypePower),
	}
	report := Compute(records, today)
	assert.NotNil(t, report.YTD)
	assert.Nil(t, report.YTD.Projection)
}

func Test_Compute_skipsRecordsWithoutDates(t *testing.T) {
	records := []outagelog.OutageRecord{
		{StartTime: 9 * 60, EndTime: 10 * 60, DurationMinutes: 60, FailureType: outagelog.FailureTypePower},
		record(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 9*60, 10*60, outagelog.FailureTypeLink),
	}
	report := Compute(records, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	assert.Len(t, report.Monthly, 1)
	assert.Equal(t, 60, report.Monthly[0].TotalDowntimeMinutes)
	assert.Equal(t, 1, report.Monthly[0].FailureCount)
}

func Test_Compute_availabilityNotClamped(t *testing.T) {
	// Pathological data entry where downtime exceeds the budget must surface
	// as a negative percentage, not get clamped to zero.
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var records []outagelog.OutageRecord
	for i := 0; i < 31; i++ {
		r := record(date.AddDate(0, 0, i), outagelog.BroadcastWindowStart, outagelog.BroadcastWindowEnd, outagelog.FailureTypeOther)
		r.DurationMinutes = 2 * outagelog.BroadcastMinutesPerDay
		records = append(records, r)
	}
	report := Compute(records, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	assert.Less(t, report.Monthly[0].AvailabilityPercent, 0.0)
}
