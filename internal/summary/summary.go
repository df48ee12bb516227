// Package summary converts the outage log into calendar-bucketed availability
// rollups against the fixed daily broadcast-minutes budget. Compute is a pure
// function of the record set: it never mutates its input and is cheap enough
// to rerun on every query.
package summary

import (
	"sort"
	"time"

	"github.com/engrdod-prog/outagelog"
)

type monthKey struct {
	year  int
	month time.Month
}

// Compute derives monthly and yearly summaries plus a year-to-date snapshot
// from the given record set. The today value anchors the YTD window; only its
// calendar date matters. Records whose date is unset are skipped rather than
// aborting the whole aggregation: the validator should prevent them from ever
// entering the set, so this is defense-in-depth only.
func Compute(records []outagelog.OutageRecord, today time.Time) outagelog.Report {
	report := outagelog.Report{
		Monthly: []outagelog.MonthlySummary{},
		Yearly:  []outagelog.YearlySummary{},
	}

	byMonth := make(map[monthKey][]outagelog.OutageRecord)
	byYear := make(map[int][]outagelog.OutageRecord)
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		k := monthKey{year: r.Date.Year(), month: r.Date.Month()}
		byMonth[k] = append(byMonth[k], r)
		byYear[k.year] = append(byYear[k.year], r)
	}

	monthKeys := make([]monthKey, 0, len(byMonth))
	for k := range byMonth {
		monthKeys = append(monthKeys, k)
	}
	sort.Slice(monthKeys, func(i, j int) bool {
		if monthKeys[i].year != monthKeys[j].year {
			return monthKeys[i].year < monthKeys[j].year
		}
		return monthKeys[i].month < monthKeys[j].month
	})
	for _, k := range monthKeys {
		group := byMonth[k]
		total := 0
		for _, r := range group {
			total += r.DurationMinutes
		}
		days := daysInMonth(k.year, k.month)
		budget := days * outagelog.BroadcastMinutesPerDay
		report.Monthly = append(report.Monthly, outagelog.MonthlySummary{
			Year:                   k.year,
			Month:                  int(k.month),
			MonthName:              k.month.String(),
			TotalDowntimeMinutes:   total,
			FailureCount:           len(group),
			AvgDowntimeMinutes:     float64(total) / float64(len(group)),
			DaysInMonth:            days,
			BroadcastMinutesBudget: budget,
			AvailabilityPercent:    availability(total, budget),
		})
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		group := byYear[y]
		total := 0
		max := group[0].DurationMinutes
		min := group[0].DurationMinutes
		for _, r := range group {
			total += r.DurationMinutes
			if r.DurationMinutes > max {
				max = r.DurationMinutes
			}
			if r.DurationMinutes < min {
				min = r.DurationMinutes
			}
		}
		days := 365
		if isLeapYear(y) {
			days = 366
		}
		budget := days * outagelog.BroadcastMinutesPerDay
		report.Yearly = append(report.Yearly, outagelog.YearlySummary{
			Year:                   y,
			TotalDowntimeMinutes:   total,
			FailureCount:           len(group),
			AvgDowntimeMinutes:     float64(total) / float64(len(group)),
			MaxDowntimeMinutes:     max,
			MinDowntimeMinutes:     min,
			MaxDowntimeHours:       float64(max) / 60,
			MinDowntimeHours:       float64(min) / 60,
			DaysInYear:             days,
			BroadcastMinutesBudget: budget,
			AvailabilityPercent:    availability(total, budget),
		})
	}

	report.YTD = computeYTD(byYear[today.Year()], today)
	return report
}

// computeYTD covers records in today's year dated on or before today. A nil
// result means there is no YTD data, which callers must distinguish from zero
// availability.
func computeYTD(yearRecords []outagelog.OutageRecord, today time.Time) *outagelog.YTDSummary {
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	total := 0
	count := 0
	for _, r := range yearRecords {
		recordDate := time.Date(r.Date.Year(), r.Date.Month(), r.Date.Day(), 0, 0, 0, 0, time.UTC)
		if recordDate.After(todayDate) {
			continue
		}
		total += r.DurationMinutes
		count++
	}
	if count == 0 {
		return nil
	}

	daysElapsed := todayDate.YearDay()
	budget := daysElapsed * outagelog.BroadcastMinutesPerDay
	ytd := &outagelog.YTDSummary{
		Year:                   today.Year(),
		DaysElapsed:            daysElapsed,
		BroadcastMinutesBudget: budget,
		TotalDowntimeMinutes:   total,
		AvailabilityPercent:    availability(total, budget),
		FailureCount:           count,
		AvgDowntimeMinutes:     float64(total) / float64(count),
	}

	// The projection extrapolates the observed daily downtime rate over a
	// fixed 365-day year. The source system ignored leap years here even
	// though the yearly summaries do not; that inconsistency is preserved.
	if daysElapsed < 365 {
		remaining := float64(total) / float64(daysElapsed) * float64(365-daysElapsed)
		projectedTotal := float64(total) + remaining
		fullBudget := float64(365 * outagelog.BroadcastMinutesPerDay)
		ytd.Projection = &outagelog.Projection{
			ProjectedTotalDowntimeMinutes: projectedTotal,
			ProjectedAvailabilityPercent:  100 * (fullBudget - projectedTotal) / fullBudget,
		}
	}
	return ytd
}

func availability(downtimeMinutes, budgetMinutes int) float64 {
	// Not clamped: downtime exceeding the budget yields a negative percentage,
	// surfacing a data-entry error instead of hiding it.
	return 100 * float64(budgetMinutes-downtimeMinutes) / float64(budgetMinutes)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
