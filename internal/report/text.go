package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/engrdod-prog/outagelog"
)

func (g *Generator) generateTextSummary(outputDir string, records []outagelog.OutageRecord, report outagelog.Report) error {
	file, err := os.Create(filepath.Join(outputDir, "summary.txt"))
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(file, "Transmitter Availability Report\n")
	fmt.Fprintf(file, "Generated: %s\n", g.now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(file, "Broadcast window: %s-%s (%d minutes/day)\n",
		outagelog.BroadcastWindowStart, outagelog.BroadcastWindowEnd, outagelog.BroadcastMinutesPerDay)
	fmt.Fprintf(file, "Records: %d\n\n", len(records))
	fmt.Fprintln(file, strings.Repeat("=", 60))

	if ytd := report.YTD; ytd != nil {
		fmt.Fprintln(file, "\nYEAR TO DATE")
		fmt.Fprintf(file, "  Year: %d (%d days elapsed)\n", ytd.Year, ytd.DaysElapsed)
		fmt.Fprintf(file, "  Availability: %.2f%% (%s)\n", ytd.AvailabilityPercent, outagelog.AvailabilityBand(ytd.AvailabilityPercent))
		fmt.Fprintf(file, "  Downtime: %.1f hours over %d failures\n", float64(ytd.TotalDowntimeMinutes)/60, ytd.FailureCount)
		if p := ytd.Projection; p != nil {
			fmt.Fprintf(file, "  Projected full-year availability: %.2f%%\n", p.ProjectedAvailabilityPercent)
		}
	} else {
		fmt.Fprintln(file, "\nYEAR TO DATE: no data")
	}

	fmt.Fprintln(file, "\nMONTHLY SUMMARY")
	if len(report.Monthly) == 0 {
		fmt.Fprintln(file, "  No monthly data.")
	}
	for _, m := range report.Monthly {
		fmt.Fprintf(file, "  %s %d: %.2f%% available, %d failures, %d minutes downtime (budget %d)\n",
			m.MonthName, m.Year, m.AvailabilityPercent, m.FailureCount, m.TotalDowntimeMinutes, m.BroadcastMinutesBudget)
	}

	fmt.Fprintln(file, "\nYEARLY SUMMARY")
	if len(report.Yearly) == 0 {
		fmt.Fprintln(file, "  No yearly data.")
	}
	for _, y := range report.Yearly {
		fmt.Fprintf(file, "  %d: %.2f%% available, %d failures, %d minutes downtime\n",
			y.Year, y.AvailabilityPercent, y.FailureCount, y.TotalDowntimeMinutes)
		fmt.Fprintf(file, "      longest outage %.1fh, shortest %.1fh, budget %d minutes over %d days\n",
			y.MaxDowntimeHours, y.MinDowntimeHours, y.BroadcastMinutesBudget, y.DaysInYear)
	}

	fmt.Fprintln(file, "\nFAILURE TYPES")
	counts := make(map[outagelog.FailureType]int)
	downtime := make(map[outagelog.FailureType]int)
	for _, r := range records {
		counts[r.FailureType]++
		downtime[r.FailureType] += r.DurationMinutes
	}
	for _, t := range outagelog.FailureTypes {
		if counts[t] == 0 {
			continue
		}
		fmt.Fprintf(file, "  %s: %d occurrences, %d minutes\n", t, counts[t], downtime[t])
	}

	fmt.Fprintln(file)
	fmt.Fprintln(file, strings.Repeat("=", 60))
	return nil
}
