package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/engrdod-prog/outagelog"
)

func (g *Generator) exportCSV(outputDir string, records []outagelog.OutageRecord, report outagelog.Report) error {
	if err := writeCSV(filepath.Join(outputDir, "outage_records.csv"), recordRows(records)); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(outputDir, "monthly_summary.csv"), monthlyRows(report.Monthly)); err != nil {
		return err
	}
	return writeCSV(filepath.Join(outputDir, "yearly_summary.csv"), yearlyRows(report.Yearly))
}

func writeCSV(filename string, rows [][]string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(filename), err)
	}
	return nil
}

func recordRows(records []outagelog.OutageRecord) [][]string {
	rows := [][]string{
		{"id", "date", "start_time", "end_time", "duration_minutes", "failure_type", "remarks"},
	}
	for _, r := range records {
		rows = append(rows, []string{
			r.Id.String(),
			r.Date.Format("2006-01-02"),
			r.StartTime.String(),
			r.EndTime.String(),
			strconv.Itoa(r.DurationMinutes),
			string(r.FailureType),
			r.Remarks,
		})
	}
	return rows
}

func monthlyRows(monthly []outagelog.MonthlySummary) [][]string {
	rows := [][]string{
		{"year", "month", "month_name", "total_downtime_minutes", "failure_count", "avg_downtime_minutes", "days_in_month", "broadcast_minutes_budget", "availability_percent"},
	}
	for _, m := range monthly {
		rows = append(rows, []string{
			strconv.Itoa(m.Year),
			strconv.Itoa(m.Month),
			m.MonthName,
			strconv.Itoa(m.TotalDowntimeMinutes),
			strconv.Itoa(m.FailureCount),
			formatFloat(m.AvgDowntimeMinutes),
			strconv.Itoa(m.DaysInMonth),
			strconv.Itoa(m.BroadcastMinutesBudget),
			formatFloat(m.AvailabilityPercent),
		})
	}
	return rows
}

func yearlyRows(yearly []outagelog.YearlySummary) [][]string {
	rows := [][]string{
		{"year", "total_downtime_minutes", "failure_count", "avg_downtime_minutes", "max_downtime_minutes", "min_downtime_minutes", "days_in_year", "broadcast_minutes_budget", "availability_percent"},
	}
	for _, y := range yearly {
		rows = append(rows, []string{
			strconv.Itoa(y.Year),
			strconv.Itoa(y.TotalDowntimeMinutes),
			strconv.Itoa(y.FailureCount),
			formatFloat(y.AvgDowntimeMinutes),
			strconv.Itoa(y.MaxDowntimeMinutes),
			strconv.Itoa(y.MinDowntimeMinutes),
			strconv.Itoa(y.DaysInYear),
			strconv.Itoa(y.BroadcastMinutesBudget),
			formatFloat(y.AvailabilityPercent),
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
