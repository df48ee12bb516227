package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/engrdod-prog/outagelog"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// generateAvailabilityChart plots the monthly availability trend with a
// dashed line marking the 99% target. go-chart needs at least two points per
// series, so the chart is skipped while fewer than two months have data.
func (g *Generator) generateAvailabilityChart(outputDir string, monthly []outagelog.MonthlySummary) error {
	if len(monthly) < 2 {
		g.log.Debug().Msg("Not enough monthly data for an availability chart; skipping")
		return nil
	}

	timestamps := make([]time.Time, 0, len(monthly))
	values := make([]float64, 0, len(monthly))
	targets := make([]float64, 0, len(monthly))
	for _, m := range monthly {
		timestamps = append(timestamps, time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC))
		values = append(values, m.AvailabilityPercent)
		targets = append(targets, outagelog.TargetAvailabilityPercent)
	}

	graph := chart.Chart{
		Title: "Monthly Availability Trend",
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Month",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2006"),
		},
		YAxis: chart.YAxis{
			Name: "Availability (%)",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Availability %",
				Style: chart.Style{
					StrokeColor: chart.GetDefaultColor(0),
					StrokeWidth: 2,
				},
				XValues: timestamps,
				YValues: values,
			},
			chart.TimeSeries{
				Name: "Target 99%",
				Style: chart.Style{
					StrokeColor:     drawing.Color{R: 214, G: 39, B: 40, A: 255},
					StrokeWidth:     2,
					StrokeDashArray: []float64{5, 5},
				},
				XValues: timestamps,
				YValues: targets,
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	file, err := os.Create(filepath.Join(outputDir, "availability_trend.png"))
	if err != nil {
		return err
	}
	defer file.Close()
	return graph.Render(chart.PNG, file)
}

// generateDowntimeTrendChart plots total downtime hours per day across the
// record set. Like the availability chart, it needs at least two distinct
// days with data.
func (g *Generator) generateDowntimeTrendChart(outputDir string, records []outagelog.OutageRecord) error {
	minutesByDay := make(map[time.Time]int)
	for _, r := range records {
		if r.Date.IsZero() {
			continue
		}
		minutesByDay[r.Date] += r.DurationMinutes
	}
	if len(minutesByDay) < 2 {
		g.log.Debug().Msg("Not enough daily data for a downtime trend chart; skipping")
		return nil
	}

	days := make([]time.Time, 0, len(minutesByDay))
	for day := range minutesByDay {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	hours := make([]float64, 0, len(days))
	for _, day := range days {
		hours = append(hours, float64(minutesByDay[day])/60.0)
	}

	graph := chart.Chart{
		Title: "Daily Downtime Trend",
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Date",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis: chart.YAxis{
			Name: "Downtime (hours)",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name: "Daily Downtime (Hours)",
				Style: chart.Style{
					StrokeColor: drawing.Color{R: 214, G: 39, B: 40, A: 255},
					StrokeWidth: 2,
					DotWidth:    3,
					DotColor:    drawing.Color{R: 214, G: 39, B: 40, A: 255},
				},
				XValues: days,
				YValues: hours,
			},
		},
	}
	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	file, err := os.Create(filepath.Join(outputDir, "daily_downtime_trend.png"))
	if err != nil {
		return err
	}
	defer file.Close()
	return graph.Render(chart.PNG, file)
}

// generateHourlyAnalysisCharts buckets outages by the hour of day they began
// and draws two charts: outage count per hour and total downtime minutes per
// hour. Apart from the subplot layout, this mirrors the original hourly
// analysis pair.
func (g *Generator) generateHourlyAnalysisCharts(outputDir string, records []outagelog.OutageRecord) error {
	var counts, minutes [24]int
	any := false
	for _, r := range records {
		hour := int(r.StartTime) / 60
		if hour < 0 || hour > 23 {
			continue
		}
		counts[hour]++
		minutes[hour] += r.DurationMinutes
		any = true
	}
	if !any {
		g.log.Debug().Msg("No records for hourly analysis charts; skipping")
		return nil
	}

	var countBars, downtimeBars []chart.Value
	for hour := 0; hour < 24; hour++ {
		if counts[hour] == 0 {
			continue
		}
		label := fmt.Sprintf("%02d:00", hour)
		countBars = append(countBars, chart.Value{
			Label: label,
			Value: float64(counts[hour]),
		})
		downtimeBars = append(downtimeBars, chart.Value{
			Label: label,
			Value: float64(minutes[hour]),
		})
	}

	if err := g.renderHourlyBarChart(outputDir, "hourly_outage_counts.png", "Outage Count by Hour", countBars); err != nil {
		return err
	}
	return g.renderHourlyBarChart(outputDir, "hourly_downtime_minutes.png", "Total Downtime by Hour", downtimeBars)
}

func (g *Generator) renderHourlyBarChart(outputDir, filename, title string, bars []chart.Value) error {
	graph := chart.BarChart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    1200,
		Height:   400,
		Bars:     bars,
		BarWidth: 60,
	}

	file, err := os.Create(filepath.Join(outputDir, filename))
	if err != nil {
		return err
	}
	defer file.Close()
	return graph.Render(chart.PNG, file)
}

// generateFailureTypeChart draws the failure-count distribution across the
// fixed failure types.
func (g *Generator) generateFailureTypeChart(outputDir string, records []outagelog.OutageRecord) error {
	counts := make(map[outagelog.FailureType]int)
	for _, r := range records {
		counts[r.FailureType]++
	}
	if len(counts) == 0 {
		g.log.Debug().Msg("No records for a failure type chart; skipping")
		return nil
	}

	var bars []chart.Value
	for _, t := range outagelog.FailureTypes {
		if counts[t] == 0 {
			continue
		}
		bars = append(bars, chart.Value{
			Label: string(t),
			Value: float64(counts[t]),
		})
	}

	graph := chart.BarChart{
		Title: "Failure Type Distribution",
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:    1200,
		Height:   400,
		Bars:     bars,
		BarWidth: 60,
	}

	file, err := os.Create(filepath.Join(outputDir, "failure_types.png"))
	if err != nil {
		return err
	}
	defer file.Close()
	return graph.Render(chart.PNG, file)
}
