// Package report renders the outage log and its availability summaries into
// shareable artifacts: PNG charts, a plain-text summary, and CSV exports.
package report

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/engrdod-prog/outagelog"
	"github.com/engrdod-prog/outagelog/gen/queries"
	"github.com/engrdod-prog/outagelog/internal/summary"
	"github.com/rs/zerolog"
)

type Queries interface {
	GetOutageRecordsEx(ctx context.Context, arg queries.GetOutageRecordsParams) ([]outagelog.OutageRecord, error)
}

// Generator produces report bundles from the current record set.
type Generator struct {
	q   Queries
	log zerolog.Logger
	now func() time.Time
}

func NewGenerator(q Queries, log zerolog.Logger) *Generator {
	return &Generator{
		q:   q,
		log: log,
		now: time.Now,
	}
}

// GenerateReport fetches the full record set and writes a timestamped report
// directory under outputDir. Individual artifacts that fail to render are
// logged and skipped so that one bad chart doesn't sink the whole bundle.
func (g *Generator) GenerateReport(ctx context.Context, outputDir string) (string, error) {
	records, err := g.q.GetOutageRecordsEx(ctx, queries.GetOutageRecordsParams{})
	if err != nil {
		return "", fmt.Errorf("failed to load outage records: %w", err)
	}
	report := summary.Compute(records, g.now())

	reportDir := filepath.Join(outputDir, fmt.Sprintf("outage_report_%s", g.now().Format("2006-01-02_15-04-05")))
	if err := os.MkdirAll(reportDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report directory: %w", err)
	}

	if err := g.generateAvailabilityChart(reportDir, report.Monthly); err != nil {
		g.log.Error().Err(err).Msg("Failed to generate availability chart")
	}
	if err := g.generateFailureTypeChart(reportDir, records); err != nil {
		g.log.Error().Err(err).Msg("Failed to generate failure type chart")
	}
	if err := g.generateDowntimeTrendChart(reportDir, records); err != nil {
		g.log.Error().Err(err).Msg("Failed to generate downtime trend chart")
	}
	if err := g.generateHourlyAnalysisCharts(reportDir, records); err != nil {
		g.log.Error().Err(err).Msg("Failed to generate hourly analysis charts")
	}
	if err := g.generateTextSummary(reportDir, records, report); err != nil {
		g.log.Error().Err(err).Msg("Failed to generate text summary")
	}
	if err := g.exportCSV(reportDir, records, report); err != nil {
		g.log.Error().Err(err).Msg("Failed to export CSV data")
	}

	g.log.Info().Str("dir", reportDir).Int("records", len(records)).Msg("Report generated")
	return reportDir, nil
}
