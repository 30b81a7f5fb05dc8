package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"avalonreport/domain/core"
	"avalonreport/internal"
	"avalonreport/internal/config"
	"avalonreport/internal/errors"
	"avalonreport/ports"

	"github.com/dustin/go-humanize"
	"github.com/gomarkdown/markdown"
)

// ReportService runs the whole report pipeline: load, derive, render,
// export, summarize. Strictly sequential; the first failure aborts the run.
type ReportService struct {
	reader   ports.ObservationReader
	renderer ports.DashboardRenderer
	exporter ports.AggregateExporter
	cfg      *config.Config
	logger   *internal.Logger
}

// NewReportService wires the service from its ports
func NewReportService(
	reader ports.ObservationReader,
	renderer ports.DashboardRenderer,
	exporter ports.AggregateExporter,
	cfg *config.Config,
	logger *internal.Logger,
) *ReportService {
	return &ReportService{
		reader:   reader,
		renderer: renderer,
		exporter: exporter,
		cfg:      cfg,
		logger:   logger,
	}
}

// RunStats are the numbers printed after a successful run
type RunStats struct {
	ReportPath      string
	TotalRecords    int
	PanicCases      int
	NormalCases     int
	UniqueCountries int
	ReactorTypes    int
}

// PanicPct returns the panic-mode share of all records as a percentage
func (s RunStats) PanicPct() float64 {
	if s.TotalRecords == 0 {
		return 0
	}
	return float64(s.PanicCases) / float64(s.TotalRecords) * 100
}

// NormalPct returns the normal share of all records as a percentage
func (s RunStats) NormalPct() float64 {
	if s.TotalRecords == 0 {
		return 0
	}
	return float64(s.NormalCases) / float64(s.TotalRecords) * 100
}

// Print writes the confirmation line and the statistics block
func (s RunStats) Print(w io.Writer) {
	fmt.Fprintf(w, "✓ Visualization saved as '%s'\n", s.ReportPath)
	fmt.Fprintf(w, "\nDataset Statistics:\n")
	fmt.Fprintf(w, "  Total records: %s\n", humanize.Comma(int64(s.TotalRecords)))
	fmt.Fprintf(w, "  Panic mode cases: %d (%.2f%%)\n", s.PanicCases, s.PanicPct())
	fmt.Fprintf(w, "  Normal cases: %d (%.2f%%)\n", s.NormalCases, s.NormalPct())
	fmt.Fprintf(w, "  Unique countries: %d\n", s.UniqueCountries)
	fmt.Fprintf(w, "  Reactor types: %d\n", s.ReactorTypes)
}

// Run executes one report generation pass and returns the statistics to
// print. Outputs are overwritten unconditionally.
func (svc *ReportService) Run() (*RunStats, error) {
	runID := core.NewRunID()
	svc.logger.Info("[ReportService] run %s: loading %s", runID, svc.cfg.Paths.DataFile)

	table, err := svc.reader.Read()
	if err != nil {
		return nil, err
	}
	svc.logger.Info("[ReportService] run %s: loaded %d rows, %d fields", runID, table.Len(), table.FieldCount)

	panicCount := table.DerivePanicMode()
	svc.logger.Info("[ReportService] run %s: derived panic_mode (%d cases)", runID, panicCount)

	if err := svc.renderer.Render(table, svc.cfg.Paths.ReportFile); err != nil {
		return nil, err
	}
	svc.logger.Info("[ReportService] run %s: wrote %s", runID, svc.cfg.Paths.ReportFile)

	if err := svc.exporter.Export(table, svc.cfg.Paths.StatsWorkbook); err != nil {
		return nil, err
	}
	svc.logger.Info("[ReportService] run %s: wrote %s", runID, svc.cfg.Paths.StatsWorkbook)

	stats := &RunStats{
		ReportPath:      svc.cfg.Paths.ReportFile,
		TotalRecords:    table.Len(),
		PanicCases:      panicCount,
		NormalCases:     table.Len() - panicCount,
		UniqueCountries: table.DistinctCountries(),
		ReactorTypes:    table.DistinctReactorTypes(),
	}

	if err := svc.writeHTMLSummary(stats); err != nil {
		return nil, err
	}
	svc.logger.Info("[ReportService] run %s: wrote %s", runID, svc.cfg.Paths.SummaryHTML)

	return stats, nil
}

// writeHTMLSummary renders the statistics as a small HTML page next to the
// figure, built from markdown.
func (svc *ReportService) writeHTMLSummary(stats *RunStats) error {
	var md strings.Builder
	fmt.Fprintf(&md, "# Avalon Nuclear Safety Data Overview\n\n")
	fmt.Fprintf(&md, "![dashboard](%s)\n\n", stats.ReportPath)
	fmt.Fprintf(&md, "## Dataset Statistics\n\n")
	fmt.Fprintf(&md, "- Total records: %s\n", humanize.Comma(int64(stats.TotalRecords)))
	fmt.Fprintf(&md, "- Panic mode cases: %d (%.2f%%)\n", stats.PanicCases, stats.PanicPct())
	fmt.Fprintf(&md, "- Normal cases: %d (%.2f%%)\n", stats.NormalCases, stats.NormalPct())
	fmt.Fprintf(&md, "- Unique countries: %d\n", stats.UniqueCountries)
	fmt.Fprintf(&md, "- Reactor types: %d\n", stats.ReactorTypes)
	fmt.Fprintf(&md, "\npanic_mode = 1 when Avalon recommends evacuation/shutdown despite true_risk_level <= 2\n")

	html := markdown.ToHTML([]byte(md.String()), nil, nil)
	if err := os.WriteFile(svc.cfg.Paths.SummaryHTML, html, 0o644); err != nil {
		return errors.WriteFailed("failed to write summary "+svc.cfg.Paths.SummaryHTML, err)
	}
	return nil
}
