package app

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"avalonreport/domain/observation"
	"avalonreport/internal"
	"avalonreport/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader serves a prebuilt table
type fakeReader struct {
	table *observation.Table
	err   error
}

func (r *fakeReader) Read() (*observation.Table, error) {
	return r.table, r.err
}

// fakeRenderer records calls and touches the output file
type fakeRenderer struct {
	calls int
	err   error
}

func (r *fakeRenderer) Render(t *observation.Table, outPath string) error {
	r.calls++
	if r.err != nil {
		return r.err
	}
	return os.WriteFile(outPath, []byte("png"), 0o644)
}

// fakeExporter records calls and touches the output file
type fakeExporter struct {
	calls int
}

func (e *fakeExporter) Export(t *observation.Table, outPath string) error {
	e.calls++
	return os.WriteFile(outPath, []byte("xlsx"), 0o644)
}

// statsTable builds a table of total rows of which panicCases satisfy the
// panic-mode predicate.
func statsTable(total, panicCases int) *observation.Table {
	rows := make([]observation.Observation, total)
	for i := range rows {
		rows[i] = observation.Observation{
			Country:         "France",
			Year:            2020,
			ReactorTypeCode: "PWR",
			TrueRiskLevel:   3,
		}
		if i < panicCases {
			rows[i].TrueRiskLevel = 1
			rows[i].EvacRecommended = 1
		}
	}
	return &observation.Table{Rows: rows, FieldCount: 11}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Paths: config.PathConfig{
			DataFile:      filepath.Join(dir, "avalon_nuclear.csv"),
			ReportFile:    filepath.Join(dir, "avalon_data_overview.png"),
			StatsWorkbook: filepath.Join(dir, "avalon_data_overview.xlsx"),
			SummaryHTML:   filepath.Join(dir, "avalon_data_overview.html"),
		},
		Render: config.RenderConfig{WidthInches: 16, HeightInches: 10, DPI: 96},
	}
}

func TestRun_StatsAndArtifacts(t *testing.T) {
	cfg := testConfig(t)
	renderer := &fakeRenderer{}
	exporter := &fakeExporter{}
	svc := NewReportService(
		&fakeReader{table: statsTable(1000, 180)},
		renderer, exporter, cfg,
		internal.NewLogger(internal.LogLevelError),
	)

	stats, err := svc.Run()
	require.NoError(t, err)

	assert.Equal(t, 1, renderer.calls)
	assert.Equal(t, 1, exporter.calls)
	assert.Equal(t, 1000, stats.TotalRecords)
	assert.Equal(t, 180, stats.PanicCases)
	assert.Equal(t, 820, stats.NormalCases)
	assert.Equal(t, 1, stats.UniqueCountries)
	assert.Equal(t, 1, stats.ReactorTypes)

	assert.FileExists(t, cfg.Paths.ReportFile)
	assert.FileExists(t, cfg.Paths.StatsWorkbook)
	assert.FileExists(t, cfg.Paths.SummaryHTML)

	html, err := os.ReadFile(cfg.Paths.SummaryHTML)
	require.NoError(t, err)
	assert.Contains(t, string(html), "<h1>")
	assert.Contains(t, string(html), "Panic mode cases: 180 (18.00%)")
}

func TestRunStats_Print(t *testing.T) {
	stats := RunStats{
		ReportPath:      "avalon_data_overview.png",
		TotalRecords:    1000,
		PanicCases:      180,
		NormalCases:     820,
		UniqueCountries: 25,
		ReactorTypes:    4,
	}

	var buf bytes.Buffer
	stats.Print(&buf)

	want := "✓ Visualization saved as 'avalon_data_overview.png'\n" +
		"\n" +
		"Dataset Statistics:\n" +
		"  Total records: 1,000\n" +
		"  Panic mode cases: 180 (18.00%)\n" +
		"  Normal cases: 820 (82.00%)\n" +
		"  Unique countries: 25\n" +
		"  Reactor types: 4\n"
	assert.Equal(t, want, buf.String())
}

func TestRun_Deterministic(t *testing.T) {
	cfg := testConfig(t)
	svc := NewReportService(
		&fakeReader{table: statsTable(1000, 180)},
		&fakeRenderer{}, &fakeExporter{}, cfg,
		internal.NewLogger(internal.LogLevelError),
	)

	var first, second bytes.Buffer
	stats, err := svc.Run()
	require.NoError(t, err)
	stats.Print(&first)

	stats, err = svc.Run()
	require.NoError(t, err)
	stats.Print(&second)

	assert.Equal(t, first.String(), second.String())
}

func TestRun_ReaderFailureAborts(t *testing.T) {
	cfg := testConfig(t)
	renderer := &fakeRenderer{}
	svc := NewReportService(
		&fakeReader{err: fmt.Errorf("no such file")},
		renderer, &fakeExporter{}, cfg,
		internal.NewLogger(internal.LogLevelError),
	)

	_, err := svc.Run()
	require.Error(t, err)
	assert.Equal(t, 0, renderer.calls)
}

func TestRun_RenderFailureAborts(t *testing.T) {
	cfg := testConfig(t)
	exporter := &fakeExporter{}
	svc := NewReportService(
		&fakeReader{table: statsTable(10, 2)},
		&fakeRenderer{err: fmt.Errorf("render blew up")}, exporter, cfg,
		internal.NewLogger(internal.LogLevelError),
	)

	_, err := svc.Run()
	require.Error(t, err)
	assert.Equal(t, 0, exporter.calls)
}
