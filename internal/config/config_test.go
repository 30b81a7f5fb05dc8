package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "avalon_nuclear.csv", cfg.Paths.DataFile)
	assert.Equal(t, "avalon_data_overview.png", cfg.Paths.ReportFile)
	assert.Equal(t, "avalon_data_overview.xlsx", cfg.Paths.StatsWorkbook)
	assert.Equal(t, "avalon_data_overview.html", cfg.Paths.SummaryHTML)
	assert.Equal(t, 16.0, cfg.Render.WidthInches)
	assert.Equal(t, 10.0, cfg.Render.HeightInches)
	assert.Equal(t, 300, cfg.Render.DPI)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("AVALON_DATA_FILE", "/data/observations.csv")
	t.Setenv("AVALON_REPORT_FILE", "/out/report.png")
	t.Setenv("AVALON_REPORT_DPI", "150")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/observations.csv", cfg.Paths.DataFile)
	assert.Equal(t, "/out/report.png", cfg.Paths.ReportFile)
	assert.Equal(t, 150, cfg.Render.DPI)
}

func TestLoad_InvalidDPIFallsBack(t *testing.T) {
	t.Setenv("AVALON_REPORT_DPI", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Render.DPI)
}

func TestLoad_RejectsNonPositiveDPI(t *testing.T) {
	t.Setenv("AVALON_REPORT_DPI", "-1")

	_, err := Load()
	require.Error(t, err)
}
