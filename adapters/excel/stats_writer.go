package excel

import (
	"fmt"
	"strconv"

	"avalonreport/domain/observation"
	"avalonreport/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Sheet names in the aggregate workbook, in creation order
const (
	SheetSummary    = "Summary"
	SheetRiskLevels = "RiskLevels"
	SheetIncidents  = "Incidents"
	SheetPressure   = "Pressure"
	SheetYears      = "Years"
	SheetCountries  = "Countries"
)

// StatsWriter exports the report's aggregate tables to an XLSX workbook
type StatsWriter struct{}

// NewStatsWriter creates a workbook exporter
func NewStatsWriter() *StatsWriter {
	return &StatsWriter{}
}

// Export writes one sheet per aggregation and saves the workbook to path,
// overwriting any existing file.
func (w *StatsWriter) Export(t *observation.Table, path string) error {
	pressure, err := t.PressureSummaries()
	if err != nil {
		return errors.WriteFailed("failed to compute pressure summaries", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	// The default sheet becomes the summary sheet.
	if err := f.SetSheetName("Sheet1", SheetSummary); err != nil {
		return errors.WriteFailed("failed to initialize workbook", err)
	}

	sum := t.Summarize()
	summaryRows := [][]interface{}{
		{"Metric", "Value"},
		{"Records", sum.Records},
		{"Features", sum.Fields},
		{"Countries", sum.Countries},
		{"Min Year", sum.MinYear},
		{"Max Year", sum.MaxYear},
		{"Missing Values", sum.MissingValues},
		{"Panic Mode Cases", t.PanicCount()},
		{"Reactor Types", t.DistinctReactorTypes()},
	}
	if err := writeSheet(f, SheetSummary, summaryRows); err != nil {
		return err
	}

	riskRows := [][]interface{}{{"Level", "Count"}}
	for _, lc := range t.CountsByRiskLevel() {
		riskRows = append(riskRows, []interface{}{lc.Level, lc.Count})
	}
	if err := addSheet(f, SheetRiskLevels, riskRows); err != nil {
		return err
	}

	inc := t.IncidentCounts()
	incidentRows := [][]interface{}{
		{"Outcome", "Count", "Percent"},
		{"No Incident", inc.None, roundPct(t.Percentage(inc.None))},
		{"Incident", inc.Occurred, roundPct(t.Percentage(inc.Occurred))},
	}
	if err := addSheet(f, SheetIncidents, incidentRows); err != nil {
		return err
	}

	pressureRows := [][]interface{}{{"Variable", "Mean", "StdDev", "Median", "Q1", "Q3"}}
	for _, ps := range pressure {
		pressureRows = append(pressureRows, []interface{}{
			ps.Name, ps.Mean, ps.StdDev, ps.Median, ps.Q1, ps.Q3,
		})
	}
	if err := addSheet(f, SheetPressure, pressureRows); err != nil {
		return err
	}

	yearRows := [][]interface{}{{"Year", "Count"}}
	for _, yc := range t.YearSeries() {
		yearRows = append(yearRows, []interface{}{yc.Year, yc.Count})
	}
	if err := addSheet(f, SheetYears, yearRows); err != nil {
		return err
	}

	countryRows := [][]interface{}{{"Country", "Count"}}
	for _, cc := range t.TopCountries(10) {
		countryRows = append(countryRows, []interface{}{cc.Country, cc.Count})
	}
	if err := addSheet(f, SheetCountries, countryRows); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return errors.WriteFailed("failed to save workbook "+path, err)
	}
	return nil
}

func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return errors.WriteFailed(fmt.Sprintf("failed to create sheet %s", name), err)
	}
	return writeSheet(f, name, rows)
}

func writeSheet(f *excelize.File, name string, rows [][]interface{}) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return errors.WriteFailed(fmt.Sprintf("failed to address cell in sheet %s", name), err)
			}
			if err := f.SetCellValue(name, cell, value); err != nil {
				return errors.WriteFailed(fmt.Sprintf("failed to write sheet %s", name), err)
			}
		}
	}
	return nil
}

// roundPct keeps percentages at one decimal, matching the figure labels
func roundPct(pct float64) float64 {
	v, _ := strconv.ParseFloat(strconv.FormatFloat(pct, 'f', 1, 64), 64)
	return v
}
