package observation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	rows := []Observation{
		{Country: "France", Year: 2019, TrueRiskLevel: 0, IncidentOccurred: 0, ReactorTypeCode: "PWR", PublicAnxietyIndex: 10, SocialMediaRumourIndex: 1, RegulatorScrutinyScore: 5},
		{Country: "France", Year: 2020, TrueRiskLevel: 1, IncidentOccurred: 1, ReactorTypeCode: "PWR", PublicAnxietyIndex: 20, SocialMediaRumourIndex: 2, RegulatorScrutinyScore: 5},
		{Country: "Japan", Year: 2020, TrueRiskLevel: 1, IncidentOccurred: 0, ReactorTypeCode: "BWR", PublicAnxietyIndex: 30, SocialMediaRumourIndex: 3, RegulatorScrutinyScore: 5},
		{Country: "Canada", Year: 2021, TrueRiskLevel: 3, IncidentOccurred: 1, ReactorTypeCode: "PHWR", PublicAnxietyIndex: 40, SocialMediaRumourIndex: 4, RegulatorScrutinyScore: 5},
	}
	return &Table{Rows: rows, FieldCount: 11, MissingCells: 0}
}

func TestSummarize(t *testing.T) {
	sum := sampleTable().Summarize()

	assert.Equal(t, 4, sum.Records)
	assert.Equal(t, 11, sum.Fields)
	assert.Equal(t, 3, sum.Countries)
	assert.Equal(t, 2019, sum.MinYear)
	assert.Equal(t, 2021, sum.MaxYear)
	assert.Equal(t, 0, sum.MissingValues)
}

func TestSummarize_Empty(t *testing.T) {
	sum := (&Table{}).Summarize()

	assert.Equal(t, 0, sum.Records)
	assert.Equal(t, 0, sum.MinYear)
	assert.Equal(t, 0, sum.MaxYear)
}

func TestCountsByRiskLevel(t *testing.T) {
	counts := sampleTable().CountsByRiskLevel()

	require.Len(t, counts, 3)
	assert.Equal(t, LevelCount{Level: 0, Count: 1}, counts[0])
	assert.Equal(t, LevelCount{Level: 1, Count: 2}, counts[1])
	assert.Equal(t, LevelCount{Level: 3, Count: 1}, counts[2])

	// Bar heights must sum exactly to the row count.
	total := 0
	for _, lc := range counts {
		total += lc.Count
	}
	assert.Equal(t, 4, total)
}

func TestIncidentCounts(t *testing.T) {
	table := sampleTable()
	b := table.IncidentCounts()

	assert.Equal(t, 2, b.None)
	assert.Equal(t, 2, b.Occurred)
	assert.Equal(t, table.Len(), b.None+b.Occurred)
	assert.InDelta(t, 50.0, table.Percentage(b.Occurred), 1e-12)
}

func TestPercentage_EmptyTable(t *testing.T) {
	assert.Equal(t, 0.0, (&Table{}).Percentage(10))
}

func TestPressureSummaries(t *testing.T) {
	summaries, err := sampleTable().PressureSummaries()
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	anxiety := summaries[0]
	assert.Equal(t, ColPublicAnxiety, anxiety.Name)
	assert.Equal(t, []float64{10, 20, 30, 40}, anxiety.Values)
	assert.InDelta(t, 25.0, anxiety.Mean, 1e-12)
	assert.InDelta(t, 25.0, anxiety.Median, 1e-12)
	assert.True(t, anxiety.Q1 < anxiety.Median)
	assert.True(t, anxiety.Q3 > anxiety.Median)

	scrutiny := summaries[2]
	assert.Equal(t, ColRegulatorScrutiny, scrutiny.Name)
	assert.InDelta(t, 5.0, scrutiny.Mean, 1e-12)
	assert.InDelta(t, 0.0, scrutiny.StdDev, 1e-12)
	assert.False(t, math.IsNaN(scrutiny.Median))
}

func TestYearSeries(t *testing.T) {
	series := sampleTable().YearSeries()

	require.Len(t, series, 3)
	assert.Equal(t, YearCount{Year: 2019, Count: 1}, series[0])
	assert.Equal(t, YearCount{Year: 2020, Count: 2}, series[1])
	assert.Equal(t, YearCount{Year: 2021, Count: 1}, series[2])
}

func TestTopCountries(t *testing.T) {
	top := sampleTable().TopCountries(10)

	require.Len(t, top, 3)
	assert.Equal(t, CountryCount{Country: "France", Count: 2}, top[0])
	// Ties keep first-appearance order.
	assert.Equal(t, "Japan", top[1].Country)
	assert.Equal(t, "Canada", top[2].Country)
}

func TestTopCountries_LimitAndOrdering(t *testing.T) {
	var rows []Observation
	// 12 countries with counts 1..12.
	for i := 1; i <= 12; i++ {
		name := string(rune('A' + i - 1))
		for j := 0; j < i; j++ {
			rows = append(rows, Observation{Country: name})
		}
	}
	table := &Table{Rows: rows}

	top := table.TopCountries(10)
	require.Len(t, top, 10)
	assert.Equal(t, "L", top[0].Country)
	assert.Equal(t, 12, top[0].Count)
	for i := 1; i < len(top); i++ {
		assert.LessOrEqual(t, top[i].Count, top[i-1].Count)
	}
}

func TestDistinctReactorTypes(t *testing.T) {
	assert.Equal(t, 3, sampleTable().DistinctReactorTypes())
}
