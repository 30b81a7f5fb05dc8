package observation

import (
	"sort"

	"github.com/montanaflynn/stats"
	gstat "gonum.org/v1/gonum/stat"
)

// Summary holds the top-level dataset numbers shown in the report header box
type Summary struct {
	Records       int
	Fields        int
	Countries     int
	MinYear       int
	MaxYear       int
	MissingValues int
}

// Summarize computes the dataset summary. Year bounds are zero for an empty
// table.
func (t *Table) Summarize() Summary {
	sum := Summary{
		Records:       t.Len(),
		Fields:        t.FieldCount,
		Countries:     t.DistinctCountries(),
		MissingValues: t.MissingCells,
	}
	for i, row := range t.Rows {
		if i == 0 || row.Year < sum.MinYear {
			sum.MinYear = row.Year
		}
		if i == 0 || row.Year > sum.MaxYear {
			sum.MaxYear = row.Year
		}
	}
	return sum
}

// DistinctCountries returns the number of unique country values
func (t *Table) DistinctCountries() int {
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		seen[row.Country] = struct{}{}
	}
	return len(seen)
}

// DistinctReactorTypes returns the number of unique reactor type codes
func (t *Table) DistinctReactorTypes() int {
	seen := make(map[string]struct{})
	for _, row := range t.Rows {
		seen[row.ReactorTypeCode] = struct{}{}
	}
	return len(seen)
}

// LevelCount is a per-risk-level row count
type LevelCount struct {
	Level int
	Count int
}

// CountsByRiskLevel returns row counts per distinct true risk level,
// ordered by level ascending.
func (t *Table) CountsByRiskLevel() []LevelCount {
	counts := make(map[int]int)
	for _, row := range t.Rows {
		counts[row.TrueRiskLevel]++
	}
	levels := make([]int, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	out := make([]LevelCount, len(levels))
	for i, level := range levels {
		out[i] = LevelCount{Level: level, Count: counts[level]}
	}
	return out
}

// IncidentBreakdown splits rows by whether an incident actually happened
type IncidentBreakdown struct {
	None     int
	Occurred int
}

// IncidentCounts returns the incident/no-incident split
func (t *Table) IncidentCounts() IncidentBreakdown {
	var b IncidentBreakdown
	for _, row := range t.Rows {
		if row.IncidentOccurred == 1 {
			b.Occurred++
		} else {
			b.None++
		}
	}
	return b
}

// Percentage returns count as a percentage of the table size, or zero for an
// empty table.
func (t *Table) Percentage(count int) float64 {
	if t.Len() == 0 {
		return 0
	}
	return float64(count) / float64(t.Len()) * 100
}

// PressureSummary describes one external-pressure variable: its raw values
// and the descriptive statistics the boxplot panel annotates.
type PressureSummary struct {
	Name   string
	Values []float64
	Mean   float64
	StdDev float64
	Median float64
	Q1     float64
	Q3     float64
}

// PressureSummaries returns the three external-pressure variables in fixed
// order: public anxiety, social media rumours, regulator scrutiny.
func (t *Table) PressureSummaries() ([]PressureSummary, error) {
	extract := func(name string, get func(Observation) float64) (PressureSummary, error) {
		values := make([]float64, t.Len())
		for i, row := range t.Rows {
			values[i] = get(row)
		}
		ps := PressureSummary{Name: name, Values: values}
		if len(values) == 0 {
			return ps, nil
		}
		ps.Mean, ps.StdDev = gstat.MeanStdDev(values, nil)
		var err error
		if ps.Median, err = stats.Median(values); err != nil {
			return ps, err
		}
		if ps.Q1, err = stats.Percentile(values, 25); err != nil {
			return ps, err
		}
		if ps.Q3, err = stats.Percentile(values, 75); err != nil {
			return ps, err
		}
		return ps, nil
	}

	public, err := extract(ColPublicAnxiety, func(o Observation) float64 { return o.PublicAnxietyIndex })
	if err != nil {
		return nil, err
	}
	rumour, err := extract(ColSocialMediaRumour, func(o Observation) float64 { return o.SocialMediaRumourIndex })
	if err != nil {
		return nil, err
	}
	scrutiny, err := extract(ColRegulatorScrutiny, func(o Observation) float64 { return o.RegulatorScrutinyScore })
	if err != nil {
		return nil, err
	}
	return []PressureSummary{public, rumour, scrutiny}, nil
}

// YearCount is a per-year row count
type YearCount struct {
	Year  int
	Count int
}

// YearSeries returns row counts per distinct year, ordered ascending
func (t *Table) YearSeries() []YearCount {
	counts := make(map[int]int)
	for _, row := range t.Rows {
		counts[row.Year]++
	}
	years := make([]int, 0, len(counts))
	for year := range counts {
		years = append(years, year)
	}
	sort.Ints(years)
	out := make([]YearCount, len(years))
	for i, year := range years {
		out[i] = YearCount{Year: year, Count: counts[year]}
	}
	return out
}

// CountryCount is a per-country row count
type CountryCount struct {
	Country string
	Count   int
}

// TopCountries returns up to n countries ordered by observation count
// descending. Ties keep first-appearance order so repeated runs agree.
func (t *Table) TopCountries(n int) []CountryCount {
	counts := make(map[string]int)
	var order []string
	for _, row := range t.Rows {
		if _, ok := counts[row.Country]; !ok {
			order = append(order, row.Country)
		}
		counts[row.Country]++
	}

	out := make([]CountryCount, len(order))
	for i, country := range order {
		out[i] = CountryCount{Country: country, Count: counts[country]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
