package observation

// Column names expected in the source table. Extra columns are ignored by
// the loader; a missing required column is a schema failure.
const (
	ColCountry             = "country"
	ColYear                = "year"
	ColTrueRiskLevel       = "true_risk_level"
	ColEvacRecommended     = "avalon_evac_recommendation"
	ColShutdownRecommended = "avalon_shutdown_recommendation"
	ColIncidentOccurred    = "incident_occurred"
	ColPublicAnxiety       = "public_anxiety_index"
	ColSocialMediaRumour   = "social_media_rumour_index"
	ColRegulatorScrutiny   = "regulator_scrutiny_score"
	ColReactorType         = "reactor_type_code"
)

// RequiredColumns lists every column the report reads, in source order.
func RequiredColumns() []string {
	return []string{
		ColCountry,
		ColYear,
		ColTrueRiskLevel,
		ColEvacRecommended,
		ColShutdownRecommended,
		ColIncidentOccurred,
		ColPublicAnxiety,
		ColSocialMediaRumour,
		ColRegulatorScrutiny,
		ColReactorType,
	}
}

// MaxLowRiskLevel is the highest true risk level still considered "low" by
// the panic-mode rule.
const MaxLowRiskLevel = 2

// Observation is one monitored facility/time-period row
type Observation struct {
	Country                string
	Year                   int
	TrueRiskLevel          int
	EvacRecommended        int
	ShutdownRecommended    int
	IncidentOccurred       int
	PublicAnxietyIndex     float64
	SocialMediaRumourIndex float64
	RegulatorScrutinyScore float64
	ReactorTypeCode        string

	// PanicMode is derived once by DerivePanicMode and never mutated again
	PanicMode int
}

// Table is the in-memory observation table
type Table struct {
	Rows []Observation

	// FieldCount is the number of source columns plus the derived
	// panic_mode column.
	FieldCount int

	// MissingCells counts empty cells observed in required columns during
	// load. Numeric columns cannot load with empty cells, so for any table
	// that loads this covers the categorical columns only.
	MissingCells int
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// DerivePanicMode populates the PanicMode flag on every row and returns the
// number of panic-mode cases. A row is panic mode when the system
// recommended evacuation or shutdown despite a low true risk level.
func (t *Table) DerivePanicMode() int {
	count := 0
	for i := range t.Rows {
		row := &t.Rows[i]
		row.PanicMode = 0
		recommended := row.EvacRecommended == 1 || row.ShutdownRecommended == 1
		if recommended && row.TrueRiskLevel <= MaxLowRiskLevel {
			row.PanicMode = 1
			count++
		}
	}
	return count
}

// PanicCount returns the number of rows flagged panic mode
func (t *Table) PanicCount() int {
	count := 0
	for _, row := range t.Rows {
		if row.PanicMode == 1 {
			count++
		}
	}
	return count
}
