package ports

import (
	"avalonreport/domain/observation"
)

// DashboardRenderer draws the eight-panel overview figure for a table and
// writes it to outPath as a PNG.
type DashboardRenderer interface {
	Render(t *observation.Table, outPath string) error
}
