package ports

import (
	"avalonreport/domain/observation"
)

// AggregateExporter writes the report's aggregate tables to a companion
// artifact next to the figure.
type AggregateExporter interface {
	Export(t *observation.Table, outPath string) error
}
