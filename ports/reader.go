package ports

import (
	"avalonreport/domain/observation"
)

// ObservationReader loads the observation table from its source file
type ObservationReader interface {
	Read() (*observation.Table, error)
}
