package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"avalonreport/domain/observation"
	"avalonreport/internal/errors"
)

// Reader loads the observation table from a CSV file with a header row
type Reader struct {
	filePath string
}

// NewReader creates a reader for the given CSV path
func NewReader(filePath string) *Reader {
	return &Reader{filePath: filePath}
}

// Read parses the whole file into an observation table. Extra columns are
// ignored; a missing required column or an unparsable cell aborts the load.
func (r *Reader) Read() (*observation.Table, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.LoadFailed(fmt.Sprintf("failed to open data file %s", r.filePath), err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, errors.LoadFailed(fmt.Sprintf("failed to parse CSV data from %s", r.filePath), err)
	}
	if len(records) == 0 {
		return nil, errors.LoadFailed(fmt.Sprintf("data file %s is empty", r.filePath), nil)
	}

	headers := records[0]
	index, err := columnIndex(headers)
	if err != nil {
		return nil, err
	}

	table := &observation.Table{
		Rows: make([]observation.Observation, 0, len(records)-1),
		// +1 for the derived panic_mode column
		FieldCount: len(headers) + 1,
	}

	for i, record := range records[1:] {
		rowNum := i + 2 // 1-based, counting the header
		row, missing, err := parseRow(record, index, rowNum)
		if err != nil {
			return nil, err
		}
		table.MissingCells += missing
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// columnIndex maps each required column name to its position in the header
func columnIndex(headers []string) (map[string]int, error) {
	positions := make(map[string]int, len(headers))
	for i, h := range headers {
		positions[strings.TrimSpace(h)] = i
	}

	index := make(map[string]int)
	for _, col := range observation.RequiredColumns() {
		pos, ok := positions[col]
		if !ok {
			return nil, errors.SchemaInvalid(fmt.Sprintf("required column %q is missing", col))
		}
		index[col] = pos
	}
	return index, nil
}

func parseRow(record []string, index map[string]int, rowNum int) (observation.Observation, int, error) {
	missing := 0

	cell := func(col string) string {
		pos := index[col]
		if pos >= len(record) {
			return ""
		}
		value := strings.TrimSpace(record[pos])
		if value == "" {
			missing++
		}
		return value
	}

	var row observation.Observation
	var err error

	intCell := func(col string) (int, error) {
		value := cell(col)
		n, convErr := strconv.Atoi(value)
		if convErr != nil {
			return 0, errors.LoadFailed(
				fmt.Sprintf("row %d: invalid %s value %q", rowNum, col, value), convErr)
		}
		return n, nil
	}
	floatCell := func(col string) (float64, error) {
		value := cell(col)
		f, convErr := strconv.ParseFloat(value, 64)
		if convErr != nil {
			return 0, errors.LoadFailed(
				fmt.Sprintf("row %d: invalid %s value %q", rowNum, col, value), convErr)
		}
		return f, nil
	}

	row.Country = cell(observation.ColCountry)
	row.ReactorTypeCode = cell(observation.ColReactorType)

	if row.Year, err = intCell(observation.ColYear); err != nil {
		return row, missing, err
	}
	if row.TrueRiskLevel, err = intCell(observation.ColTrueRiskLevel); err != nil {
		return row, missing, err
	}
	if row.EvacRecommended, err = intCell(observation.ColEvacRecommended); err != nil {
		return row, missing, err
	}
	if row.ShutdownRecommended, err = intCell(observation.ColShutdownRecommended); err != nil {
		return row, missing, err
	}
	if row.IncidentOccurred, err = intCell(observation.ColIncidentOccurred); err != nil {
		return row, missing, err
	}
	if row.PublicAnxietyIndex, err = floatCell(observation.ColPublicAnxiety); err != nil {
		return row, missing, err
	}
	if row.SocialMediaRumourIndex, err = floatCell(observation.ColSocialMediaRumour); err != nil {
		return row, missing, err
	}
	if row.RegulatorScrutinyScore, err = floatCell(observation.ColRegulatorScrutiny); err != nil {
		return row, missing, err
	}

	return row, missing, nil
}
