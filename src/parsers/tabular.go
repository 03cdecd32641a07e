package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ReadTable splits decoded export text into a header row and data rows using
// the given delimiter. Quoted fields may contain the delimiter, doubled
// quotes and literal newlines. Rows shorter than the header are padded with
// empty cells so column resolution never indexes out of range.
func ReadTable(text string, delimiter rune) (headers []string, rows [][]string, err error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1 // broker exports routinely have ragged rows
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = false

	for {
		record, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, nil, fmt.Errorf("reading delimited row: %w", readErr)
		}
		if isBlankRecord(record) {
			continue
		}
		if headers == nil {
			headers = record
			continue
		}
		if len(record) < len(headers) {
			padded := make([]string, len(headers))
			copy(padded, record)
			record = padded
		}
		rows = append(rows, record)
	}
	return headers, rows, nil
}

func isBlankRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
