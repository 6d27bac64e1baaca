package manifest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ParseCSV reads a comma separated manifest. The first record is a header and
// is skipped; blank lines are ignored.
func ParseCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows []Row
	header := true
	for {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedRow, err)
		}
		if header {
			header = false
			continue
		}
		line, _ := reader.FieldPos(0)
		row, err := FromFields(fields, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if err := CheckRows(rows); err != nil {
		return nil, err
	}
	return rows, nil
}
