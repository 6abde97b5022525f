package source

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"repeat-rca/pkg/models"
)

// ReadCSV reads a delimited file with a header row.
func ReadCSV(path string, delimiter rune) ([]models.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeCSV(f, delimiter)
}

// DecodeCSV is ReadCSV over an arbitrary reader.
func DecodeCSV(r io.Reader, delimiter rune) ([]models.RawRecord, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows [][]string
	var lines []int
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		rows = append(rows, row)
		lines = append(lines, line)
	}
	return fromRows(rows, lines)
}
