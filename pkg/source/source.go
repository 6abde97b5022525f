// Package source reads the transaction log into raw, untyped records.
package source

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"repeat-rca/pkg/models"
)

// ReadFile loads every record of a CSV or XLSX file, chosen by extension.
// Anything that is not .xlsx is read as delimited text.
func ReadFile(path string, delimiter rune) ([]models.RawRecord, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return ReadXLSX(path)
	default:
		return ReadCSV(path, delimiter)
	}
}

// File is a transaction log on disk.
type File struct {
	Path      string
	Delimiter rune
}

// Records reads the whole file.
func (f File) Records(ctx context.Context) ([]models.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d := f.Delimiter
	if d == 0 {
		d = ','
	}
	return ReadFile(f.Path, d)
}

// columnIndex maps each required column to its position in header.
type columnIndex map[string]int

func indexHeader(header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimPrefix(h, "\ufeff")
		key := strings.ToLower(strings.TrimSpace(h))
		if _, dup := pos[key]; !dup {
			pos[key] = i
		}
	}

	idx := make(columnIndex, len(models.RequiredColumns))
	var missing []string
	for _, col := range models.RequiredColumns {
		i, ok := pos[strings.ToLower(col)]
		if !ok {
			missing = append(missing, col)
			continue
		}
		idx[col] = i
	}
	if len(missing) > 0 {
		return nil, &models.MissingColumnError{Columns: missing}
	}
	return idx, nil
}

// record builds a RawRecord from a row. Short rows yield empty fields,
// which the cleaner rejects for amount and date.
func (idx columnIndex) record(line int, row []string) models.RawRecord {
	get := func(col string) string {
		i := idx[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	return models.RawRecord{
		Line:          line,
		TransactionID: get(models.ColTransactionID),
		CustomerID:    get(models.ColCustomerID),
		Date:          get(models.ColDate),
		Amount:        get(models.ColAmount),
		Product:       get(models.ColProduct),
		Category:      get(models.ColCategory),
		Gender:        get(models.ColGender),
		DeviceType:    get(models.ColDeviceType),
	}
}

// fromRows expects the header first. lines holds the source line of each
// row; nil means rows map one-to-one onto lines.
func fromRows(rows [][]string, lines []int) ([]models.RawRecord, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty source: no header row")
	}
	idx, err := indexHeader(rows[0])
	if err != nil {
		return nil, err
	}
	out := make([]models.RawRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		line := i + 2
		if lines != nil {
			line = lines[i+1]
		}
		out = append(out, idx.record(line, row))
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
