package source

import (
	"fmt"

	"repeat-rca/pkg/models"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX reads the first sheet of a workbook. Cells are taken as
// displayed text so dates must be stored in the configured layout.
func ReadXLSX(path string) ([]models.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: workbook has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return fromRows(rows, nil)
}
