package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"repeat-rca/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleCSV = `Transaction_id,customer_id,Date,Amount US$,Product,Category,Gender,Device_Type,Extra
1,A,01/01/2024,"1,234.50",Phone,Mobile,Female,Web,x
2,B,02/01/2024,10,Case,Accessories,Male,Mobile,y

`

func TestDecodeCSV(t *testing.T) {
	recs, err := DecodeCSV(strings.NewReader(sampleCSV), ',')
	require.NoError(t, err)
	require.Len(t, recs, 2, "blank trailing line is skipped")

	assert.Equal(t, models.RawRecord{
		Line: 2, TransactionID: "1", CustomerID: "A", Date: "01/01/2024", Amount: "1,234.50",
		Product: "Phone", Category: "Mobile", Gender: "Female", DeviceType: "Web",
	}, recs[0])
	assert.Equal(t, 3, recs[1].Line)
}

func TestDecodeCSV_HeaderNormalisation(t *testing.T) {
	in := "\ufefftransaction_id; Customer_ID ;date;amount us$;product;category;gender;device_type\n" +
		"9;C;03/01/2024;5;Pen;Office;Male;Web\n"
	recs, err := DecodeCSV(strings.NewReader(in), ';')
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "9", recs[0].TransactionID)
	assert.Equal(t, "C", recs[0].CustomerID)
}

func TestDecodeCSV_MissingColumns(t *testing.T) {
	in := "Transaction_id,customer_id,Date,Product\n1,A,01/01/2024,Phone\n"
	_, err := DecodeCSV(strings.NewReader(in), ',')

	var mce *models.MissingColumnError
	require.True(t, errors.As(err, &mce), "got %v", err)
	assert.Equal(t, []string{"Amount US$", "Category", "Gender", "Device_Type"}, mce.Columns)
}

func TestDecodeCSV_Empty(t *testing.T) {
	_, err := DecodeCSV(strings.NewReader(""), ',')
	assert.Error(t, err)
}

func TestFile_Records(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tx.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	recs, err := File{Path: path}.Records(context.Background())
	require.NoError(t, err)
	assert.Len(t, recs, 2)

	_, err = File{Path: filepath.Join(t.TempDir(), "nope.csv")}.Records(context.Background())
	assert.Error(t, err)
}

func TestReadXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Transaction_id", "customer_id", "Date", "Amount US$", "Product", "Category", "Gender", "Device_Type"},
		{"1", "A", "01/01/2024", "1,234.50", "Phone", "Mobile", "Female", "Web"},
		{"2", "A", "05/01/2024", "20", "Case", "Accessories", "Female", "Web"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	path := filepath.Join(t.TempDir(), "tx.xlsx")
	require.NoError(t, f.SaveAs(path))

	recs, err := ReadFile(path, ',')
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "1,234.50", recs[0].Amount)
	assert.Equal(t, "05/01/2024", recs[1].Date)
	assert.Equal(t, 3, recs[1].Line)
}
