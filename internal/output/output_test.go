// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

func sampleRecords() []types.ProductRecord {
	return []types.ProductRecord{
		{
			Category:      types.CategorySolarPanels,
			Supplier:      "Go Solar",
			Brand:         "Jinko",
			Description:   "ABC123 Jinko 400W Panel",
			Specification: "400W",
			PartNumber:    "ABC123",
			Price:         250,
			Page:          3,
		},
		{
			Category:    types.CategoryAccessories,
			Supplier:    "Go Solar",
			Brand:       "Isolator,",
			Description: `Isolator, 32A "DC"`,
			Price:       1234.5,
			Page:        4,
		},
	}
}

func TestCSVSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "extracted")
	sink := NewCSVSink(dir)

	path, err := sink.WriteTable("gosolar_products.csv", sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gosolar_products.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "Category,Supplier,Brand,Product Description,Specifications,Vendor Part No#,Price (ex. GST),Page\n" +
		"Solar Panels,Go Solar,Jinko,ABC123 Jinko 400W Panel,400W,ABC123,$250.00,3\n" +
		`Accessories,Go Solar,"Isolator,","Isolator, 32A ""DC""",,,$1234.50,4` + "\n"
	assert.Equal(t, want, string(data))
}

func TestCSVSink_EmptyWritesHeader(t *testing.T) {
	dir := t.TempDir()
	path, err := NewCSVSink(dir).WriteTable("empty.csv", nil)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Category,Supplier,Brand,Product Description,Specifications,Vendor Part No#,Price (ex. GST),Page\n", string(data))
}

func TestXLSXSink(t *testing.T) {
	dir := t.TempDir()
	path, err := NewXLSXSink(dir).WriteTable("gosolar_products.csv", sampleRecords())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "gosolar_products.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, types.Columns, rows[0])
	assert.Equal(t, []string{"Solar Panels", "Go Solar", "Jinko", "ABC123 Jinko 400W Panel", "400W", "ABC123", "$250.00", "3"}, rows[1])
	assert.Equal(t, "$1234.50", rows[2][6])

	width, err := f.GetColWidth(SheetName, "D")
	require.NoError(t, err)
	assert.Equal(t, 60.0, width)
	width, err = f.GetColWidth(SheetName, "G")
	require.NoError(t, err)
	assert.Equal(t, 16.0, width)
}

func TestNew(t *testing.T) {
	s, err := New(types.FormatCSV, "out")
	require.NoError(t, err)
	assert.IsType(t, &CSVSink{}, s)

	s, err = New("", "out")
	require.NoError(t, err)
	assert.IsType(t, &CSVSink{}, s)

	s, err = New(types.FormatXLSX, "out")
	require.NoError(t, err)
	assert.IsType(t, &XLSXSink{}, s)

	_, err = New("parquet", "out")
	require.Error(t, err)
}

func TestWithExt(t *testing.T) {
	assert.Equal(t, "a.xlsx", withExt("a.csv", ".xlsx"))
	assert.Equal(t, "b.csv", withExt("b", ".csv"))
}
