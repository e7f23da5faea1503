// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"fmt"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// SheetName is the worksheet holding the product rows.
const SheetName = "Products"

// XLSXSink writes each table as its own workbook.
type XLSXSink struct {
	dir string
}

// NewXLSXSink creates a sink writing into dir.
func NewXLSXSink(dir string) *XLSXSink {
	return &XLSXSink{dir: dir}
}

// WriteTable implements Sink. The extension of name is replaced with .xlsx.
func (s *XLSXSink) WriteTable(name string, records []types.ProductRecord) (string, error) {
	if err := ensureDir(s.dir); err != nil {
		return "", err
	}
	path := filepath.Join(s.dir, withExt(name, ".xlsx"))

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return "", fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]any, len(types.Columns))
	for i, c := range types.Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return "", fmt.Errorf("write xlsx header: %w", err)
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", fmt.Errorf("xlsx cell for row %d: %w", i+2, err)
		}
		cells := r.Row()
		values := make([]any, len(cells))
		for j, v := range cells {
			values[j] = v
		}
		// Page stays numeric.
		values[len(values)-1] = r.Page
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return "", fmt.Errorf("write xlsx row %d: %w", i+2, err)
		}
	}

	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "C", 18},
		{"D", "D", 60},
		{"E", "G", 16},
	}
	for _, w := range widths {
		if err := f.SetColWidth(SheetName, w.from, w.to, w.width); err != nil {
			return "", fmt.Errorf("set xlsx column width %s:%s: %w", w.from, w.to, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", fmt.Errorf("xlsx write: %w", err)
	}
	return path, nil
}
