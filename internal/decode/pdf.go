// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"context"
	"fmt"

	"github.com/ledongthuc/pdf"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// PDFDecoder decodes PDFs natively. Text fragments are grouped into rows by
// vertical position and split into cells at wide horizontal gaps; runs of
// multi-cell rows become tables.
type PDFDecoder struct {
	rowTolerance float64
	cellGap      float64
}

// NewPDFDecoder creates a native decoder with the given layout tolerances
// in points.
func NewPDFDecoder(rowTolerance, cellGap float64) *PDFDecoder {
	return &PDFDecoder{rowTolerance: rowTolerance, cellGap: cellGap}
}

// Decode implements Decoder. The file is closed on every return path, and
// a panic inside the PDF library is reported as an error for this file.
func (d *PDFDecoder) Decode(ctx context.Context, path string) (pages []types.Page, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pages = nil
			err = fmt.Errorf("decoding PDF %s: %v", path, rec)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	defer f.Close()

	n := r.NumPage()
	pages = make([]types.Page, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, types.Page{Number: i})
			continue
		}
		pages = append(pages, d.layout(i, p.Content().Text))
	}
	return pages, nil
}

func (d *PDFDecoder) layout(num int, texts []pdf.Text) types.Page {
	frags := make([]fragment, 0, len(texts))
	for _, t := range texts {
		frags = append(frags, fragment{x: t.X, y: t.Y, w: t.W, s: t.S})
	}
	rows := groupRows(frags, d.rowTolerance)
	cells := make([][]string, 0, len(rows))
	for _, row := range rows {
		if c := splitCells(row, d.cellGap); len(c) > 0 {
			cells = append(cells, c)
		}
	}
	return buildPage(num, cells)
}
