// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"math"
	"sort"
	"strings"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// wordGap is the horizontal gap, in points, above which two fragments in
// the same cell are separated by a space.
const wordGap = 1.0

// fragment is a positioned piece of text. PDF coordinates grow upward, so
// a larger y is higher on the page.
type fragment struct {
	x, y, w float64
	s       string
}

// groupRows clusters fragments into visual rows, top to bottom, each row
// ordered left to right.
func groupRows(frags []fragment, tolerance float64) [][]fragment {
	if len(frags) == 0 {
		return nil
	}
	sorted := make([]fragment, len(frags))
	copy(sorted, frags)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].y != sorted[j].y {
			return sorted[i].y > sorted[j].y
		}
		return sorted[i].x < sorted[j].x
	})

	var rows [][]fragment
	rowY := sorted[0].y
	current := []fragment{sorted[0]}
	for _, f := range sorted[1:] {
		if math.Abs(rowY-f.y) <= tolerance {
			current = append(current, f)
			continue
		}
		rows = append(rows, current)
		rowY = f.y
		current = []fragment{f}
	}
	rows = append(rows, current)

	for _, row := range rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].x < row[j].x })
	}
	return rows
}

// splitCells joins a row's fragments into cell texts, starting a new cell
// wherever the gap to the previous fragment exceeds cellGap. Empty cells
// are dropped.
func splitCells(row []fragment, cellGap float64) []string {
	var (
		cells   []string
		b       strings.Builder
		prevEnd float64
	)
	flush := func() {
		if text := strings.Join(strings.Fields(b.String()), " "); text != "" {
			cells = append(cells, text)
		}
		b.Reset()
	}
	for i, f := range row {
		if i > 0 {
			switch gap := f.x - prevEnd; {
			case gap > cellGap:
				flush()
			case gap > wordGap:
				b.WriteByte(' ')
			}
		}
		b.WriteString(f.s)
		prevEnd = f.x + f.w
	}
	flush()
	return cells
}

// buildPage assembles the page text and finds tables: every maximal run of
// consecutive rows with at least two cells, provided the run has at least
// two rows.
func buildPage(num int, rows [][]string) types.Page {
	var (
		tables []types.Table
		run    types.Table
		lines  = make([]string, 0, len(rows))
	)
	flush := func() {
		if len(run) >= 2 {
			tables = append(tables, run)
		}
		run = nil
	}
	for _, cells := range rows {
		lines = append(lines, strings.Join(cells, " "))
		if len(cells) >= 2 {
			run = append(run, cells)
			continue
		}
		flush()
	}
	flush()

	return types.Page{
		Number: num,
		Tables: tables,
		Text:   strings.Join(lines, "\n"),
	}
}
