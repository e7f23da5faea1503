// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect selects candidate product rows from decoded pages: table
// rows and free-text lines that plausibly carry a price.
package collect

import (
	"strings"

	"github.com/pdiddy/pricelist-extract/internal/money"
	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// Page returns the candidates on one decoded page. When the page has
// tables only table rows are considered; free text is scanned only for
// pages without tables.
func Page(p types.Page) []types.Candidate {
	if len(p.Tables) == 0 {
		return textLines(p)
	}

	var out []types.Candidate
	for ti, table := range p.Tables {
		if len(table) < 2 {
			continue
		}
		// Row 0 is the header.
		for _, row := range table[1:] {
			if len(row) < 2 {
				continue
			}
			text := JoinCells(row)
			if !money.Contains(text) {
				continue
			}
			out = append(out, types.Candidate{
				Kind:  types.CandidateTableRow,
				Cells: row,
				Text:  text,
				Page:  p.Number,
				Table: ti,
			})
		}
	}
	return out
}

// Pages collects candidates from every page in order.
func Pages(pages []types.Page) []types.Candidate {
	var out []types.Candidate
	for _, p := range pages {
		out = append(out, Page(p)...)
	}
	return out
}

// JoinCells space-joins the non-empty cells of a table row.
func JoinCells(row []string) string {
	parts := make([]string, 0, len(row))
	for _, c := range row {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, " ")
}

func textLines(p types.Page) []types.Candidate {
	if p.Text == "" {
		return nil
	}
	var out []types.Candidate
	for _, line := range strings.Split(p.Text, "\n") {
		if !money.LooksPriced(line) {
			continue
		}
		out = append(out, types.Candidate{
			Kind:  types.CandidateTextLine,
			Text:  line,
			Page:  p.Number,
			Table: -1,
		})
	}
	return out
}
