// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Table is a rectangular-ish grid of cell texts as produced by a decoder.
// Row 0 is the header row. An empty string is an empty cell.
type Table [][]string

// Page is one decoded PDF page. A decoder fills Tables when it can find
// tabular structure and always fills Text with the page's plain text,
// one visual line per text line.
type Page struct {
	// Number is the 1-based page number in document order.
	Number int

	Tables []Table

	Text string
}

// CandidateKind tells where a candidate row came from.
type CandidateKind string

const (
	CandidateTableRow CandidateKind = "table_row"
	CandidateTextLine CandidateKind = "text_line"
)

// Candidate is a table row or free-text line that plausibly carries a
// price. It lives only between the collector and the extractor.
type Candidate struct {
	Kind CandidateKind

	// Cells is the original table row; nil for text lines.
	Cells []string

	// Text is the joined row text or the raw text line.
	Text string

	Page int

	// Table is the index of the source table on its page; -1 for text lines.
	Table int
}
