// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package decode

import (
	"context"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// word builds a fragment whose width is 5 points per character.
func word(x, y float64, s string) fragment {
	return fragment{x: x, y: y, w: float64(len(s)) * 5, s: s}
}

func TestGroupRows(t *testing.T) {
	frags := []fragment{
		word(300, 700.5, "$250.00"),
		word(10, 700, "Jinko"),
		word(10, 680, "Trina"),
		word(300, 681, "$240.00"),
		word(10, 720, "Header"),
	}

	rows := groupRows(frags, 2)
	require.Len(t, rows, 3)
	assert.Equal(t, "Header", rows[0][0].s)
	assert.Equal(t, []string{"Jinko", "$250.00"}, []string{rows[1][0].s, rows[1][1].s})
	assert.Equal(t, []string{"Trina", "$240.00"}, []string{rows[2][0].s, rows[2][1].s})
}

func TestGroupRows_Empty(t *testing.T) {
	assert.Nil(t, groupRows(nil, 2))
}

func TestSplitCells(t *testing.T) {
	tests := []struct {
		name string
		row  []fragment
		want []string
	}{
		{
			name: "characters glue into one word",
			row: []fragment{
				{x: 10, w: 5, s: "J"}, {x: 15, w: 5, s: "K"}, {x: 20, w: 5, s: "M"},
			},
			want: []string{"JKM"},
		},
		{
			name: "small gap becomes a space",
			row:  []fragment{word(10, 0, "Jinko"), word(38, 0, "400W")},
			want: []string{"Jinko 400W"},
		},
		{
			name: "wide gap starts a new cell",
			row:  []fragment{word(10, 0, "Jinko"), word(38, 0, "400W"), word(200, 0, "$250.00")},
			want: []string{"Jinko 400W", "$250.00"},
		},
		{
			name: "whitespace-only fragments are dropped",
			row:  []fragment{word(10, 0, " "), word(100, 0, "Panel")},
			want: []string{"Panel"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitCells(tt.row, 8))
		})
	}
}

func TestBuildPage(t *testing.T) {
	rows := [][]string{
		{"Price List August"},
		{"Part", "Description", "Price"},
		{"JKM400", "Jinko 400W Panel", "$250.00"},
		{"Notes apply"},
		{"Lonely multi", "$1"},
		{"Footer"},
	}

	page := buildPage(3, rows)
	assert.Equal(t, 3, page.Number)
	require.Len(t, page.Tables, 1, "single multi-cell rows do not form tables")
	assert.Equal(t, types.Table{
		{"Part", "Description", "Price"},
		{"JKM400", "Jinko 400W Panel", "$250.00"},
	}, page.Tables[0])
	assert.Equal(t,
		"Price List August\nPart Description Price\nJKM400 Jinko 400W Panel $250.00\nNotes apply\nLonely multi $1\nFooter",
		page.Text)
}

func TestBuildPage_TwoTables(t *testing.T) {
	rows := [][]string{
		{"a", "b"}, {"c", "d"},
		{"break"},
		{"e", "f"}, {"g", "h"}, {"i", "j"},
	}
	page := buildPage(1, rows)
	require.Len(t, page.Tables, 2)
	assert.Len(t, page.Tables[0], 2)
	assert.Len(t, page.Tables[1], 3)
}

func TestBuildPage_Empty(t *testing.T) {
	page := buildPage(2, nil)
	assert.Equal(t, types.Page{Number: 2, Text: ""}, page)
}

func TestPDFDecoder_Layout(t *testing.T) {
	d := NewPDFDecoder(2, 8)
	frags := []fragment{
		word(10, 700, "Model"), word(200, 700, "Price"),
		word(10, 680, "Jinko"), word(38, 680, "400W"), word(200, 680, "$250.00"),
	}
	var texts []pdf.Text
	for _, f := range frags {
		texts = append(texts, pdf.Text{X: f.x, Y: f.y, W: f.w, S: f.s})
	}

	page := d.layout(1, texts)
	require.Len(t, page.Tables, 1)
	assert.Equal(t, []string{"Jinko 400W", "$250.00"}, page.Tables[0][1])
}

func TestPDFDecoder_MissingFile(t *testing.T) {
	d := NewPDFDecoder(2, 8)
	_, err := d.Decode(context.Background(), "does-not-exist.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "opening PDF")
}
