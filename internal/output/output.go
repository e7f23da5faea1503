// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package output writes product tables to disk as CSV or XLSX.
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// Sink writes one named product table.
type Sink interface {
	// WriteTable writes records under name (a file name relative to the
	// sink's directory) with a header row, and returns the written path.
	WriteTable(name string, records []types.ProductRecord) (string, error)
}

// New returns the sink for format, writing into dir.
func New(format types.OutputFormat, dir string) (Sink, error) {
	switch format {
	case types.FormatCSV, "":
		return NewCSVSink(dir), nil
	case types.FormatXLSX:
		return NewXLSXSink(dir), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q: use csv or xlsx", format)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	return nil
}

// withExt replaces the extension of name with ext.
func withExt(name, ext string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + ext
}
