// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// CSVSink writes tables as comma-separated files with "\n" line endings.
type CSVSink struct {
	dir string
}

// NewCSVSink creates a sink writing into dir.
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir}
}

// WriteTable implements Sink. name is used as given, e.g. "baywa_products.csv".
func (s *CSVSink) WriteTable(name string, records []types.ProductRecord) (path string, err error) {
	if err := ensureDir(s.dir); err != nil {
		return "", err
	}
	path = filepath.Join(s.dir, withExt(name, ".csv"))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close csv file: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(types.Columns); err != nil {
		return "", fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		if err := w.Write(r.Row()); err != nil {
			return "", fmt.Errorf("write csv record: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("flush csv records: %w", err)
	}
	return path, nil
}
