// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package aggregate collects normalized records per supplier, writes the
// per-supplier and combined tables, and computes count summaries.
package aggregate

import (
	"fmt"
	"io"

	"github.com/pdiddy/pricelist-extract/internal/output"
	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// DefaultCombinedName is the combined table's file name.
const DefaultCombinedName = "all_products_combined.csv"

// Count is one summary line.
type Count struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// Summary is the end-of-run report.
type Summary struct {
	Total        int     `json:"total" yaml:"total"`
	CombinedPath string  `json:"combined_path,omitempty" yaml:"combined_path,omitempty"`
	BySupplier   []Count `json:"by_supplier" yaml:"by_supplier"`
	ByCategory   []Count `json:"by_category" yaml:"by_category"`
}

// Aggregator owns the run-wide record list. Suppliers are added one at a
// time; Finish writes the combined table.
type Aggregator struct {
	sink         output.Sink
	combinedName string
	w            io.Writer
	all          []types.ProductRecord
}

// New creates an Aggregator writing through sink and reporting to w.
func New(sink output.Sink, combinedName string, w io.Writer) *Aggregator {
	if combinedName == "" {
		combinedName = DefaultCombinedName
	}
	if w == nil {
		w = io.Discard
	}
	return &Aggregator{sink: sink, combinedName: combinedName, w: w}
}

// AddSupplier writes the supplier's table and appends its records to the
// run-wide list. A supplier without records writes nothing.
func (a *Aggregator) AddSupplier(cfg types.SupplierConfig, records []types.ProductRecord) error {
	if len(records) == 0 {
		return nil
	}
	path, err := a.sink.WriteTable(cfg.Output, records)
	if err != nil {
		return fmt.Errorf("writing table for %s: %w", cfg.Name, err)
	}
	fmt.Fprintf(a.w, "   Saved to: %s\n", path)
	a.all = append(a.all, records...)
	return nil
}

// Records returns the accumulated records in insertion order.
func (a *Aggregator) Records() []types.ProductRecord {
	return a.all
}

// Finish writes the combined table and prints the summaries. With no
// records it writes nothing and returns an empty Summary. A failed combined
// write is returned as an error alongside a Summary that still carries the
// counts; only CombinedPath is left empty.
func (a *Aggregator) Finish() (Summary, error) {
	if len(a.all) == 0 {
		return Summary{}, nil
	}

	s := Summary{
		Total:      len(a.all),
		BySupplier: CountBy(a.all, func(r types.ProductRecord) string { return r.Supplier }),
		ByCategory: CountBy(a.all, func(r types.ProductRecord) string { return string(r.Category) }),
	}

	fmt.Fprintf(a.w, "\nTotal products extracted: %d\n", s.Total)
	path, writeErr := a.sink.WriteTable(a.combinedName, a.all)
	if writeErr != nil {
		writeErr = fmt.Errorf("writing combined table: %w", writeErr)
		fmt.Fprintf(a.w, "Combined file not written: %v\n", writeErr)
	} else {
		s.CombinedPath = path
		fmt.Fprintf(a.w, "Combined file saved to: %s\n", path)
	}

	fmt.Fprintln(a.w, "\nProducts by Supplier:")
	for _, c := range s.BySupplier {
		fmt.Fprintf(a.w, "   %s: %d products\n", c.Key, c.Count)
	}
	fmt.Fprintln(a.w, "\nProducts by Category:")
	for _, c := range s.ByCategory {
		fmt.Fprintf(a.w, "   %s: %d products\n", c.Key, c.Count)
	}
	return s, writeErr
}

// CountBy counts records per key, in the order keys first appear.
func CountBy(records []types.ProductRecord, key func(types.ProductRecord) string) []Count {
	index := make(map[string]int)
	var counts []Count
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(counts)
			index[k] = i
			counts = append(counts, Count{Key: k})
		}
		counts[i].Count++
	}
	return counts
}
