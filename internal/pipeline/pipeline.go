// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a structured extraction run: each configured
// supplier PDF is decoded, its candidate rows collected and extracted, and
// the records handed to the aggregator. Suppliers run one at a time in
// configuration order.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/pricelist-extract/internal/aggregate"
	"github.com/pdiddy/pricelist-extract/internal/catalog"
	"github.com/pdiddy/pricelist-extract/internal/collect"
	"github.com/pdiddy/pricelist-extract/internal/decode"
	"github.com/pdiddy/pricelist-extract/internal/extract"
	"github.com/pdiddy/pricelist-extract/internal/metrics"
	"github.com/pdiddy/pricelist-extract/internal/output"
	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// SkipReason says why a supplier contributed no records.
type SkipReason string

const (
	SkipMissing      SkipReason = "missing"
	SkipDecodeError  SkipReason = "decode_error"
	SkipNoCandidates SkipReason = "no_candidates"
	SkipNoRecords    SkipReason = "no_records"
	SkipWriteError   SkipReason = "write_error"
)

var rule = strings.Repeat("=", 70)

// Catalog receives the run's records. *catalog.Store implements it.
type Catalog interface {
	Replace(ctx context.Context, records []types.ProductRecord) (catalog.Run, error)
}

// Skip records one skipped supplier.
type Skip struct {
	Supplier string
	Reason   SkipReason
}

// Result is the outcome of a run.
type Result struct {
	Processed  int
	Skipped    []Skip
	Rejected   map[extract.RejectReason]int
	Summary    aggregate.Summary
	CatalogRun *catalog.Run
}

// Runner wires the stages together. Catalog and Metrics are optional.
type Runner struct {
	Decoder   decode.Decoder
	Extractor *extract.Extractor
	Sink      output.Sink
	Catalog   Catalog
	Metrics   *metrics.Metrics
	Log       *zap.Logger
}

// Run processes every supplier in cfg.Suppliers, printing progress to w.
// A missing or unreadable supplier PDF, or a table that cannot be written,
// is reported and skipped. Only an uncreatable output directory or a
// cancelled context ends the run with an error.
func (r *Runner) Run(ctx context.Context, cfg types.ExtractionConfig, w io.Writer) (Result, error) {
	log := r.Log
	if log == nil {
		log = zap.NewNop()
	}

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "PDF SUPPLIER PRICE LIST EXTRACTOR")
	fmt.Fprintln(w, rule)

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}

	result := Result{Rejected: map[extract.RejectReason]int{}}
	agg := aggregate.New(r.Sink, cfg.CombinedName, w)

	skip := func(s types.SupplierConfig, reason SkipReason) {
		result.Skipped = append(result.Skipped, Skip{Supplier: s.Name, Reason: reason})
		r.Metrics.IncSkipped(string(reason))
	}

	for _, s := range cfg.Suppliers {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		pdfPath := filepath.Join(cfg.SuppliersDir, s.File)
		if _, err := os.Stat(pdfPath); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				fmt.Fprintf(w, "\nSkipping %s (not found)\n", s.File)
				skip(s, SkipMissing)
				continue
			}
			fmt.Fprintf(w, "\nSkipping %s (%v)\n", s.File, err)
			log.Warn("reading supplier pdf",
				zap.String("supplier", s.Name),
				zap.String("path", pdfPath),
				zap.Error(err))
			skip(s, SkipDecodeError)
			continue
		}

		fmt.Fprintf(w, "\nProcessing: %s\n", s.File)
		fmt.Fprintf(w, "   Supplier: %s\n", s.Name)

		start := time.Now()
		pages, err := r.Decoder.Decode(ctx, pdfPath)
		r.Metrics.ObserveDecode(time.Since(start))
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			fmt.Fprintf(w, "   Error: %v\n", err)
			log.Warn("decoding supplier pdf",
				zap.String("supplier", s.Name),
				zap.String("path", pdfPath),
				zap.Error(err))
			skip(s, SkipDecodeError)
			continue
		}
		fmt.Fprintf(w, "   Pages: %d\n", len(pages))

		candidates := collect.Pages(pages)
		fmt.Fprintf(w, "   Found %d potential products\n", len(candidates))
		r.Metrics.AddCandidates(s.Name, len(candidates))
		if len(candidates) == 0 {
			fmt.Fprintln(w, "   No products found")
			skip(s, SkipNoCandidates)
			continue
		}

		records, sum := r.Extractor.ExtractAll(candidates, s.Name)
		fmt.Fprintf(w, "   Processed %d products\n", len(records))
		r.Metrics.AddRecords(s.Name, len(records))
		for reason, n := range sum.Rejected {
			result.Rejected[reason] += n
			r.Metrics.AddRejected(string(reason), n)
		}
		if len(records) == 0 {
			skip(s, SkipNoRecords)
			continue
		}

		if err := agg.AddSupplier(s, records); err != nil {
			fmt.Fprintf(w, "   Error: %v\n", err)
			log.Warn("writing supplier table",
				zap.String("supplier", s.Name),
				zap.String("output", s.Output),
				zap.Error(err))
			skip(s, SkipWriteError)
			continue
		}
		result.Processed++
	}

	summary, err := agg.Finish()
	if err != nil {
		log.Warn("writing combined table", zap.String("output", cfg.CombinedName), zap.Error(err))
	}
	result.Summary = summary

	if r.Catalog != nil && summary.Total > 0 {
		run, err := r.Catalog.Replace(ctx, agg.Records())
		if err != nil {
			fmt.Fprintf(w, "\nCatalog update failed: %v\n", err)
			log.Warn("staging catalog", zap.Error(err))
		} else {
			result.CatalogRun = &run
			fmt.Fprintf(w, "\nCatalog staged: %d products (run %s)\n", run.ProductCount, run.ID)
		}
	}

	if cfg.MetricsFile != "" {
		if err := r.Metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			log.Warn("writing metrics textfile", zap.String("path", cfg.MetricsFile), zap.Error(err))
		}
	}

	fmt.Fprintln(w, "\n"+rule)
	fmt.Fprintln(w, "EXTRACTION COMPLETE!")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "\nNext steps:")
	fmt.Fprintf(w, "1. Review extracted files in: %s\n", cfg.OutputDir)
	fmt.Fprintln(w, "2. Clean up any errors or missing data")
	fmt.Fprintln(w, "3. Run the seed script to import to database")

	return result, nil
}
