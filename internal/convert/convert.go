// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert dumps the raw text of supplier PDFs to one plain-text file
// per PDF, with a page marker before each page. No structured parsing
// happens here.
package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/pricelist-extract/internal/decode"
	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// Status is the outcome of dumping one PDF.
type Status string

const (
	StatusDumped  Status = "dumped"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// BatchResult holds the outcome of a batch dump run.
type BatchResult struct {
	Dumped  int
	Skipped int
	Failed  int
}

// Total returns the total number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Dumped + r.Skipped + r.Failed
}

// HasFailures reports whether any PDF failed to dump.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// TextPath returns the dump file for pdfPath: <outDir>/<stem>.txt.
func TextPath(pdfPath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(outDir, base+".txt")
}

// Render formats decoded pages as the dump body.
func Render(pages []types.Page) string {
	var b strings.Builder
	for _, p := range pages {
		fmt.Fprintf(&b, "--- PAGE %d ---\n", p.Number)
		b.WriteString(p.Text)
		b.WriteString("\n\n")
	}
	return b.String()
}

// DumpFile decodes one PDF and writes its text dump into cfg.OutputDir. An
// existing dump is left alone unless cfg.Overwrite is set.
func DumpFile(ctx context.Context, d decode.Decoder, pdfPath string, cfg types.DumpConfig, w io.Writer) Status {
	txtPath := TextPath(pdfPath, cfg.OutputDir)
	name := filepath.Base(pdfPath)

	if !cfg.Overwrite {
		if _, err := os.Stat(txtPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", name)
			return StatusSkipped
		}
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return StatusFailed
	}

	pages, err := d.Decode(ctx, pdfPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return StatusFailed
	}

	if err := os.WriteFile(txtPath, []byte(Render(pages)), 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", name, err)
		return StatusFailed
	}

	fmt.Fprintf(w, "dumped:  %s -> %s (%d pages)\n", name, txtPath, len(pages))
	return StatusDumped
}

// DumpPaths dumps each PDF in order, printing per-file status to w and
// returning a summary. A cancelled context stops the batch before the next
// file.
func DumpPaths(ctx context.Context, d decode.Decoder, pdfPaths []string, cfg types.DumpConfig, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		if ctx.Err() != nil {
			break
		}
		switch DumpFile(ctx, d, p, cfg, w) {
		case StatusDumped:
			result.Dumped++
		case StatusSkipped:
			result.Skipped++
		case StatusFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nDump summary: %d dumped, %d skipped, %d failed (total: %d)\n",
		result.Dumped, result.Skipped, result.Failed, result.Total())
	return result
}

// SupplierPaths returns the configured supplier PDFs that exist under dir,
// in configuration order.
func SupplierPaths(dir string, suppliers []types.SupplierConfig) []string {
	var paths []string
	for _, s := range suppliers {
		p := filepath.Join(dir, s.File)
		if _, err := os.Stat(p); err == nil {
			paths = append(paths, p)
		}
	}
	return paths
}
