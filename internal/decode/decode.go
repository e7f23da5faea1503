// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package decode turns supplier PDFs into per-page text and table grids.
// Two backends are available: a native one built on github.com/ledongthuc/pdf
// that reconstructs tables from positioned text, and one that shells out to
// poppler's pdftotext and yields text only.
package decode

import (
	"context"
	"fmt"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

const (
	defaultRowTolerance = 2.0
	defaultCellGap      = 8.0
	defaultPdftotext    = "pdftotext"
)

// Decoder reads a PDF and returns its pages in document order.
type Decoder interface {
	// Decode opens the PDF at path and returns one Page per document page.
	// Pages with nothing extractable come back empty, not as errors.
	Decode(ctx context.Context, path string) ([]types.Page, error)
}

// New builds the decoder selected by cfg.Backend, filling in defaults for
// zero-valued settings.
func New(cfg types.DecoderConfig) (Decoder, error) {
	cfg = WithDefaults(cfg)
	switch cfg.Backend {
	case types.BackendPDF:
		return NewPDFDecoder(cfg.RowTolerance, cfg.CellGap), nil
	case types.BackendPdftotext:
		return NewPdftotextDecoder(cfg.Pdftotext), nil
	default:
		return nil, fmt.Errorf("unsupported decoder backend %q: use pdf or pdftotext", cfg.Backend)
	}
}

// WithDefaults returns cfg with zero values replaced by defaults.
func WithDefaults(cfg types.DecoderConfig) types.DecoderConfig {
	if cfg.Backend == "" {
		cfg.Backend = types.BackendPDF
	}
	if cfg.RowTolerance <= 0 {
		cfg.RowTolerance = defaultRowTolerance
	}
	if cfg.CellGap <= 0 {
		cfg.CellGap = defaultCellGap
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = defaultPdftotext
	}
	return cfg
}
