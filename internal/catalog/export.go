// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// Export is the document handed to the seed script.
type Export struct {
	Run      *Run                  `json:"run,omitempty" yaml:"run,omitempty"`
	Products []types.ProductRecord `json:"products" yaml:"products"`
}

// ExportYAML writes the staged products to export.yaml next to the
// database and returns the path. It supports the same filters as Query.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	doc, err := s.export(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.yaml")
	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the staged products to export.json next to the
// database and returns the path. It supports the same filters as Query.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	doc, err := s.export(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.json")
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) export(ctx context.Context, opts QueryOptions) (Export, error) {
	opts.MaxResults = -1
	products, err := s.Query(ctx, opts)
	if err != nil {
		return Export{}, fmt.Errorf("querying for export: %w", err)
	}
	if products == nil {
		products = []types.ProductRecord{}
	}

	doc := Export{Products: products}
	run, err := s.LastRun(ctx)
	switch {
	case err == nil:
		doc.Run = &run
	case !errors.Is(err, ErrNoRuns):
		return Export{}, err
	}
	return doc, nil
}
