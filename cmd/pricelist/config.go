// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/pricelist-extract/internal/aggregate"
	"github.com/pdiddy/pricelist-extract/internal/suppliers"
	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"suppliers-dir": "suppliers_dir",
	"output-dir":    "output_dir",
	"format":        "format",
	"backend":       "decoder.backend",
	"rules":         "rules_file",
	"metrics-file":  "metrics_file",
	"catalog":       "catalog.enabled",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("suppliers_dir", "suppliers")
	v.SetDefault("output_dir", "")
	v.SetDefault("format", string(types.FormatCSV))
	v.SetDefault("combined_name", aggregate.DefaultCombinedName)
	v.SetDefault("rules_file", "")
	v.SetDefault("metrics_file", "")
	v.SetDefault("decoder.backend", string(types.BackendPDF))
	v.SetDefault("decoder.row_tolerance", 2.0)
	v.SetDefault("decoder.cell_gap", 8.0)
	v.SetDefault("decoder.pdftotext", "pdftotext")
	v.SetDefault("catalog.enabled", true)
	v.SetDefault("catalog.path", "")
	v.SetDefault("catalog.max_results", 50)
}

// bindFlags binds the known flags that fs defines, so that a flag set on
// the command line overrides the config file and environment. With names,
// only those flags are considered; commands whose own flags reuse a known
// name for something else pass the subset they mean.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, names ...string) error {
	if len(names) == 0 {
		for name := range flagKeys {
			names = append(names, name)
		}
	}
	for _, name := range names {
		key, ok := flagKeys[name]
		if !ok {
			return fmt.Errorf("no configuration key for --%s", name)
		}
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding --%s: %w", name, err)
		}
	}
	return nil
}

// extractionConfig reads the run configuration from v and fills in the
// values derived from other keys.
func extractionConfig(v *viper.Viper) (types.ExtractionConfig, error) {
	var cfg types.ExtractionConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}

	if cfg.OutputDir == "" {
		cfg.OutputDir = filepath.Join(cfg.SuppliersDir, "extracted")
	}
	if cfg.CombinedName == "" {
		cfg.CombinedName = aggregate.DefaultCombinedName
	}
	if len(cfg.Suppliers) == 0 {
		cfg.Suppliers = suppliers.Default()
	}
	if err := suppliers.Validate(cfg.Suppliers); err != nil {
		return cfg, fmt.Errorf("invalid supplier configuration: %w", err)
	}

	switch cfg.Format {
	case types.FormatCSV, types.FormatXLSX:
	default:
		return cfg, fmt.Errorf("unsupported output format %q: use csv or xlsx", cfg.Format)
	}
	switch cfg.Decoder.Backend {
	case types.BackendPDF, types.BackendPdftotext:
	default:
		return cfg, fmt.Errorf("unsupported decoder backend %q: use pdf or pdftotext", cfg.Decoder.Backend)
	}
	return cfg, nil
}
