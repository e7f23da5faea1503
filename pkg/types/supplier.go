// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SupplierConfig maps one supplier price-list PDF to a display name and an
// output table identifier.
type SupplierConfig struct {
	// File is the PDF file name inside the suppliers directory.
	File string `json:"file" yaml:"file" mapstructure:"file"`

	// Name is the supplier display name written to every record.
	Name string `json:"name" yaml:"name" mapstructure:"name"`

	// Output is the per-supplier table file name (e.g. "baywa_products.csv").
	Output string `json:"output" yaml:"output" mapstructure:"output"`
}
