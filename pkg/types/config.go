// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// OutputFormat selects how tables are written.
type OutputFormat string

const (
	FormatCSV  OutputFormat = "csv"
	FormatXLSX OutputFormat = "xlsx"
)

// DecoderBackend identifies the PDF decoding backend.
type DecoderBackend string

const (
	BackendPDF       DecoderBackend = "pdf"
	BackendPdftotext DecoderBackend = "pdftotext"
)

// DecoderConfig holds settings for the PDF decoder.
type DecoderConfig struct {
	// Backend selects the decoder: pdf (native, finds tables) or pdftotext
	// (poppler, text only).
	Backend DecoderBackend `json:"backend" yaml:"backend" mapstructure:"backend"`

	// RowTolerance is the maximum vertical distance, in points, between
	// text fragments placed on the same row (default 2).
	RowTolerance float64 `json:"row_tolerance" yaml:"row_tolerance" mapstructure:"row_tolerance"`

	// CellGap is the horizontal gap, in points, above which two fragments
	// on a row start separate cells (default 8).
	CellGap float64 `json:"cell_gap" yaml:"cell_gap" mapstructure:"cell_gap"`

	// Pdftotext is the pdftotext binary name or path (default "pdftotext").
	Pdftotext string `json:"pdftotext" yaml:"pdftotext" mapstructure:"pdftotext"`
}

// CatalogConfig holds settings for the SQLite staging catalog.
type CatalogConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled" mapstructure:"enabled"`

	// Path is the database file; empty means <output_dir>/catalog.db.
	Path string `json:"path" yaml:"path" mapstructure:"path"`

	// MaxResults is the default query limit (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// ExtractionConfig groups everything a structured extraction run needs.
type ExtractionConfig struct {
	// SuppliersDir is the directory holding the supplier PDFs.
	SuppliersDir string `json:"suppliers_dir" yaml:"suppliers_dir" mapstructure:"suppliers_dir"`

	// OutputDir receives the per-supplier and combined tables.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	Format OutputFormat `json:"format" yaml:"format" mapstructure:"format"`

	// CombinedName is the combined table file name.
	CombinedName string `json:"combined_name" yaml:"combined_name" mapstructure:"combined_name"`

	// RulesFile optionally replaces the built-in category and brand rules.
	RulesFile string `json:"rules_file" yaml:"rules_file" mapstructure:"rules_file"`

	// MetricsFile, when set, receives run counters in Prometheus text format.
	MetricsFile string `json:"metrics_file" yaml:"metrics_file" mapstructure:"metrics_file"`

	Decoder DecoderConfig `json:"decoder" yaml:"decoder" mapstructure:"decoder"`

	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`

	// Suppliers is processed in list order.
	Suppliers []SupplierConfig `json:"suppliers" yaml:"suppliers" mapstructure:"suppliers"`
}

// DumpConfig holds settings for the plain-text dump.
type DumpConfig struct {
	// OutputDir receives one <stem>.txt per PDF.
	OutputDir string `json:"output_dir" yaml:"output_dir" mapstructure:"output_dir"`

	// Overwrite re-dumps PDFs whose text file already exists.
	Overwrite bool `json:"overwrite" yaml:"overwrite" mapstructure:"overwrite"`

	Decoder DecoderConfig `json:"decoder" yaml:"decoder" mapstructure:"decoder"`
}
