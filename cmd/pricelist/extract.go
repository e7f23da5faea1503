// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pricelist-extract/internal/catalog"
	"github.com/pdiddy/pricelist-extract/internal/decode"
	"github.com/pdiddy/pricelist-extract/internal/extract"
	"github.com/pdiddy/pricelist-extract/internal/metrics"
	"github.com/pdiddy/pricelist-extract/internal/output"
	"github.com/pdiddy/pricelist-extract/internal/pipeline"
	"github.com/pdiddy/pricelist-extract/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract product records from every configured supplier PDF",
	Long: `Extract processes the configured supplier PDFs in order. Missing files
and unreadable PDFs are reported and skipped. Each supplier with products
gets its own table; all records also go to the combined table and the
staging catalog. A run that finds nothing still exits 0.`,
	Args: cobra.NoArgs,
	RunE: runExtract,
}

func init() {
	addExtractFlags(extractCmd)
	rootCmd.AddCommand(extractCmd)
}

func addExtractFlags(cmd *cobra.Command) {
	cmd.Flags().String("suppliers-dir", "suppliers", "directory holding the supplier PDFs")
	cmd.Flags().String("output-dir", "", "directory for extracted tables (default: <suppliers-dir>/extracted)")
	cmd.Flags().String("format", "csv", "table format: csv or xlsx")
	cmd.Flags().String("backend", "pdf", "PDF decoder: pdf or pdftotext")
	cmd.Flags().String("rules", "", "YAML file with category and brand rules (default: built-in)")
	cmd.Flags().String("metrics-file", "", "write run counters to this Prometheus textfile")
	cmd.Flags().Bool("catalog", true, "stage records in the SQLite catalog")
}

func runExtract(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := extractionConfig(v)
	if err != nil {
		return err
	}

	runner, closeFn, err := newRunner(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	result, err := runner.Run(cmd.Context(), cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	logger.Info("extraction finished",
		zap.Int("suppliers_processed", result.Processed),
		zap.Int("suppliers_skipped", len(result.Skipped)),
		zap.Int("records", result.Summary.Total))
	return nil
}

// newRunner builds the pipeline stages for cfg. The returned func releases
// the catalog database.
func newRunner(cfg types.ExtractionConfig) (*pipeline.Runner, func(), error) {
	noop := func() {}

	dec, err := decode.New(cfg.Decoder)
	if err != nil {
		return nil, noop, err
	}
	rules, err := extract.LoadRules(cfg.RulesFile)
	if err != nil {
		return nil, noop, err
	}
	sink, err := output.New(cfg.Format, cfg.OutputDir)
	if err != nil {
		return nil, noop, err
	}

	runner := &pipeline.Runner{
		Decoder:   dec,
		Extractor: extract.New(rules, logger),
		Sink:      sink,
		Log:       logger,
	}
	if cfg.MetricsFile != "" {
		runner.Metrics = metrics.New()
	}
	if !cfg.Catalog.Enabled {
		return runner, noop, nil
	}

	store, err := catalog.NewStore(catalog.Path(cfg.Catalog, cfg.OutputDir), cfg.Catalog.MaxResults)
	if err != nil {
		return nil, noop, err
	}
	runner.Catalog = store
	return runner, func() {
		if err := store.Close(); err != nil {
			logger.Warn("closing catalog", zap.Error(err))
		}
	}, nil
}
