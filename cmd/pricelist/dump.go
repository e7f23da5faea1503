// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/pricelist-extract/internal/convert"
	"github.com/pdiddy/pricelist-extract/internal/decode"
	"github.com/pdiddy/pricelist-extract/pkg/types"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [pdfs...]",
	Short: "Dump the raw text of PDFs to .txt files",
	Long: `Dump writes the extracted text of each PDF to <name>.txt, with a
"--- PAGE N ---" marker before every page. No structured parsing is done.

With no arguments it dumps every configured supplier PDF that exists.
Existing text files are skipped unless --overwrite is given.`,
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().String("suppliers-dir", "suppliers", "directory holding the supplier PDFs")
	dumpCmd.Flags().String("text-dir", "", "directory for the .txt files (default: <suppliers-dir>/text)")
	dumpCmd.Flags().String("backend", "pdf", "PDF decoder: pdf or pdftotext")
	dumpCmd.Flags().Bool("overwrite", false, "re-dump PDFs whose .txt already exists")

	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	v := viper.GetViper()
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	cfg, err := extractionConfig(v)
	if err != nil {
		return err
	}

	textDir, _ := cmd.Flags().GetString("text-dir")
	if textDir == "" {
		textDir = filepath.Join(cfg.SuppliersDir, "text")
	}
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	dcfg := types.DumpConfig{
		OutputDir: textDir,
		Overwrite: overwrite,
		Decoder:   cfg.Decoder,
	}
	dec, err := decode.New(dcfg.Decoder)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		paths = convert.SupplierPaths(cfg.SuppliersDir, cfg.Suppliers)
		if len(paths) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No supplier PDFs found in %s\n", cfg.SuppliersDir)
			return nil
		}
	}

	result := convert.DumpPaths(cmd.Context(), dec, paths, dcfg, cmd.OutOrStdout())
	if result.HasFailures() {
		logger.Warn("dump finished with failures",
			zap.Int("failed", result.Failed),
			zap.Int("total", result.Total()))
	}
	return nil
}
