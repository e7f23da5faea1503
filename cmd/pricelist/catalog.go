// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pricelist-extract/internal/catalog"
	"github.com/pdiddy/pricelist-extract/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect and export the staging catalog",
	Long: `Catalog reads the SQLite staging catalog filled by extract. Use list to
query staged products and export to write the seed file for the database
import.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staged products",
	Args:  cobra.NoArgs,
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	if store == nil {
		return formatProducts(cmd.OutOrStdout(), nil, jsonOutput)
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)
	opts.MaxResults, _ = cmd.Flags().GetInt("limit")

	products, err := store.Query(cmd.Context(), opts)
	if err != nil {
		return err
	}
	return formatProducts(cmd.OutOrStdout(), products, jsonOutput)
}

func formatProducts(w io.Writer, products []types.ProductRecord, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if products == nil {
			products = []types.ProductRecord{}
		}
		return enc.Encode(products)
	}

	if len(products) == 0 {
		fmt.Fprintln(w, "No products found.")
		return nil
	}

	fmt.Fprintf(w, "%-14s  %-14s  %-12s  %-44s  %-8s  %12s  %s\n",
		"Category", "Supplier", "Brand", "Description", "Spec", "Price", "Page")
	fmt.Fprintln(w, strings.Repeat("-", 124))

	for _, p := range products {
		fmt.Fprintf(w, "%-14s  %-14s  %-12s  %-44s  %-8s  %12s  %d\n",
			string(p.Category), clip(p.Supplier, 14), clip(p.Brand, 12),
			clip(p.Description, 44), p.Specification, p.PriceText(), p.Page)
	}

	fmt.Fprintf(w, "\n%d products\n", len(products))
	return nil
}

// clip shortens s to n runes, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export staged products to YAML or JSON",
	Long: `Export writes the staged products (or a filtered subset) to export.yaml
or export.json next to the catalog database, together with the import run
they came from.`,
	Args: cobra.NoArgs,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "yaml", "json", "":
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	if store == nil {
		return nil
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd)

	var path string
	if format == "json" {
		path, err = store.ExportJSON(cmd.Context(), opts)
	} else {
		path, err = store.ExportYAML(cmd.Context(), opts)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

// --- shared helpers ---

// openCatalog opens the configured catalog database. When the database
// does not exist yet it reports that and returns a nil store without
// creating anything.
func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	v := viper.GetViper()
	// Only the directory flags map to configuration here; --format on
	// export is the export format, not the table format.
	if err := bindFlags(v, cmd.Flags(), "suppliers-dir", "output-dir"); err != nil {
		return nil, err
	}
	cfg, err := extractionConfig(v)
	if err != nil {
		return nil, err
	}

	dbPath := catalog.Path(cfg.Catalog, cfg.OutputDir)
	if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(cmd.ErrOrStderr(), "catalog is empty: run pricelist extract first")
		return nil, nil
	}

	store, err := catalog.NewStore(dbPath, cfg.Catalog.MaxResults)
	if err != nil {
		return nil, err
	}
	if _, err := store.LastRun(cmd.Context()); errors.Is(err, catalog.ErrNoRuns) {
		fmt.Fprintln(cmd.ErrOrStderr(), "catalog is empty: run pricelist extract first")
	}
	return store, nil
}

func queryOptsFromFlags(cmd *cobra.Command) catalog.QueryOptions {
	supplier, _ := cmd.Flags().GetString("supplier")
	category, _ := cmd.Flags().GetString("category")
	brand, _ := cmd.Flags().GetString("brand")
	text, _ := cmd.Flags().GetString("text")
	return catalog.QueryOptions{
		Supplier: supplier,
		Category: types.Category(category),
		Brand:    brand,
		Text:     text,
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("supplier", "", "filter by supplier name")
	cmd.Flags().String("category", "", "filter by category, e.g. \"Solar Panels\"")
	cmd.Flags().String("brand", "", "filter by brand")
	cmd.Flags().String("text", "", "filter by description substring")
}

func init() {
	catalogCmd.PersistentFlags().String("suppliers-dir", "suppliers", "directory holding the supplier PDFs")
	catalogCmd.PersistentFlags().String("output-dir", "", "directory holding catalog.db (default: <suppliers-dir>/extracted)")

	addFilterFlags(catalogListCmd)
	catalogListCmd.Flags().Int("limit", 0, "maximum results (default: catalog.max_results)")
	catalogListCmd.Flags().Bool("json", false, "output results as JSON")

	addFilterFlags(catalogExportCmd)
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	catalogCmd.AddCommand(catalogListCmd, catalogExportCmd)
	rootCmd.AddCommand(catalogCmd)
}
