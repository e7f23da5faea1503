// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pricelist CLI. Run without a
// subcommand it extracts every configured supplier price list.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// version is set at build time via ldflags.
var version = "dev"

// logger is built in PersistentPreRunE from --verbose.
var logger = zap.NewNop()

// rootCmd is the base command for the pricelist CLI.
var rootCmd = &cobra.Command{
	Use:   "pricelist",
	Short: "Extract product and pricing data from supplier PDF price lists",
	Long: `pricelist reads the supplier PDF price lists in the suppliers directory,
finds the rows that carry a dollar price, and normalizes them into product
records (category, supplier, brand, description, specification, part number,
price, page). It writes one table per supplier plus a combined table, and
stages the records in a SQLite catalog for the database import.

Running pricelist with no subcommand is the same as "pricelist extract".`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		l, err := newLogger(verbose)
		if err != nil {
			return fmt.Errorf("building logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runExtract,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pricelist.yaml or ~/.config/pricelist/pricelist.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging, including every rejected candidate")

	addExtractFlags(rootCmd)
	setDefaults(viper.GetViper())
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pricelist")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pricelist"))
		}
	}

	viper.SetEnvPrefix("PRICELIST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger returns a production logger at Info, or a development logger
// at Debug when verbose is set. Both write to stderr.
func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	return cfg.Build()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
