// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package suppliers holds the built-in supplier list and validates
// configured ones.
package suppliers

import (
	"errors"
	"fmt"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

var builtin = []types.SupplierConfig{
	{File: "BayWa re Price List (7).pdf", Name: "BayWa r.e.", Output: "baywa_products.csv"},
	{File: "Go Solar PriceList - AUGUST 2025.pdf", Name: "Go Solar", Output: "gosolar_products.csv"},
	{File: "Raystech Price list2.pdf", Name: "Raystech", Output: "raystech_products.csv"},
	{File: "SG Wholesale Pricelist V8 2025.pdf", Name: "SG Wholesale", Output: "sgwholesale_products.csv"},
	{File: "Sigenergy Price list.pdf", Name: "Sigenergy", Output: "sigenergy_products.csv"},
	{File: "Sunsavers Price (2).pdf", Name: "Sunsavers", Output: "sunsavers_products.csv"},
	{File: "iStore Guide - Jan 25.pdf", Name: "iStore", Output: "istore_products.csv"},
}

// Default returns a copy of the built-in supplier list in processing order.
func Default() []types.SupplierConfig {
	return append([]types.SupplierConfig(nil), builtin...)
}

// Validate checks that every supplier names a file, a display name, and an
// output, and that no two suppliers share a file or an output.
func Validate(list []types.SupplierConfig) error {
	if len(list) == 0 {
		return errors.New("no suppliers configured")
	}
	files := make(map[string]bool, len(list))
	outputs := make(map[string]bool, len(list))
	for i, s := range list {
		switch {
		case s.File == "":
			return fmt.Errorf("supplier %d: file is required", i)
		case s.Name == "":
			return fmt.Errorf("supplier %d (%s): name is required", i, s.File)
		case s.Output == "":
			return fmt.Errorf("supplier %d (%s): output is required", i, s.File)
		}
		if files[s.File] {
			return fmt.Errorf("supplier %d: duplicate file %q", i, s.File)
		}
		if outputs[s.Output] {
			return fmt.Errorf("supplier %d: duplicate output %q", i, s.Output)
		}
		files[s.File] = true
		outputs[s.Output] = true
	}
	return nil
}
