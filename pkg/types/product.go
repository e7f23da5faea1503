// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the data shared between the extraction stages:
// decoder output, candidate rows, normalized product records, and the
// configuration structs read by the CLI.
package types

import (
	"fmt"
	"strconv"
)

// Category is the product family a record is filed under.
type Category string

const (
	CategorySolarPanels Category = "Solar Panels"
	CategoryInverters   Category = "Inverters"
	CategoryBatteries   Category = "Batteries"
	CategoryMounting    Category = "Mounting"
	CategoryCables      Category = "Cables"
	CategoryEVChargers  Category = "EV Chargers"
	CategoryAccessories Category = "Accessories"
)

// Columns is the fixed header of every product table.
var Columns = []string{
	"Category",
	"Supplier",
	"Brand",
	"Product Description",
	"Specifications",
	"Vendor Part No#",
	"Price (ex. GST)",
	"Page",
}

// ProductRecord is one normalized product extracted from a supplier price list.
type ProductRecord struct {
	Category Category `json:"category" yaml:"category"`

	Supplier string `json:"supplier" yaml:"supplier"`

	// Brand is a known manufacturer name or, failing that, the first
	// token of the source text.
	Brand string `json:"brand" yaml:"brand"`

	// Description is the source text with the price removed, whitespace
	// collapsed, and cut to 100 characters.
	Description string `json:"description" yaml:"description"`

	// Specification is the wattage ("400W") or empty.
	Specification string `json:"specification" yaml:"specification"`

	PartNumber string `json:"part_number" yaml:"part_number"`

	// Price is always positive; ex. GST.
	Price float64 `json:"price" yaml:"price"`

	// Page is the 1-based page the record was found on.
	Page int `json:"page" yaml:"page"`
}

// PriceText renders the price as "$" followed by two decimal places.
func (r ProductRecord) PriceText() string {
	return fmt.Sprintf("$%.2f", r.Price)
}

// Row returns the record's cells in Columns order.
func (r ProductRecord) Row() []string {
	return []string{
		string(r.Category),
		r.Supplier,
		r.Brand,
		r.Description,
		r.Specification,
		r.PartNumber,
		r.PriceText(),
		strconv.Itoa(r.Page),
	}
}
