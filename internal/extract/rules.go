// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// CategoryRule files a product under Name when any keyword occurs in its
// text, compared case-insensitively.
type CategoryRule struct {
	Name     types.Category `json:"name" yaml:"name"`
	Keywords []string       `json:"keywords" yaml:"keywords"`
}

// Rules are the ordered, first-match-wins tables used for categories and
// brands.
type Rules struct {
	Categories []CategoryRule `json:"categories" yaml:"categories"`

	// DefaultCategory applies when no category rule matches.
	DefaultCategory types.Category `json:"default_category" yaml:"default_category"`

	// Brands are searched in list order.
	Brands []string `json:"brands" yaml:"brands"`
}

var defaultCategoryRules = []CategoryRule{
	{Name: types.CategorySolarPanels, Keywords: []string{"panel", "solar module", "pv module"}},
	{Name: types.CategoryInverters, Keywords: []string{"inverter", "hybrid"}},
	{Name: types.CategoryBatteries, Keywords: []string{"battery", "storage", "powerwall"}},
	{Name: types.CategoryMounting, Keywords: []string{"mount", "rack", "rail", "clamp", "hook"}},
	{Name: types.CategoryCables, Keywords: []string{"cable", "wire", "connector", "mc4"}},
	{Name: types.CategoryEVChargers, Keywords: []string{"charger", "ev", "zappi"}},
}

var defaultBrands = []string{
	// panels
	"Jinko", "Trina", "Longi", "JA Solar", "Canadian", "Risen", "Seraphim",
	"Q.CELLS", "REC", "SunPower", "Aiko", "WINAICO",
	// inverters
	"Fronius", "SMA", "Sungrow", "SolarEdge", "Enphase", "GoodWe", "Huawei",
	// batteries
	"Tesla", "BYD", "Pylontech", "Alpha ESS", "Sigenergy",
	"iStore", "Growatt", "Victron",
	// EV chargers
	"Myenergi",
}

// DefaultRules returns a copy of the built-in rule tables.
func DefaultRules() Rules {
	cats := make([]CategoryRule, len(defaultCategoryRules))
	for i, r := range defaultCategoryRules {
		cats[i] = CategoryRule{Name: r.Name, Keywords: append([]string(nil), r.Keywords...)}
	}
	return Rules{
		Categories:      cats,
		DefaultCategory: types.CategoryAccessories,
		Brands:          append([]string(nil), defaultBrands...),
	}
}

// LoadRules reads rule tables from a YAML file. An empty path returns the
// built-in rules; any table the file leaves empty keeps its built-in value.
func LoadRules(path string) (Rules, error) {
	defaults := DefaultRules()
	if path == "" {
		return defaults, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Rules{}, fmt.Errorf("reading rules file %s: %w", path, err)
	}

	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return Rules{}, fmt.Errorf("parsing rules file %s: %w", path, err)
	}

	for i, c := range r.Categories {
		if c.Name == "" {
			return Rules{}, fmt.Errorf("rules file %s: category %d has no name", path, i+1)
		}
	}

	if len(r.Categories) == 0 {
		r.Categories = defaults.Categories
	}
	if r.DefaultCategory == "" {
		r.DefaultCategory = defaults.DefaultCategory
	}
	if len(r.Brands) == 0 {
		r.Brands = defaults.Brands
	}
	return r, nil
}

// Category returns the first category whose keywords occur in text, or the
// default category.
func (r Rules) Category(text string) types.Category {
	lower := strings.ToLower(text)
	for _, rule := range r.Categories {
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return rule.Name
			}
		}
	}
	return r.DefaultCategory
}

// Brand returns the first known brand occurring in text. Without a known
// brand it falls back to the first whitespace-delimited token, and to
// "Unknown" for blank text.
func (r Rules) Brand(text string) string {
	lower := strings.ToLower(text)
	for _, b := range r.Brands {
		if strings.Contains(lower, strings.ToLower(b)) {
			return b
		}
	}
	if fields := strings.Fields(text); len(fields) > 0 {
		return fields[0]
	}
	return "Unknown"
}
