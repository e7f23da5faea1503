// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// --- test helpers ---

func testStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "staging", DefaultFile), 0)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecords() []types.ProductRecord {
	return []types.ProductRecord{
		{
			Category: types.CategorySolarPanels, Supplier: "Raystech", Brand: "Jinko",
			Description: "Jinko 400W mono panel ABC123", Specification: "400W",
			PartNumber: "ABC123", Price: 250, Page: 1,
		},
		{
			Category: types.CategoryInverters, Supplier: "Raystech", Brand: "Fronius",
			Description: "Fronius Primo 5kW inverter", Price: 1890.5, Page: 2,
		},
		{
			Category: types.CategorySolarPanels, Supplier: "BayWa r.e.", Brand: "Trina",
			Description: "Trina Vertex S 440W", Specification: "440W", Price: 199, Page: 4,
		},
	}
}

// --- tests ---

func TestPath(t *testing.T) {
	if got := Path(types.CatalogConfig{}, "out"); got != filepath.Join("out", DefaultFile) {
		t.Errorf("default path = %q", got)
	}
	if got := Path(types.CatalogConfig{Path: "/tmp/c.db"}, "out"); got != "/tmp/c.db" {
		t.Errorf("configured path = %q", got)
	}
}

func TestReplace_RoundTrip(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	run, err := store.Replace(ctx, sampleRecords())
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if run.ID == "" || run.ProductCount != 3 {
		t.Errorf("run = %+v", run)
	}

	got, err := store.Query(ctx, QueryOptions{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	want := sampleRecords()
	if len(got) != len(want) {
		t.Fatalf("got %d products, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("product %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReplace_ReplacesPreviousRun(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()

	clock := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }
	first, err := store.Replace(ctx, sampleRecords())
	if err != nil {
		t.Fatal(err)
	}

	clock = clock.Add(time.Hour)
	second, err := store.Replace(ctx, sampleRecords()[:1])
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Error("each run should get its own id")
	}

	got, err := store.Query(ctx, QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Errorf("got %d products after replace, want 1", len(got))
	}

	last, err := store.LastRun(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if last.ID != second.ID || !last.StartedAt.Equal(clock) || last.ProductCount != 1 {
		t.Errorf("LastRun = %+v, want %+v", last, second)
	}
}

func TestLastRun_Empty(t *testing.T) {
	store := testStore(t)
	_, err := store.LastRun(context.Background())
	if !errors.Is(err, ErrNoRuns) {
		t.Errorf("err = %v, want ErrNoRuns", err)
	}
}

func TestQuery_Filters(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	if _, err := store.Replace(ctx, sampleRecords()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		opts      QueryOptions
		wantDescs []string
	}{
		{
			name:      "by supplier",
			opts:      QueryOptions{Supplier: "Raystech"},
			wantDescs: []string{"Jinko 400W mono panel ABC123", "Fronius Primo 5kW inverter"},
		},
		{
			name:      "by category",
			opts:      QueryOptions{Category: types.CategorySolarPanels},
			wantDescs: []string{"Jinko 400W mono panel ABC123", "Trina Vertex S 440W"},
		},
		{
			name:      "by brand",
			opts:      QueryOptions{Brand: "Fronius"},
			wantDescs: []string{"Fronius Primo 5kW inverter"},
		},
		{
			name:      "by text",
			opts:      QueryOptions{Text: "VERTEX"},
			wantDescs: []string{"Trina Vertex S 440W"},
		},
		{
			name:      "combined filters",
			opts:      QueryOptions{Supplier: "BayWa r.e.", Category: types.CategoryInverters},
			wantDescs: nil,
		},
		{
			name:      "limit",
			opts:      QueryOptions{MaxResults: 2},
			wantDescs: []string{"Jinko 400W mono panel ABC123", "Fronius Primo 5kW inverter"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := store.Query(ctx, tt.opts)
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.wantDescs) {
				t.Fatalf("got %d results, want %d", len(got), len(tt.wantDescs))
			}
			for i, d := range tt.wantDescs {
				if got[i].Description != d {
					t.Errorf("result %d = %q, want %q", i, got[i].Description, d)
				}
			}
		})
	}
}

func TestQueryOptions_IsEmpty(t *testing.T) {
	if !(QueryOptions{MaxResults: 5}).IsEmpty() {
		t.Error("limit alone is not a filter")
	}
	if (QueryOptions{Brand: "Jinko"}).IsEmpty() {
		t.Error("brand is a filter")
	}
}

func TestExportYAML(t *testing.T) {
	store := testStore(t)
	ctx := context.Background()
	run, err := store.Replace(ctx, sampleRecords())
	if err != nil {
		t.Fatal(err)
	}

	path, err := store.ExportYAML(ctx, QueryOptions{Supplier: "Raystech"})
	if err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	if filepath.Base(path) != "export.yaml" || filepath.Dir(path) != store.Dir() {
		t.Errorf("export path = %q", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc Export
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Run == nil || doc.Run.ID != run.ID {
		t.Errorf("export run = %+v, want id %s", doc.Run, run.ID)
	}
	if len(doc.Products) != 2 || doc.Products[1].Brand != "Fronius" {
		t.Errorf("export products = %+v", doc.Products)
	}
}

func TestExportJSON_Empty(t *testing.T) {
	store := testStore(t)

	path, err := store.ExportJSON(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["run"]; ok {
		t.Error("empty catalog should export without a run")
	}
	products, ok := doc["products"].([]any)
	if !ok || len(products) != 0 {
		t.Errorf("products = %#v, want empty list", doc["products"])
	}
}
