// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package aggregate

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// fakeSink records every table written.
type fakeSink struct {
	tables map[string][]types.ProductRecord
	order  []string
	err    error
	failOn string
}

func (f *fakeSink) WriteTable(name string, records []types.ProductRecord) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if name == f.failOn {
		return "", errors.New("disk full")
	}
	if f.tables == nil {
		f.tables = map[string][]types.ProductRecord{}
	}
	f.tables[name] = append([]types.ProductRecord(nil), records...)
	f.order = append(f.order, name)
	return "out/" + name, nil
}

func rec(supplier string, cat types.Category, page int) types.ProductRecord {
	return types.ProductRecord{Supplier: supplier, Category: cat, Brand: "B", Price: 1, Page: page}
}

func TestAggregator(t *testing.T) {
	sink := &fakeSink{}
	var log bytes.Buffer
	a := New(sink, "", &log)

	raystech := types.SupplierConfig{File: "r.pdf", Name: "Raystech", Output: "raystech_products.csv"}
	baywa := types.SupplierConfig{File: "b.pdf", Name: "BayWa r.e.", Output: "baywa_products.csv"}
	empty := types.SupplierConfig{File: "e.pdf", Name: "Empty", Output: "empty_products.csv"}

	require.NoError(t, a.AddSupplier(raystech, []types.ProductRecord{
		rec("Raystech", types.CategoryInverters, 1),
		rec("Raystech", types.CategorySolarPanels, 2),
	}))
	require.NoError(t, a.AddSupplier(empty, nil))
	require.NoError(t, a.AddSupplier(baywa, []types.ProductRecord{
		rec("BayWa r.e.", types.CategorySolarPanels, 1),
		rec("BayWa r.e.", types.CategoryAccessories, 1),
		rec("BayWa r.e.", types.CategorySolarPanels, 5),
	}))

	summary, err := a.Finish()
	require.NoError(t, err)

	assert.Equal(t, []string{"raystech_products.csv", "baywa_products.csv", DefaultCombinedName}, sink.order)
	_, wroteEmpty := sink.tables["empty_products.csv"]
	assert.False(t, wroteEmpty)

	combined := sink.tables[DefaultCombinedName]
	require.Len(t, combined, 5)
	assert.Equal(t, "Raystech", combined[0].Supplier)
	assert.Equal(t, "BayWa r.e.", combined[4].Supplier)
	assert.Equal(t, 5, combined[4].Page)

	assert.Equal(t, 5, summary.Total)
	assert.Equal(t, "out/"+DefaultCombinedName, summary.CombinedPath)
	assert.Equal(t, []Count{{"Raystech", 2}, {"BayWa r.e.", 3}}, summary.BySupplier)
	assert.Equal(t, []Count{
		{"Inverters", 1},
		{"Solar Panels", 3},
		{"Accessories", 1},
	}, summary.ByCategory)

	out := log.String()
	assert.Contains(t, out, "Total products extracted: 5")
	assert.Contains(t, out, "Raystech: 2 products")
	assert.Contains(t, out, "Solar Panels: 3 products")
}

func TestAggregator_NothingToWrite(t *testing.T) {
	sink := &fakeSink{}
	a := New(sink, "combined.csv", nil)
	summary, err := a.Finish()
	require.NoError(t, err)
	assert.Equal(t, Summary{}, summary)
	assert.Empty(t, sink.order)
}

func TestAggregator_SinkError(t *testing.T) {
	a := New(&fakeSink{err: errors.New("disk full")}, "", nil)
	err := a.AddSupplier(types.SupplierConfig{Name: "X", Output: "x.csv"}, []types.ProductRecord{rec("X", types.CategoryCables, 1)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, a.Records(), "failed supplier contributes nothing")
}

func TestCountBy(t *testing.T) {
	recs := []types.ProductRecord{
		rec("b", types.CategoryCables, 1),
		rec("a", types.CategoryCables, 1),
		rec("b", types.CategoryCables, 1),
	}
	got := CountBy(recs, func(r types.ProductRecord) string { return r.Supplier })
	assert.Equal(t, []Count{{"b", 2}, {"a", 1}}, got)
	assert.Nil(t, CountBy(nil, func(r types.ProductRecord) string { return r.Supplier }))
}

func TestAggregator_CombinedWriteFails(t *testing.T) {
	sink := &fakeSink{failOn: DefaultCombinedName}
	var log bytes.Buffer
	a := New(sink, "", &log)
	require.NoError(t, a.AddSupplier(types.SupplierConfig{Name: "X", Output: "x.csv"},
		[]types.ProductRecord{rec("X", types.CategoryCables, 1)}))

	summary, err := a.Finish()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "writing combined table")
	assert.Equal(t, 1, summary.Total)
	assert.Empty(t, summary.CombinedPath)
	assert.Equal(t, []Count{{"X", 1}}, summary.BySupplier)
	assert.Contains(t, log.String(), "Combined file not written")
	assert.Contains(t, log.String(), "X: 1 products")
}
