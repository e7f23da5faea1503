// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package suppliers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

func TestDefault(t *testing.T) {
	list := Default()
	require.Len(t, list, 7)
	assert.Equal(t, "BayWa r.e.", list[0].Name)
	assert.Equal(t, "iStore", list[6].Name)
	require.NoError(t, Validate(list))

	list[0].Name = "changed"
	assert.Equal(t, "BayWa r.e.", Default()[0].Name, "Default returns a copy")
}

func TestValidate(t *testing.T) {
	ok := types.SupplierConfig{File: "a.pdf", Name: "A", Output: "a.csv"}
	tests := []struct {
		name    string
		list    []types.SupplierConfig
		wantErr string
	}{
		{"valid", []types.SupplierConfig{ok}, ""},
		{"empty", nil, "no suppliers"},
		{"missing file", []types.SupplierConfig{{Name: "A", Output: "a.csv"}}, "file is required"},
		{"missing name", []types.SupplierConfig{{File: "a.pdf", Output: "a.csv"}}, "name is required"},
		{"missing output", []types.SupplierConfig{{File: "a.pdf", Name: "A"}}, "output is required"},
		{"duplicate file", []types.SupplierConfig{ok, {File: "a.pdf", Name: "B", Output: "b.csv"}}, "duplicate file"},
		{"duplicate output", []types.SupplierConfig{ok, {File: "b.pdf", Name: "B", Output: "a.csv"}}, "duplicate output"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.list)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
