// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pdiddy/pricelist-extract/pkg/types"
)

// QueryOptions filters staged products. Empty fields match everything.
type QueryOptions struct {
	Supplier string
	Category types.Category
	Brand    string

	// Text matches a substring of the description, case-insensitively.
	Text string

	// MaxResults limits result count. Zero uses the store default; a
	// negative value means no limit.
	MaxResults int
}

// IsEmpty reports whether the query has no filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Supplier == "" && q.Category == "" && q.Brand == "" && q.Text == ""
}

// Query returns staged products matching opts in insertion order.
func (s *Store) Query(ctx context.Context, opts QueryOptions) ([]types.ProductRecord, error) {
	maxResults := opts.MaxResults
	if maxResults == 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(
		`SELECT category, supplier, brand, description, specification, part_number, price, page
		FROM products WHERE 1=1`)

	if opts.Supplier != "" {
		qb.WriteString(` AND supplier = ?`)
		args = append(args, opts.Supplier)
	}
	if opts.Category != "" {
		qb.WriteString(` AND category = ?`)
		args = append(args, string(opts.Category))
	}
	if opts.Brand != "" {
		qb.WriteString(` AND brand = ?`)
		args = append(args, opts.Brand)
	}
	if opts.Text != "" {
		qb.WriteString(` AND lower(description) LIKE ?`)
		args = append(args, "%"+strings.ToLower(opts.Text)+"%")
	}

	qb.WriteString(` ORDER BY position LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []types.ProductRecord
	for rows.Next() {
		var (
			r        types.ProductRecord
			category string
			spec     sql.NullString
			part     sql.NullString
		)
		if err := rows.Scan(&category, &r.Supplier, &r.Brand, &r.Description, &spec, &part, &r.Price, &r.Page); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Category = types.Category(category)
		r.Specification = spec.String
		r.PartNumber = part.String
		results = append(results, r)
	}
	return results, rows.Err()
}
