package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/querysamples/internal/ir"
	"github.com/roach88/querysamples/internal/queryir"
)

func TestCompile_InStockProducts(t *testing.T) {
	compiler := NewSQLCompiler()

	query := queryir.Select{
		From:    "products",
		Columns: []string{"id", "name", "units_in_stock"},
		Filter:  queryir.Compare{Field: "units_in_stock", Op: queryir.OpGt, Value: ir.Int(0)},
	}

	sql, params, err := compiler.Compile(query)
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name, units_in_stock FROM products WHERE units_in_stock > ? ORDER BY position ASC", sql)
	assert.Equal(t, []any{int64(0)}, params)
}

func TestCompile_ValuesAreParameterized(t *testing.T) {
	sql, params, err := NewSQLCompiler().Compile(&queryir.Select{
		From:    "products",
		Columns: []string{"id"},
		Filter:  &queryir.Equals{Field: "category", Value: ir.String("Robert'); DROP TABLE products;--")},
	})
	require.NoError(t, err)
	assert.NotContains(t, sql, "DROP")
	assert.Contains(t, sql, "WHERE category = ?")
	assert.Equal(t, []any{"Robert'); DROP TABLE products;--"}, params)
}

func TestCompile_DecimalFieldsAreNumeric(t *testing.T) {
	sql, params, err := NewSQLCompiler().Compile(queryir.Select{
		From:    "products",
		Columns: []string{"id"},
		Filter:  queryir.Compare{Field: "unit_price", Op: queryir.OpGt, Value: ir.String("20.00")},
		OrderBy: []queryir.OrderKey{{Field: "unit_price", Desc: true}},
	})
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id FROM products WHERE CAST(unit_price AS NUMERIC) > CAST(? AS NUMERIC) "+
			"ORDER BY CAST(unit_price AS NUMERIC) DESC, position ASC",
		sql)
	assert.Equal(t, []any{"20.00"}, params)
}

func TestCompile_OrderByAlwaysEndsWithStableKey(t *testing.T) {
	tests := []struct {
		name     string
		keys     []queryir.OrderKey
		expected string
	}{
		{"no keys", nil, " ORDER BY position ASC"},
		{"asc", []queryir.OrderKey{{Field: "category"}}, " ORDER BY category COLLATE BINARY ASC, position ASC"},
		{"desc", []queryir.OrderKey{{Field: "id", Desc: true}}, " ORDER BY id COLLATE BINARY DESC, position ASC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, _, err := NewSQLCompiler().Compile(queryir.Select{
				From: "customers", Columns: []string{"id"}, OrderBy: tt.keys,
			})
			require.NoError(t, err)
			assert.Contains(t, sql, tt.expected)
		})
	}
}

func TestCompile_And(t *testing.T) {
	sql, params, err := NewSQLCompiler().Compile(queryir.Select{
		From:    "orders",
		Columns: []string{"id"},
		Filter: queryir.And{Predicates: []queryir.Predicate{
			queryir.Equals{Field: "customer_id", Value: ir.String("ALFKI")},
			queryir.And{Predicates: []queryir.Predicate{
				queryir.Compare{Field: "id", Op: queryir.OpGe, Value: ir.Int(10700)},
				queryir.Compare{Field: "id", Op: queryir.OpNe, Value: ir.Int(10835)},
			}},
		}},
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE customer_id = ? AND (id >= ? AND id <> ?)")
	assert.Equal(t, []any{"ALFKI", int64(10700), int64(10835)}, params)
}

func TestCompile_EmptyAndIsTrue(t *testing.T) {
	sql, params, err := NewSQLCompiler().Compile(queryir.Select{
		From: "products", Columns: []string{"id"}, Filter: queryir.And{},
	})
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE 1 = 1")
	assert.Empty(t, params)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query queryir.Query
		want  string
	}{
		{"nil query", nil, "nil query"},
		{"no table", queryir.Select{Columns: []string{"id"}}, "no source table"},
		{"no columns", queryir.Select{From: "products"}, "no columns"},
		{"bad identifier", queryir.Select{From: "products; --", Columns: []string{"id"}}, "invalid identifier"},
		{"bad order key", queryir.Select{From: "products", Columns: []string{"id"}, OrderBy: []queryir.OrderKey{{Field: "1x"}}}, "invalid order key"},
		{"bad operator", queryir.Select{From: "products", Columns: []string{"id"},
			Filter: queryir.Compare{Field: "id", Op: "LIKE", Value: ir.Int(1)}}, "unsupported operator"},
		{"null literal", queryir.Select{From: "products", Columns: []string{"id"},
			Filter: queryir.Equals{Field: "id"}}, "null literal"},
		{"array literal", queryir.Select{From: "products", Columns: []string{"id"},
			Filter: queryir.Equals{Field: "id", Value: ir.Arr(ir.Int(1))}}, "cannot be used as a SQL parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewSQLCompiler().Compile(tt.query)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
