package dataset

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_Loads(t *testing.T) {
	ds := Default()
	require.NotNil(t, ds)

	stats := ds.Stats()
	assert.Equal(t, 14, stats.Products)
	assert.Equal(t, 10, stats.Customers)
	assert.Equal(t, 22, stats.Orders)

	// Same instance on every call
	assert.Same(t, ds, Default())
}

func TestDefault_BackReferences(t *testing.T) {
	ds := Default()
	for _, c := range ds.Customers {
		for _, o := range c.Orders {
			assert.Equal(t, c.CustomerID, o.CustomerID, "order %d", o.OrderID)
		}
	}
}

func TestDefault_ExactAmounts(t *testing.T) {
	ds := Default()

	p := ds.Products[3]
	require.Equal(t, 5, p.ProductID)
	assert.Equal(t, "21.35", p.UnitPrice.String())
	assert.Equal(t, "Chef Anton's Gumbo Mix", p.ProductName)
	assert.False(t, p.InStock())

	c := ds.Customers[0]
	require.Equal(t, "ALFKI", c.CustomerID)
	require.Len(t, c.Orders, 6)
	assert.Equal(t, 10692, c.Orders[0].OrderID)
	assert.Equal(t, NewDate(1997, time.October, 3), c.Orders[0].OrderDate)
	assert.Equal(t, "878.00", c.Orders[0].Total.String())
}

func TestDefault_CustomerWithoutOrdersKey(t *testing.T) {
	customers := Default().Customers
	c := customers[len(customers)-1]
	require.Equal(t, "PARIS", c.CustomerID)
	assert.Empty(t, c.Orders)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.yaml")
	doc := `
products:
  - id: 7
    name: Pears
    category: Produce
    unit_price: 30.00
    units_in_stock: 15
customers:
  - id: ZZZZZ
    orders:
      - id: 1
        date: "2001-02-03"
        total: 10.5
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	ds, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, ds.Products, 1)
	require.Len(t, ds.Customers, 1)
	assert.Equal(t, "ZZZZZ", ds.Customers[0].Orders[0].CustomerID)
	assert.Equal(t, "10.5", ds.Customers[0].Orders[0].Total.String())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, IsLoadError(err))

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeRead, le.Code)
	assert.NotEmpty(t, errors.GetAllHints(err))
}

func TestLoad_EmptyDocument(t *testing.T) {
	for _, doc := range []string{"", "---\n"} {
		ds, err := Load("empty.yaml", []byte(doc))
		require.NoError(t, err, "document %q", doc)
		assert.Empty(t, ds.Customers)
		assert.Empty(t, ds.Products)
		assert.Equal(t, Stats{}, ds.Stats())
	}
}

func TestLoad_ScalarDocumentIsSchemaError(t *testing.T) {
	_, err := Load("scalar.yaml", []byte("42\n"))
	require.Error(t, err)

	var le *LoadError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, ErrCodeSchema, le.Code)
}

func TestLoad_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code string
	}{
		{
			name: "unknown top-level field",
			doc:  "suppliers: []\n",
			code: ErrCodeSchema,
		},
		{
			name: "unknown product field",
			doc: `
products:
  - {id: 1, name: A, category: C, unit_price: 1, units_in_stock: 1, color: red}
`,
			code: ErrCodeSchema,
		},
		{
			name: "negative stock",
			doc: `
products:
  - {id: 1, name: A, category: C, unit_price: 1, units_in_stock: -1}
`,
			code: ErrCodeSchema,
		},
		{
			name: "missing category",
			doc: `
products:
  - {id: 1, name: A, unit_price: 1, units_in_stock: 1}
`,
			code: ErrCodeSchema,
		},
		{
			name: "negative total",
			doc: `
customers:
  - id: A
    orders:
      - {id: 1, date: "2000-01-01", total: -5}
`,
			code: ErrCodeSchema,
		},
		{
			name: "bad date shape",
			doc: `
customers:
  - id: A
    orders:
      - {id: 1, date: "01/01/2000", total: 5}
`,
			code: ErrCodeSchema,
		},
		{
			name: "impossible date",
			doc: `
customers:
  - id: A
    orders:
      - {id: 1, date: "2000-13-45", total: 5}
`,
			code: ErrCodeDecode,
		},
		{
			name: "duplicate product id",
			doc: `
products:
  - {id: 1, name: A, category: C, unit_price: 1, units_in_stock: 1}
  - {id: 1, name: B, category: C, unit_price: 2, units_in_stock: 1}
`,
			code: ErrCodeInvariant,
		},
		{
			name: "duplicate customer id",
			doc: `
customers:
  - id: A
  - id: A
`,
			code: ErrCodeInvariant,
		},
		{
			name: "order shared by two customers",
			doc: `
customers:
  - id: A
    orders:
      - {id: 1, date: "2000-01-01", total: 5}
  - id: B
    orders:
      - {id: 1, date: "2000-01-02", total: 6}
`,
			code: ErrCodeInvariant,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load("bad.yaml", []byte(tt.doc))
			require.Error(t, err)
			assert.True(t, IsLoadError(err), "want LoadError, got %v", err)

			var le *LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tt.code, le.Code, "error: %v", err)
			assert.Equal(t, "bad.yaml", le.Source)
		})
	}
}

func TestNew_StampsOwner(t *testing.T) {
	customers := []Customer{{
		CustomerID: "A",
		Orders:     []Order{{OrderID: 1, OrderDate: MustDate("2000-01-01"), Total: MustDecimal("1")}},
	}}

	ds, err := New(customers, nil)
	require.NoError(t, err)
	assert.Equal(t, "A", ds.Customers[0].Orders[0].CustomerID)

	// The caller's slice is untouched
	assert.Empty(t, customers[0].Orders[0].CustomerID)
}

func TestNew_RejectsOrphanOrder(t *testing.T) {
	customers := []Customer{{
		CustomerID: "A",
		Orders: []Order{{
			OrderID:    1,
			OrderDate:  MustDate("2000-01-01"),
			Total:      MustDecimal("1"),
			CustomerID: "B",
		}},
	}}

	_, err := New(customers, nil)
	require.Error(t, err)
	assert.True(t, IsLoadError(err))
	assert.Contains(t, err.Error(), "owned by \"A\"")
}

func TestNew_RejectsNegativeValues(t *testing.T) {
	_, err := New(nil, []Product{{ProductID: 1, Category: "C", UnitsInStock: -2}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative units_in_stock")

	_, err = New([]Customer{{
		CustomerID: "A",
		Orders:     []Order{{OrderID: 1, OrderDate: MustDate("2000-01-01"), Total: MustDecimal("-0.01")}},
	}}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative total")
}

func TestDataset_OrderSeq(t *testing.T) {
	ds := Default()

	var ids []int
	for o := range ds.OrderSeq() {
		ids = append(ids, o.OrderID)
		if len(ids) == 3 {
			break
		}
	}
	assert.Equal(t, []int{10692, 10643, 10702}, ids)

	var total int
	for o := range ds.OrderSeq() {
		require.NotEmpty(t, o.CustomerID)
		total++
	}
	assert.Equal(t, ds.Stats().Orders, total)
}
