package samples

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/querysamples/internal/dataset"
	"github.com/roach88/querysamples/internal/query"
	"github.com/roach88/querysamples/internal/store"
)

// Golden files hold the exact console output of each sample over the
// embedded dataset. Regenerate with:
//
//	go test ./internal/samples -update
func TestSamples_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	for _, s := range Default().All() {
		t.Run(s.Name, func(t *testing.T) {
			res, err := s.Run(dataset.Default())
			require.NoError(t, err)
			g.Assert(t, s.Name, []byte(res.Text()))
		})
	}
}

func TestSamples_SQLMatchesMemory(t *testing.T) {
	ctx := context.Background()
	st, err := store.Mirror(ctx, dataset.Default())
	require.NoError(t, err)
	defer st.Close()

	for _, s := range Default().All() {
		if !s.HasSQL() {
			continue
		}
		t.Run(s.Name, func(t *testing.T) {
			mem, err := s.Run(dataset.Default())
			require.NoError(t, err)
			viaSQL, err := s.RunSQL(ctx, st)
			require.NoError(t, err)

			assert.Equal(t, mem.Lines, viaSQL.Lines)

			memDigest, err := mem.Digest()
			require.NoError(t, err)
			sqlDigest, err := viaSQL.Digest()
			require.NoError(t, err)
			assert.Equal(t, memDigest, sqlDigest)
		})
	}
}

func TestSamples_RowsMatchLines(t *testing.T) {
	ds := dataset.Default()
	counts := map[string]int{
		"Linq1":  5,
		"Linq2":  9,
		"Linq5":  8,
		"Linq7":  5,
		"Linq10": 10,
	}
	for name, want := range counts {
		s, err := Default().Lookup(name)
		require.NoError(t, err)
		res, err := s.Run(ds)
		require.NoError(t, err)
		assert.Len(t, res.Rows, want, name)
	}
}

func TestSamples_RejectNilDataset(t *testing.T) {
	for _, s := range Default().All() {
		if s.Name == "Linq1" {
			continue // reads no dataset
		}
		_, err := s.Run(nil)
		require.Error(t, err, s.Name)
		assert.True(t, errors.Is(err, query.ErrInvalidArgument), s.Name)
	}
}

func TestSamples_EmptyDataset(t *testing.T) {
	ds, err := dataset.New(nil, nil)
	require.NoError(t, err)

	for _, s := range Default().All() {
		res, err := s.Run(ds)
		require.NoError(t, err, s.Name)
		assert.NotNil(t, res.Rows, s.Name)
	}
}

func TestLinq5_RowProjection(t *testing.T) {
	res, err := Linq5().Run(dataset.Default())
	require.NoError(t, err)
	require.NotEmpty(t, res.Rows)

	first, err := res.Rows[:1].MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `[{"customer_id":"ALFKI","money_turnover":"4273.00","start_date":"1997-08-25"}]`, string(first))
}

func TestDumpProduct(t *testing.T) {
	p := dataset.Product{
		ProductID:    5,
		ProductName:  "Chef Anton's Gumbo Mix",
		Category:     "Condiments",
		UnitPrice:    dataset.MustDecimal("21.35"),
		UnitsInStock: 0,
	}
	assert.Equal(t,
		"ProductID=5  ProductName=Chef Anton's Gumbo Mix  Category=Condiments  UnitPrice=21.35  UnitsInStock=0",
		dumpProduct(p))
}

func TestResult_Text(t *testing.T) {
	assert.Equal(t, "", Result{}.Text())
	assert.Equal(t, "a\nb\n", Result{Lines: []string{"a", "b"}}.Text())
}
