package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDecimal_AddIsExact(t *testing.T) {
	sum := MustDecimal("0.10").Add(MustDecimal("0.20"))
	assert.Equal(t, "0.30", sum.String())
	assert.Equal(t, 0, sum.Cmp(MustDecimal("0.3")))

	var zero Decimal
	assert.Equal(t, "0", zero.String())
	assert.Equal(t, "18.00", zero.Add(MustDecimal("18.00")).String())
}

func TestDecimal_Cmp(t *testing.T) {
	assert.Equal(t, -1, MustDecimal("4.50").Cmp(MustDecimal("18")))
	assert.Equal(t, 1, MustDecimal("123.79").Cmp(MustDecimal("97.00")))
	assert.Equal(t, 0, MustDecimal("18.0").Cmp(MustDecimal("18.00")))
}

func TestDecimal_ParseRejects(t *testing.T) {
	for _, s := range []string{"", "abc", "NaN", "Infinity", "1.2.3"} {
		_, err := ParseDecimal(s)
		assert.Error(t, err, "input %q", s)
	}
}

func TestDecimal_UnmarshalYAML(t *testing.T) {
	var v struct {
		Price Decimal `yaml:"price"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("price: 21.35\n"), &v))
	assert.Equal(t, "21.35", v.Price.String())

	err := yaml.Unmarshal([]byte("price: [1, 2]\n"), &v)
	assert.Error(t, err)
}

func TestDate(t *testing.T) {
	d := MustDate("1997-08-25")
	assert.Equal(t, 1997, d.Year)
	assert.Equal(t, time.August, d.Month)
	assert.Equal(t, 25, d.Day)
	assert.Equal(t, "1997-08-25", d.String())

	assert.True(t, MustDate("1996-12-31").Before(d))
	assert.False(t, d.Before(d))
	assert.Equal(t, 0, d.Compare(NewDate(1997, time.August, 25)))
	assert.True(t, Date{}.IsZero())
	assert.Equal(t, 19970825, d.Ordinal())
	assert.Less(t, MustDate("1997-07-31").Ordinal(), MustDate("1997-08-01").Ordinal())

	_, err := ParseDate("1997-02-30")
	assert.Error(t, err)
}
