package dataset

import (
	"github.com/cockroachdb/apd/v3"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Decimal is an exact base-10 amount used for unit prices and order totals.
//
// The zero value is 0. Decimals are immutable: arithmetic always writes into
// a fresh value, so copies never alias each other.
type Decimal struct {
	d apd.Decimal
}

// ParseDecimal parses a plain decimal literal such as "18.00" or "4273.5".
// NaN and infinities are rejected.
func ParseDecimal(s string) (Decimal, error) {
	var out Decimal
	if _, _, err := out.d.SetString(s); err != nil {
		return Decimal{}, errors.Wrapf(err, "parse decimal %q", s)
	}
	if out.d.Form != apd.Finite {
		return Decimal{}, errors.Newf("decimal %q is not a finite number", s)
	}
	return out, nil
}

// MustDecimal is ParseDecimal for literals known to be valid.
func MustDecimal(s string) Decimal {
	d, err := ParseDecimal(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Add returns d + o. Addition of finite decimals is exact.
func (d Decimal) Add(o Decimal) Decimal {
	var out Decimal
	if _, err := apd.BaseContext.Add(&out.d, &d.d, &o.d); err != nil {
		// BaseContext has no precision limit; only exponent overflow can land here.
		panic(errors.Wrap(err, "decimal add"))
	}
	return out
}

// Cmp compares d and o numerically: -1 if d < o, 0 if equal, +1 if d > o.
// Trailing zeros are ignored, so 18.0 and 18.00 compare equal.
func (d Decimal) Cmp(o Decimal) int {
	return d.d.Cmp(&o.d)
}

// Sign returns -1, 0 or +1.
func (d Decimal) Sign() int {
	return d.d.Sign()
}

// String renders the decimal in plain notation, keeping its scale
// ("18.00" stays "18.00").
func (d Decimal) String() string {
	return d.d.Text('f')
}

// MarshalText implements encoding.TextMarshaler.
func (d Decimal) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Decimal) UnmarshalText(text []byte) error {
	parsed, err := ParseDecimal(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// UnmarshalYAML decodes a YAML scalar without going through float64, so
// 21.35 stays exactly 21.35.
func (d *Decimal) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Newf("line %d: decimal must be a scalar", node.Line)
	}
	parsed, err := ParseDecimal(node.Value)
	if err != nil {
		return errors.Wrapf(err, "line %d", node.Line)
	}
	*d = parsed
	return nil
}
