package queryir

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/roach88/querysamples/internal/ir"
)

// ValidationResult lists the ways a query leaves the fragment.
type ValidationResult struct {
	IsPortable bool
	Warnings   []string
}

// Validate checks q against the fragment rules:
//  1. explicit, non-empty column lists
//  2. no comparisons against null or composite values
//  3. ordering comparisons (Compare) only against integers, or against
//     decimal strings on decimal fields
//  4. known operators only
//
// Queries outside the fragment may still compile; the warnings say why their
// results could differ from the in-memory pipelines.
func Validate(q Query) ValidationResult {
	v := &validator{warnings: []string{}}
	v.validateQuery(q)
	return ValidationResult{
		IsPortable: len(v.warnings) == 0,
		Warnings:   v.warnings,
	}
}

type validator struct {
	warnings []string
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validateQuery(q Query) {
	switch query := q.(type) {
	case nil:
		v.addWarning("nil query")
	case Select:
		v.validateSelect(query)
	case *Select:
		v.validateSelect(*query)
	default:
		v.addWarning("unknown query type %T", q)
	}
}

func (v *validator) validateSelect(sel Select) {
	if sel.From == "" {
		v.addWarning("select has no source table")
	}
	if len(sel.Columns) == 0 {
		v.addWarning("empty column list (SELECT *) - columns must be explicit")
	}
	for _, k := range sel.OrderBy {
		if k.Field == "" {
			v.addWarning("order key with empty field")
		}
	}
	if sel.Filter != nil {
		v.validatePredicate(sel.Filter)
	}
}

func (v *validator) validatePredicate(p Predicate) {
	switch pred := p.(type) {
	case nil:
	case Equals:
		v.validateLiteral(pred.Field, pred.Value)
	case *Equals:
		v.validateLiteral(pred.Field, pred.Value)
	case Compare:
		v.validateCompare(pred)
	case *Compare:
		v.validateCompare(*pred)
	case And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	case *And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	default:
		v.addWarning("unknown predicate type %T", p)
	}
}

func (v *validator) validateLiteral(field string, value ir.Value) {
	switch value.(type) {
	case nil:
		v.addWarning("field '%s' compared to NULL - values must be explicit", field)
	case ir.Array, ir.Object:
		v.addWarning("field '%s' compared to a composite value", field)
	}
}

func (v *validator) validateCompare(c Compare) {
	if !c.Op.Valid() {
		v.addWarning("field '%s' uses unknown operator %q", c.Field, c.Op)
	}
	v.validateLiteral(c.Field, c.Value)
	if c.Value == nil {
		return
	}
	if s, ok := c.Value.(ir.String); ok && IsDecimalField(c.Field) {
		if _, _, err := apd.NewFromString(string(s)); err != nil {
			v.addWarning("field '%s' compared to %q, which is not a decimal", c.Field, string(s))
		}
		return
	}
	if _, ok := c.Value.(ir.Int); !ok {
		v.addWarning("field '%s' ordered against %T - only integer comparisons match the in-memory pipelines", c.Field, c.Value)
	}
}
