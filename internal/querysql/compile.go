package querysql

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/roach88/querysamples/internal/ir"
	"github.com/roach88/querysamples/internal/queryir"
)

// StableKey is the column every mirror table orders by last.
const StableKey = "position"

// SQLCompiler compiles queryir to parameterized SQLite SQL.
//
// Every query ends with ORDER BY ..., position ASC so results are
// deterministic and follow dataset order among ties. Literal values are
// always bound as parameters, never interpolated.
type SQLCompiler struct{}

// NewSQLCompiler creates a new SQLCompiler.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{}
}

// Compile converts q to SQL and its parameters.
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	switch query := q.(type) {
	case nil:
		return "", nil, errors.New("cannot compile nil query")
	case queryir.Select:
		return c.compileSelect(query)
	case *queryir.Select:
		return c.compileSelect(*query)
	default:
		return "", nil, errors.Newf("unsupported query type: %T", q)
	}
}

func (c *SQLCompiler) compileSelect(q queryir.Select) (string, []any, error) {
	if q.From == "" {
		return "", nil, errors.New("select has no source table")
	}
	if len(q.Columns) == 0 {
		return "", nil, errors.Newf("select from %s has no columns", q.From)
	}
	for _, name := range append([]string{q.From}, q.Columns...) {
		if !isIdentifier(name) {
			return "", nil, errors.Newf("invalid identifier %q", name)
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(q.Columns, ", "), q.From)

	var params []any
	if q.Filter != nil {
		where, whereParams, err := c.compilePredicate(q.Filter)
		if err != nil {
			return "", nil, errors.Wrap(err, "compile filter")
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(where)
		params = whereParams
	}

	orderBy, err := c.orderBy(q.OrderBy)
	if err != nil {
		return "", nil, err
	}
	sb.WriteString(" ORDER BY ")
	sb.WriteString(orderBy)

	return sb.String(), params, nil
}

// orderBy renders the requested keys followed by the stable key.
// COLLATE BINARY keeps text ordering identical across SQLite builds.
// Decimal fields sort numerically.
func (c *SQLCompiler) orderBy(keys []queryir.OrderKey) (string, error) {
	parts := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		if !isIdentifier(k.Field) {
			return "", errors.Newf("invalid order key %q", k.Field)
		}
		dir := "ASC"
		if k.Desc {
			dir = "DESC"
		}
		if queryir.IsDecimalField(k.Field) {
			parts = append(parts, fmt.Sprintf("%s %s", numeric(k.Field), dir))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s COLLATE BINARY %s", k.Field, dir))
	}
	parts = append(parts, StableKey+" ASC")
	return strings.Join(parts, ", "), nil
}

func (c *SQLCompiler) compilePredicate(p queryir.Predicate) (string, []any, error) {
	switch pred := p.(type) {
	case nil:
		return "1 = 1", nil, nil
	case queryir.Equals:
		return c.compileComparison(pred.Field, "=", pred.Value)
	case *queryir.Equals:
		return c.compileComparison(pred.Field, "=", pred.Value)
	case queryir.Compare:
		return c.compileCompare(pred)
	case *queryir.Compare:
		return c.compileCompare(*pred)
	case queryir.And:
		return c.compileAnd(pred)
	case *queryir.And:
		return c.compileAnd(*pred)
	default:
		return "", nil, errors.Newf("unsupported predicate type: %T", p)
	}
}

func (c *SQLCompiler) compileCompare(cmp queryir.Compare) (string, []any, error) {
	if !cmp.Op.Valid() {
		return "", nil, errors.Newf("unsupported operator %q", cmp.Op)
	}
	return c.compileComparison(cmp.Field, string(cmp.Op), cmp.Value)
}

func (c *SQLCompiler) compileComparison(field, op string, value ir.Value) (string, []any, error) {
	if !isIdentifier(field) {
		return "", nil, errors.Newf("invalid field %q", field)
	}
	param, err := valueToParam(value)
	if err != nil {
		return "", nil, errors.Wrapf(err, "field %s", field)
	}
	if queryir.IsDecimalField(field) {
		return fmt.Sprintf("%s %s %s", numeric(field), op, numeric("?")), []any{param}, nil
	}
	return fmt.Sprintf("%s %s ?", field, op), []any{param}, nil
}

// numeric casts a decimal text column (or parameter) for comparison.
func numeric(expr string) string {
	return "CAST(" + expr + " AS NUMERIC)"
}

func (c *SQLCompiler) compileAnd(and queryir.And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	parts := make([]string, 0, len(and.Predicates))
	var params []any
	for _, pred := range and.Predicates {
		sql, predParams, err := c.compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		if _, nested := pred.(queryir.And); nested {
			sql = "(" + sql + ")"
		}
		parts = append(parts, sql)
		params = append(params, predParams...)
	}
	return strings.Join(parts, " AND "), params, nil
}

// valueToParam converts a scalar ir.Value to a database/sql argument.
func valueToParam(v ir.Value) (any, error) {
	switch val := v.(type) {
	case ir.String:
		return string(val), nil
	case ir.Int:
		return int64(val), nil
	case ir.Bool:
		return bool(val), nil
	case nil:
		return nil, errors.New("null literal is not allowed")
	default:
		return nil, errors.Newf("%T cannot be used as a SQL parameter", v)
	}
}

// isIdentifier accepts lower-case snake_case names only. Table and column
// names are the one part of a query that cannot be parameterized.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r == '_':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
