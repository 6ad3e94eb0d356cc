package queryir

import "github.com/roach88/querysamples/internal/ir"

// Query is a sealed interface over query nodes.
type Query interface {
	queryNode()
}

// Predicate is a sealed interface over filter conditions.
type Predicate interface {
	predicateNode()
}

// Select reads Columns from the From table, keeps rows matching Filter and
// orders them by OrderBy.
//
//	SELECT <columns> FROM <from> WHERE <filter> ORDER BY <order by>, position
//
// Every mirror table carries a position column holding the record's index in
// the source dataset. Compilers always append it as the final sort key, so
// rows equal under OrderBy come back in dataset order.
type Select struct {
	From    string
	Columns []string
	Filter  Predicate // nil = no filter
	OrderBy []OrderKey
}

func (Select) queryNode() {}

// OrderKey is one ORDER BY term.
type OrderKey struct {
	Field string
	Desc  bool
}

// Equals is <field> = <value>.
type Equals struct {
	Field string
	Value ir.Value
}

func (Equals) predicateNode() {}

// Op is a Compare operator.
type Op string

const (
	OpLt Op = "<"
	OpLe Op = "<="
	OpGt Op = ">"
	OpGe Op = ">="
	OpNe Op = "<>"
)

// Valid reports whether op is one of the defined operators.
func (op Op) Valid() bool {
	switch op {
	case OpLt, OpLe, OpGt, OpGe, OpNe:
		return true
	}
	return false
}

// Compare is <field> <op> <value>.
type Compare struct {
	Field string
	Op    Op
	Value ir.Value
}

func (Compare) predicateNode() {}

// And holds when every predicate holds. An empty And is always true.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// decimalFields are the mirror columns holding exact decimals as text.
var decimalFields = map[string]bool{
	"unit_price": true,
	"total":      true,
}

// IsDecimalField reports whether field stores a decimal amount as text.
// Compilers must compare and order such fields numerically.
func IsDecimalField(field string) bool {
	return decimalFields[field]
}
