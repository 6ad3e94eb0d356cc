// Package queryir is a small relational query representation used by the
// SQL mirror of the dataset.
//
// The in-memory pipelines in package query are the reference. queryir exists
// so the restriction filters can also be expressed declaratively, compiled to
// SQL by package querysql and cross-checked against the reference.
//
//	[filter pipeline] → [queryir.Select] → [querysql] → SQLite
//
// # Fragment
//
// The fragment covers:
//   - Select(from, columns, filter, order by)
//   - Predicates: Equals, Compare (<, <=, >, >=, <>), And
//   - Explicit column lists (no SELECT *)
//
// It excludes NULLs, joins, aggregation, subqueries and OR. Grouping stays
// in the store's hand-written statistics queries.
//
// # Sealed interfaces
//
// Query and Predicate use the marker method pattern: only types in this
// package implement them, so compilers can switch exhaustively.
//
// # Values
//
// Literal values are ir.Value. Decimals are stored as text in the mirror,
// so comparisons against prices are not part of the fragment; Validate warns
// when a Compare uses a non-integer literal.
package queryir
