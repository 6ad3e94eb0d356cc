// Package seq provides generic, lazy combinators over iter.Seq.
//
// Every combinator returns a new sequence and never touches its source until
// the result is ranged over. Sequences built from restartable sources (slices,
// dataset collections) are themselves restartable: ranging twice evaluates the
// pipeline twice and yields the same elements.
//
// Ordering and grouping are the only stages that buffer. GroupBy keeps keys
// in first-occurrence order; OrderBy is stable.
package seq

import (
	"cmp"
	"iter"
	"slices"
)

// Where yields the elements of s for which keep returns true.
func Where[T any](s iter.Seq[T], keep func(T) bool) iter.Seq[T] {
	return func(yield func(T) bool) {
		for v := range s {
			if keep(v) && !yield(v) {
				return
			}
		}
	}
}

// Select yields project(v) for every element of s.
func Select[T, U any](s iter.Seq[T], project func(T) U) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range s {
			if !yield(project(v)) {
				return
			}
		}
	}
}

// SelectMany flattens the sequences produced by expand.
func SelectMany[T, U any](s iter.Seq[T], expand func(T) iter.Seq[U]) iter.Seq[U] {
	return func(yield func(U) bool) {
		for v := range s {
			for u := range expand(v) {
				if !yield(u) {
					return
				}
			}
		}
	}
}

// Any reports whether s yields at least one element. It stops at the first.
func Any[T any](s iter.Seq[T]) bool {
	for range s {
		return true
	}
	return false
}

// First returns the first element of s.
func First[T any](s iter.Seq[T]) (T, bool) {
	for v := range s {
		return v, true
	}
	var zero T
	return zero, false
}

// Aggregate folds s into a single value starting from seed.
func Aggregate[T, A any](s iter.Seq[T], seed A, fold func(A, T) A) A {
	acc := seed
	for v := range s {
		acc = fold(acc, v)
	}
	return acc
}

// MinBy returns the element with the smallest key. Among equal keys the
// earliest element wins.
func MinBy[T any, K cmp.Ordered](s iter.Seq[T], key func(T) K) (T, bool) {
	var (
		best  T
		bestK K
		found bool
	)
	for v := range s {
		k := key(v)
		if !found || k < bestK {
			best, bestK, found = v, k, true
		}
	}
	return best, found
}

// ToSlice collects s. Unlike slices.Collect it never returns nil, so empty
// results render as [] rather than null.
func ToSlice[T any](s iter.Seq[T]) []T {
	out := make([]T, 0)
	for v := range s {
		out = append(out, v)
	}
	return out
}

// Grouping is one group produced by GroupBy.
type Grouping[K comparable, T any] struct {
	Key   K
	Items []T
}

// GroupBy partitions s by key. Groups are yielded in the order their key first
// appears in s; items keep their relative order inside each group.
//
// The source is consumed in full when the result is first ranged over.
func GroupBy[T any, K comparable](s iter.Seq[T], key func(T) K) iter.Seq[Grouping[K, T]] {
	return func(yield func(Grouping[K, T]) bool) {
		index := make(map[K]int)
		var groups []Grouping[K, T]
		for v := range s {
			k := key(v)
			i, ok := index[k]
			if !ok {
				i = len(groups)
				index[k] = i
				groups = append(groups, Grouping[K, T]{Key: k})
			}
			groups[i].Items = append(groups[i].Items, v)
		}
		for _, g := range groups {
			if !yield(g) {
				return
			}
		}
	}
}

// Order compares two elements the way cmp.Compare does.
type Order[T any] func(a, b T) int

// Asc orders by key ascending.
func Asc[T any, K cmp.Ordered](key func(T) K) Order[T] {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

// Desc orders by key descending.
func Desc[T any, K cmp.Ordered](key func(T) K) Order[T] {
	return Asc(key).Reverse()
}

// By wraps an arbitrary comparison, e.g. a Cmp method.
func By[T any](compare func(a, b T) int) Order[T] {
	return compare
}

// Reverse flips an ordering.
func (o Order[T]) Reverse() Order[T] {
	return func(a, b T) int { return o(b, a) }
}

// OrderBy sorts s by first, breaking ties with each of then in turn. The sort
// is stable, so elements equal under every key keep their source order.
func OrderBy[T any](s iter.Seq[T], first Order[T], then ...Order[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		buf := slices.Collect(s)
		slices.SortStableFunc(buf, func(a, b T) int {
			if c := first(a, b); c != 0 {
				return c
			}
			for _, o := range then {
				if c := o(a, b); c != 0 {
					return c
				}
			}
			return 0
		})
		for _, v := range buf {
			if !yield(v) {
				return
			}
		}
	}
}
