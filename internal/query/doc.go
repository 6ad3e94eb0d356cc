// Package query is the query evaluator: one pure function per sample
// pipeline, composed from the combinators in package seq.
//
// The filters return lazy sequences; ranging over them twice evaluates the
// filter twice. The reports materialize because they sort or group, and they
// always return non-nil slices so an empty result encodes as [].
//
// Every operation rejects a nil input sequence with ErrInvalidArgument instead
// of returning an empty result.
package query
