// Package samples is the static registry of runnable query samples.
//
// A sample pairs metadata (name, category, title, description) with a
// function that runs one query pipeline against a dataset and returns both
// the console lines and a structured projection of the rows. The rows are
// ir values, so they can be emitted as canonical JSON and digested.
//
// Samples are registered explicitly in Default; there is no discovery by
// reflection. Registry order is the order samples are listed and run.
package samples
