// Package runner executes registered samples against a dataset.
//
// Each execution gets a run ID (UUIDv7 by default) and a sequence number
// from a logical clock. The runner writes the sample's console lines to a
// writer and returns a Report carrying the rows and their digest.
//
// Two backends exist. BackendMemory evaluates the pipelines over the loaded
// dataset. BackendSQL mirrors the dataset into an in-memory SQLite store
// once and evaluates each sample through its SQL form, or, for samples
// without one, through the in-memory pipelines over a snapshot read back
// from the mirror.
package runner
