package samples

import (
	"context"
	"strings"

	"github.com/roach88/querysamples/internal/dataset"
	"github.com/roach88/querysamples/internal/ir"
	"github.com/roach88/querysamples/internal/store"
)

// Module metadata shown by the list command.
const (
	ModuleTitle = "LINQ Module"
	Prefix      = "Linq"
)

// Sample is one registered query demonstration.
type Sample struct {
	Name        string
	Category    string
	Title       string
	Description string

	// Run evaluates the sample in memory.
	Run func(ds *dataset.Dataset) (Result, error)

	// RunSQL evaluates the sample against the SQL mirror. Nil when the
	// sample has no SQL form.
	RunSQL func(ctx context.Context, st *store.Store) (Result, error)
}

// HasSQL reports whether the sample can run against the SQL mirror.
func (s Sample) HasSQL() bool {
	return s.RunSQL != nil
}

// Result is what a sample produced.
type Result struct {
	// Lines is the console rendering, one entry per printed line.
	Lines []string
	// Rows is the structured projection, one element per top-level row.
	Rows ir.Array
}

// Text joins Lines with trailing newlines, as written to the console.
func (r Result) Text() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return strings.Join(r.Lines, "\n") + "\n"
}

// Digest is the content digest of Rows.
func (r Result) Digest() (string, error) {
	return ir.Digest(r.Rows)
}
