package harness

import "github.com/roach88/querysamples/internal/runner"

// TraceEvent records one sample execution within a scenario.
type TraceEvent struct {
	Seq      int64    `json:"seq"`
	Sample   string   `json:"sample"`
	Lines    []string `json:"lines"`
	RowCount int      `json:"row_count"`
	Digest   string   `json:"digest"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every assertion holds.
	Pass bool `json:"pass"`

	// RunID is the fixed run ID every execution was stamped with.
	RunID string `json:"run_id"`

	// Backend is the backend the samples ran on.
	Backend runner.Backend `json:"backend"`

	// Trace lists executions in run order.
	Trace []TraceEvent `json:"trace"`

	// Errors holds assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result with an empty trace.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddReport appends a runner report to the trace.
func (r *Result) AddReport(rep runner.Report) {
	lines := rep.Lines
	if lines == nil {
		lines = []string{}
	}
	r.Trace = append(r.Trace, TraceEvent{
		Seq:      rep.Seq,
		Sample:   rep.Sample,
		Lines:    lines,
		RowCount: len(rep.Rows),
		Digest:   rep.Digest,
	})
}
