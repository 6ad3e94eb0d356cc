package harness

import (
	"fmt"
	"slices"
	"strings"

	"github.com/roach88/querysamples/internal/seq"
)

// AssertionError is returned when an assertion fails. It carries the
// checked sample's output for debugging.
type AssertionError struct {
	Type     string
	Sample   string
	Expected string
	Actual   string
	Lines    []string
}

func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s (%s)\n", e.Type, e.Sample)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Lines) > 0 {
		fmt.Fprintf(&buf, "\nOutput:\n")
		for i, line := range e.Lines {
			fmt.Fprintf(&buf, "  [%d] %s\n", i+1, line)
		}
	}
	return buf.String()
}

// assertLineContains checks that some line contains the text.
func assertLineContains(ev TraceEvent, a Assertion) error {
	for _, line := range ev.Lines {
		if strings.Contains(line, a.Text) {
			return nil
		}
	}
	return &AssertionError{
		Type:     AssertLineContains,
		Sample:   ev.Sample,
		Expected: fmt.Sprintf("a line containing %q", a.Text),
		Actual:   "not found in output",
		Lines:    ev.Lines,
	}
}

// assertLineOrder checks that the expected lines appear as whole lines in
// the given relative order. Other lines may appear in between.
func assertLineOrder(ev TraceEvent, a Assertion) error {
	next := 0
	for _, line := range ev.Lines {
		if next < len(a.Lines) && line == a.Lines[next] {
			next++
		}
	}
	if next == len(a.Lines) {
		return nil
	}

	actual := fmt.Sprintf("line %q not found after %d matched line(s)", a.Lines[next], next)
	return &AssertionError{
		Type:     AssertLineOrder,
		Sample:   ev.Sample,
		Expected: fmt.Sprintf("lines in order %q", a.Lines),
		Actual:   actual,
		Lines:    ev.Lines,
	}
}

func assertLineCount(ev TraceEvent, a Assertion) error {
	if len(ev.Lines) == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertLineCount,
		Sample:   ev.Sample,
		Expected: fmt.Sprintf("%d line(s)", a.Count),
		Actual:   fmt.Sprintf("%d line(s)", len(ev.Lines)),
		Lines:    ev.Lines,
	}
}

func assertRowCount(ev TraceEvent, a Assertion) error {
	if ev.RowCount == a.Count {
		return nil
	}
	return &AssertionError{
		Type:     AssertRowCount,
		Sample:   ev.Sample,
		Expected: fmt.Sprintf("%d row(s)", a.Count),
		Actual:   fmt.Sprintf("%d row(s)", ev.RowCount),
	}
}

func assertDigest(ev TraceEvent, a Assertion) error {
	if ev.Digest == a.Digest {
		return nil
	}
	return &AssertionError{
		Type:     AssertDigest,
		Sample:   ev.Sample,
		Expected: a.Digest,
		Actual:   ev.Digest,
	}
}

// findEvent returns the execution an assertion targets: the named sample,
// or the only execution in the trace.
func findEvent(trace []TraceEvent, sample string) (TraceEvent, bool) {
	if sample == "" {
		if len(trace) == 1 {
			return trace[0], true
		}
		return TraceEvent{}, false
	}
	return seq.First(seq.Where(slices.Values(trace), func(ev TraceEvent) bool {
		return strings.EqualFold(ev.Sample, sample)
	}))
}

// EvaluateAssertions checks every assertion against the result's trace and
// returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string

	for i, a := range assertions {
		ev, ok := findEvent(result.Trace, a.Sample)
		if !ok {
			errs = append(errs, fmt.Sprintf("assertion[%d]: no execution of sample %q in trace", i, a.Sample))
			continue
		}

		var err error
		switch a.Type {
		case AssertLineContains:
			err = assertLineContains(ev, a)
		case AssertLineOrder:
			err = assertLineOrder(ev, a)
		case AssertLineCount:
			err = assertLineCount(ev, a)
		case AssertRowCount:
			err = assertRowCount(ev, a)
		case AssertDigest:
			err = assertDigest(ev, a)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}
