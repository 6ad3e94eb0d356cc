package harness

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/sebdah/goldie/v2"

	"github.com/roach88/querysamples/internal/ir"
)

// snapshotValue projects a scenario run into an ir value. Only
// deterministic fields are included.
func snapshotValue(scenario *Scenario, result *Result) ir.Value {
	return ir.Obj(
		ir.F("scenario_name", ir.String(scenario.Name)),
		ir.F("run_id", ir.String(result.RunID)),
		ir.F("backend", ir.String(string(result.Backend))),
		ir.F("trace", ir.ArrayOf(result.Trace, func(ev TraceEvent) ir.Value {
			return ir.Obj(
				ir.F("seq", ir.Int(ev.Seq)),
				ir.F("sample", ir.String(ev.Sample)),
				ir.F("lines", ir.ArrayOf(ev.Lines, func(s string) ir.Value { return ir.String(s) })),
				ir.F("row_count", ir.Int(ev.RowCount)),
				ir.F("digest", ir.String(ev.Digest)),
			)
		})),
	)
}

// Snapshot renders a scenario run as indented canonical JSON with a
// trailing newline.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	canonical, err := ir.MarshalCanonical(snapshotValue(scenario, result))
	if err != nil {
		return nil, errors.Wrap(err, "marshal snapshot")
	}
	out, err := ir.Indent(canonical)
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// GoldenPath returns the golden file path for a scenario file:
// <dir>/golden/<name>.golden.
func GoldenPath(scenarioFile string) string {
	base := filepath.Base(scenarioFile)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(filepath.Dir(scenarioFile), "golden", name+".golden")
}

// UpdateGolden writes the run's snapshot as the scenario file's golden file.
func UpdateGolden(scenarioFile string, scenario *Scenario, result *Result) error {
	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}
	path := GoldenPath(scenarioFile)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "create golden directory")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "write golden file")
	}
	return nil
}

// CompareGolden reports whether the run matches the scenario file's golden
// file. found is false when no golden file exists.
func CompareGolden(scenarioFile string, scenario *Scenario, result *Result) (match, found bool, err error) {
	want, err := os.ReadFile(GoldenPath(scenarioFile))
	if errors.Is(err, os.ErrNotExist) {
		return false, false, nil
	}
	if err != nil {
		return false, true, errors.Wrap(err, "read golden file")
	}
	got, err := Snapshot(scenario, result)
	if err != nil {
		return false, true, err
	}
	return bytes.Equal(want, got), true, nil
}

// RunWithGolden runs a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(t.Context(), scenario)
	if err != nil {
		return nil, err
	}
	data, err := Snapshot(scenario, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)
	return result, nil
}
