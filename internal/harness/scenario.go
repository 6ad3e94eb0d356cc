package harness

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/roach88/querysamples/internal/runner"
)

// Scenario defines a sample run and the assertions it must satisfy.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Dataset is an optional dataset file. Relative paths are resolved
	// against the scenario file's directory. Empty means the embedded one.
	Dataset string `yaml:"dataset,omitempty"`

	// Backend is memory (default) or sql.
	Backend string `yaml:"backend,omitempty"`

	// RunID is the fixed run ID for every execution. Defaults to
	// "test-run-default".
	RunID string `yaml:"run_id,omitempty"`

	// Samples lists the samples to run, in order.
	Samples []string `yaml:"samples"`

	// Assertions validate the produced trace.
	// Supported types: line_contains, line_order, line_count, row_count, digest
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one sample's output.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Sample selects the execution to check. May be omitted when the
	// scenario runs a single sample.
	Sample string `yaml:"sample,omitempty"`

	// Text is the substring to find (line_contains).
	Text string `yaml:"text,omitempty"`

	// Lines must appear as whole lines in this relative order (line_order).
	Lines []string `yaml:"lines,omitempty"`

	// Count is the expected number of lines or rows (line_count, row_count).
	Count int `yaml:"count,omitempty"`

	// Digest is the expected result digest (digest).
	Digest string `yaml:"digest,omitempty"`
}

// Assertion type constants.
const (
	AssertLineContains = "line_contains"
	AssertLineOrder    = "line_order"
	AssertLineCount    = "line_count"
	AssertRowCount     = "row_count"
	AssertDigest       = "digest"
)

// DatasetNotFoundError is returned when a scenario references a dataset
// file that doesn't exist.
type DatasetNotFoundError struct {
	Scenario     string
	DatasetPath  string
	ResolvedPath string
}

func (e *DatasetNotFoundError) Error() string {
	return fmt.Sprintf(
		"scenario %q references dataset file %q which does not exist (resolved to: %s)",
		e.Scenario,
		e.DatasetPath,
		e.ResolvedPath,
	)
}

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected, and a relative dataset path is resolved against the directory
// holding the scenario.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read scenario file")
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Dataset != "" && !filepath.IsAbs(scenario.Dataset) {
		resolved := filepath.Join(filepath.Dir(path), scenario.Dataset)
		if _, err := os.Stat(resolved); errors.Is(err, fs.ErrNotExist) {
			return nil, &DatasetNotFoundError{
				Scenario:     scenario.Name,
				DatasetPath:  scenario.Dataset,
				ResolvedPath: resolved,
			}
		}
		scenario.Dataset = resolved
	}

	return scenario, nil
}

// ParseScenario decodes and validates a scenario document.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, errors.Wrap(err, "parse scenario YAML")
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, errors.Wrap(err, "invalid scenario")
	}
	return &scenario, nil
}

// FindScenarios returns the .yaml and .yml files under dir in lexical
// order. A non-empty filter is a glob matched against the file name
// without extension.
func FindScenarios(dir, filter string) ([]string, error) {
	if filter != "" {
		if _, err := filepath.Match(filter, ""); err != nil {
			return nil, errors.Wrapf(err, "invalid filter pattern %q", filter)
		}
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "golden" && path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		ext := filepath.Ext(path)
		if ext != ".yaml" && ext != ".yml" {
			return nil
		}
		if filter != "" {
			name := strings.TrimSuffix(d.Name(), ext)
			if ok, _ := filepath.Match(filter, name); !ok {
				return nil
			}
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "find scenarios in %s", dir)
	}
	return files, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	if s.Description == "" {
		return errors.New("description is required")
	}
	if _, err := runner.ParseBackend(s.Backend); err != nil {
		return err
	}
	if len(s.Samples) == 0 {
		return errors.New("samples list is required and must be non-empty")
	}
	for i, name := range s.Samples {
		if name == "" {
			return errors.Newf("samples[%d]: name is required", i)
		}
	}
	if len(s.Assertions) == 0 {
		return errors.New("assertions list is required and must be non-empty")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i], s.Samples); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion, samples []string) error {
	if a.Type == "" {
		return errors.Newf("assertions[%d]: type is required", index)
	}

	if a.Sample == "" && len(samples) > 1 {
		return errors.Newf("assertions[%d]: sample is required when the scenario runs %d samples", index, len(samples))
	}
	if a.Sample != "" && !slices.ContainsFunc(samples, func(s string) bool { return strings.EqualFold(s, a.Sample) }) {
		return errors.Newf("assertions[%d]: sample %q is not in the samples list", index, a.Sample)
	}

	switch a.Type {
	case AssertLineContains:
		if a.Text == "" {
			return errors.Newf("assertions[%d]: text is required for line_contains", index)
		}
	case AssertLineOrder:
		if len(a.Lines) == 0 {
			return errors.Newf("assertions[%d]: lines list is required for line_order", index)
		}
	case AssertLineCount, AssertRowCount:
		if a.Count < 0 {
			return errors.Newf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertDigest:
		if a.Digest == "" {
			return errors.Newf("assertions[%d]: digest is required for digest", index)
		}
	default:
		return errors.Newf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
