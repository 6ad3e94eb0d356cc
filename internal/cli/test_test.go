package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/querysamples/internal/testutil"
)

const passingScenario = `
name: numbers
description: "Linq1 output"
samples: [Linq1]
assertions:
  - type: line_count
    count: 6
`

const failingScenario = `
name: wrong_count
description: "expects too many rows"
samples: [Linq2]
assertions:
  - type: row_count
    count: 100
`

func scenarioDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func execTest(t *testing.T, format string, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewTestCommand(&RootOptions{Format: format, Logger: testutil.DiscardLogger()})
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestTest_AllPass(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"numbers.yaml": passingScenario})

	out, err := execTest(t, "text", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ numbers\n")
	assert.Contains(t, out, "Test Summary: 1 passed, 0 failed, 1 total")
	assert.Contains(t, out, "✓ All scenarios passed")
}

func TestTest_FailureExitCode(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"numbers.yaml": passingScenario,
		"wrong.yaml":   failingScenario,
	})

	out, err := execTest(t, "text", dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ wrong_count")
	assert.Contains(t, out, "Expected: 100 row(s)")
	assert.Contains(t, out, "Test Summary: 1 passed, 1 failed, 2 total")
}

func TestTest_Filter(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"numbers.yaml": passingScenario,
		"wrong.yaml":   failingScenario,
	})

	out, err := execTest(t, "text", dir, "--filter", "num*")
	require.NoError(t, err)
	assert.Contains(t, out, "1 total")
}

func TestTest_UpdateThenCompareGolden(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"numbers.yaml": passingScenario})

	out, err := execTest(t, "text", dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ numbers (golden updated)")

	golden := filepath.Join(dir, "golden", "numbers.golden")
	data, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"scenario_name": "numbers"`)

	_, err = execTest(t, "text", dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(golden, []byte("{}\n"), 0644))
	out, err = execTest(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "does not match golden file")
}

func TestTest_LoadErrorIsScenarioFailure(t *testing.T) {
	dir := scenarioDir(t, map[string]string{"broken.yaml": "name: x\nunknown_key: 1\n"})

	out, err := execTest(t, "text", dir)
	require.Error(t, err)
	assert.Contains(t, out, "✗ broken.yaml")
	assert.Contains(t, out, "failed to load scenario")
}

func TestTest_JSON(t *testing.T) {
	dir := scenarioDir(t, map[string]string{
		"numbers.yaml": passingScenario,
		"wrong.yaml":   failingScenario,
	})

	out, err := execTest(t, "json", dir)
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Failed)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTestFailed, resp.Error.Code)
}

func TestTest_EmptyAndMissingDirs(t *testing.T) {
	out, err := execTest(t, "text", t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "No scenarios found.\n", out)

	_, err = execTest(t, "text", filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTest_HarnessFixtures(t *testing.T) {
	out, err := execTest(t, "text", filepath.Join("..", "harness", "testdata", "scenarios"))
	require.NoError(t, err, out)
	assert.Contains(t, out, "4 passed, 0 failed, 4 total")
}
