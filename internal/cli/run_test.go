package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/querysamples/internal/runner"
	"github.com/roach88/querysamples/internal/testutil"
)

func newRunCmd(format string, args ...string) (*bytes.Buffer, func() error) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: format, Logger: testutil.DiscardLogger()}
	cmd := NewRunCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	return buf, cmd.Execute
}

func TestRun_SingleSampleText(t *testing.T) {
	buf, exec := newRunCmd("text", "Linq1")
	require.NoError(t, exec())
	assert.Equal(t, "Numbers < 5:\n4\n1\n3\n2\n0\n", buf.String())
}

func TestRun_MultipleSamplesHaveHeaders(t *testing.T) {
	buf, exec := newRunCmd("text", "linq1", "Linq2")
	require.NoError(t, exec())

	out := buf.String()
	assert.Contains(t, out, "== Linq1: Where - Task 1 ==\nNumbers < 5:\n")
	assert.Contains(t, out, "== Linq2: Where - Task 2 ==\nProductID=1  ProductName=Chai")
}

func TestRun_AllJSON(t *testing.T) {
	buf, exec := newRunCmd("json", "--all", "--backend", "sql")
	require.NoError(t, exec())

	// Rows are polymorphic values, so they stay raw here.
	var resp struct {
		Status string `json:"status"`
		Data   struct {
			Backend runner.Backend `json:"backend"`
			Reports []struct {
				Seq    int64           `json:"seq"`
				Sample string          `json:"sample"`
				Rows   json.RawMessage `json:"rows"`
				Digest string          `json:"digest"`
			} `json:"reports"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, runner.BackendSQL, resp.Data.Backend)

	require.Len(t, resp.Data.Reports, 5)
	names := make([]string, len(resp.Data.Reports))
	for i, rep := range resp.Data.Reports {
		names[i] = rep.Sample
		assert.Len(t, rep.Digest, 64)
		assert.Equal(t, int64(i+1), rep.Seq)
		assert.True(t, json.Valid(rep.Rows), "rows of %s", rep.Sample)
		assert.Equal(t, byte('['), rep.Rows[0], "rows of %s", rep.Sample)
	}
	assert.Equal(t, []string{"Linq1", "Linq2", "Linq5", "Linq7", "Linq10"}, names)
	assert.Equal(t, "630a962b1bf8cefba84cf3bad5e73537ce86744d989fa3b84fec9988c6a1d4e0", resp.Data.Reports[0].Digest)
}

func TestRun_JSONRowsAreCanonical(t *testing.T) {
	buf, exec := newRunCmd("json", "Linq1")
	require.NoError(t, exec())

	var resp struct {
		Data struct {
			Reports []struct {
				Rows []int `json:"rows"`
			} `json:"reports"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.Len(t, resp.Data.Reports, 1)
	assert.Equal(t, []int{4, 1, 3, 2, 0}, resp.Data.Reports[0].Rows)
}

func TestRun_FixedRunID(t *testing.T) {
	buf := &bytes.Buffer{}
	opts := &RunOptions{
		RootOptions: &RootOptions{Format: "json", Logger: testutil.DiscardLogger()},
		IDGenerator: runner.NewFixedGenerator("run-42"),
	}
	cmd := NewRunCommand(opts.RootOptions)
	cmd.SetOut(buf)

	require.NoError(t, runSamples(opts, []string{"Linq1"}, cmd))
	assert.Contains(t, buf.String(), `"run_id": "run-42"`)
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		exitCode int
		contains string
	}{
		{"no args", nil, ExitCommandError, "requires at least one sample"},
		{"all with names", []string{"--all", "Linq1"}, ExitCommandError, "cannot be combined"},
		{"unknown sample", []string{"Linq3"}, ExitCommandError, "unknown sample"},
		{"bad backend", []string{"--backend", "oracle", "Linq1"}, ExitCommandError, "invalid backend"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, exec := newRunCmd("text", tt.args...)
			err := exec()
			require.Error(t, err)
			assert.Equal(t, tt.exitCode, GetExitCode(err))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestRun_UnknownSampleJSONError(t *testing.T) {
	buf, exec := newRunCmd("json", "Linq3")
	require.Error(t, exec())

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeUnknownSample, resp.Error.Code)
	require.NotEmpty(t, resp.Error.Hints)
	assert.Contains(t, resp.Error.Hints[0], "Linq1, Linq2, Linq5, Linq7, Linq10")
}

func TestRun_DatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
products:
  - {id: 7, name: Pears, category: Produce, unit_price: 2.5, units_in_stock: 3}
`), 0644))

	buf := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Format: "text", Dataset: path, Logger: testutil.DiscardLogger()})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"Linq2"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "ProductID=7  ProductName=Pears  Category=Produce  UnitPrice=2.5  UnitsInStock=3\n", buf.String())
}

func TestRun_BadDatasetFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.yaml")
	require.NoError(t, os.WriteFile(path, []byte("suppliers: []\n"), 0644))

	buf := &bytes.Buffer{}
	cmd := NewRunCommand(&RootOptions{Format: "text", Dataset: path, Logger: testutil.DiscardLogger()})
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"Linq2"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, buf.String(), "Error [E202]")
}
