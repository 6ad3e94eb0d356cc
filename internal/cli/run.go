package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/roach88/querysamples/internal/runner"
	"github.com/roach88/querysamples/internal/samples"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	All bool

	// IDGenerator overrides the UUIDv7 run ID generator (for testing).
	IDGenerator runner.IDGenerator
}

// RunResult is the JSON payload of the run command.
type RunResult struct {
	Backend runner.Backend  `json:"backend"`
	Reports []runner.Report `json:"reports"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <sample>... | --all",
		Short: "Run samples and print their output",
		Long: `Run one or more samples by name, or every registered sample with --all.

Text output is each sample's lines. With more than one sample, every block
is preceded by a "== Name: Title ==" header. JSON output carries the lines,
the canonical result rows and their digest.

The sql backend mirrors the dataset into an in-memory SQLite database and
evaluates the samples that have a SQL rendition there.

Examples:
  qsamples run Linq1
  qsamples run Linq2 Linq10 --backend sql
  qsamples run --all --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if opts.All && len(args) > 0 {
				return NewExitError(ExitCommandError, "--all cannot be combined with sample names")
			}
			if !opts.All && len(args) == 0 {
				return NewExitError(ExitCommandError, "requires at least one sample name or --all")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSamples(opts, args, cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.All, "all", false, "run every registered sample in registration order")
	cmd.Flags().StringVar(&opts.Backend, "backend", string(runner.BackendMemory), "evaluation backend (memory|sql)")

	return cmd
}

func runSamples(opts *RunOptions, names []string, cmd *cobra.Command) error {
	formatter := opts.formatter(cmd)
	registry := samples.Default()

	backend, err := runner.ParseBackend(opts.Backend)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeInvalidConfig, "invalid backend", err)
	}

	ds, err := opts.loadDataset()
	if err != nil {
		return formatter.Fail(ExitCommandError, datasetErrorCode(err), "cannot load dataset", err)
	}

	if opts.All {
		names = registry.Names()
	}
	selected := make([]samples.Sample, 0, len(names))
	for _, name := range names {
		s, err := registry.Lookup(name)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeUnknownSample, "unknown sample", err)
		}
		selected = append(selected, s)
	}

	runOpts := []runner.Option{
		runner.WithBackend(backend),
		runner.WithLogger(opts.logger()),
	}
	if opts.IDGenerator != nil {
		runOpts = append(runOpts, runner.WithIDGenerator(opts.IDGenerator))
	}
	r, err := runner.New(registry, ds, runOpts...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "cannot create runner", err)
	}
	defer func() {
		if closeErr := r.Close(); closeErr != nil {
			opts.logger().Error("error closing sql mirror", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	var out io.Writer
	if opts.Format != "json" {
		out = cmd.OutOrStdout()
	}

	reports := make([]runner.Report, 0, len(selected))
	for _, s := range selected {
		if err := ctx.Err(); err != nil {
			return WrapExitError(ExitFailure, "interrupted", err)
		}
		if out != nil && len(selected) > 1 {
			fmt.Fprintf(out, "== %s: %s ==\n", s.Name, s.Title)
		}
		rep, err := r.Run(ctx, s.Name, out)
		if err != nil {
			if errors.Is(err, samples.ErrUnknownSample) {
				return formatter.Fail(ExitCommandError, ErrCodeUnknownSample, "unknown sample", err)
			}
			return formatter.Fail(ExitFailure, ErrCodeSampleFailed, "sample failed", err)
		}
		reports = append(reports, rep)
	}

	if opts.Format == "json" {
		return formatter.Success(RunResult{Backend: backend, Reports: reports})
	}
	return nil
}
