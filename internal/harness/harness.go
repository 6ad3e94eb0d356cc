package harness

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/roach88/querysamples/internal/dataset"
	"github.com/roach88/querysamples/internal/runner"
	"github.com/roach88/querysamples/internal/samples"
	"github.com/roach88/querysamples/internal/testutil"
)

// Harness executes scenarios against a sample registry.
type Harness struct {
	registry *samples.Registry
	logger   *slog.Logger
}

// Option configures a Harness.
type Option func(*Harness)

// WithRegistry replaces the default sample registry.
func WithRegistry(r *samples.Registry) Option {
	return func(h *Harness) { h.registry = r }
}

// WithLogger sets the logger handed to the runner. Default: discard.
func WithLogger(l *slog.Logger) Option {
	return func(h *Harness) { h.logger = l }
}

// New creates a Harness over samples.Default().
func New(opts ...Option) *Harness {
	h := &Harness{
		registry: samples.Default(),
		logger:   testutil.DiscardLogger(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run executes a scenario with a default Harness.
func Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	return New().Run(ctx, scenario)
}

// Run executes a scenario and evaluates its assertions.
//
// Every scenario gets a fresh runner with a deterministic clock starting at
// 1 and a fixed run ID, so repeated runs produce identical traces. A non-nil
// error means the scenario could not be executed at all; assertion failures
// are reported in the Result.
func (h *Harness) Run(ctx context.Context, scenario *Scenario) (*Result, error) {
	ds, err := loadDataset(scenario.Dataset)
	if err != nil {
		return nil, err
	}

	backend, err := runner.ParseBackend(scenario.Backend)
	if err != nil {
		return nil, err
	}

	ids := testutil.NewFixedRunIDGenerator(scenario.RunID)
	r, err := runner.New(h.registry, ds,
		runner.WithBackend(backend),
		runner.WithIDGenerator(ids),
		runner.WithClock(testutil.NewDeterministicClock()),
		runner.WithLogger(h.logger.With("scenario", scenario.Name)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create runner")
	}
	defer r.Close()

	result := NewResult()
	result.RunID = ids.Generate()
	result.Backend = backend

	for _, name := range scenario.Samples {
		rep, err := r.Run(ctx, name, nil)
		if err != nil {
			return nil, errors.Wrapf(err, "scenario %s", scenario.Name)
		}
		result.AddReport(rep)
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func loadDataset(path string) (*dataset.Dataset, error) {
	if path == "" {
		return dataset.Default(), nil
	}
	ds, err := dataset.LoadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load scenario dataset")
	}
	return ds, nil
}
