package runner

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/roach88/querysamples/internal/dataset"
	"github.com/roach88/querysamples/internal/ir"
	"github.com/roach88/querysamples/internal/query"
	"github.com/roach88/querysamples/internal/samples"
	"github.com/roach88/querysamples/internal/store"
)

// Backend selects where sample data is read from.
type Backend string

const (
	BackendMemory Backend = "memory"
	BackendSQL    Backend = "sql"
)

// ValidBackends lists the accepted backend names.
var ValidBackends = []Backend{BackendMemory, BackendSQL}

// ParseBackend validates a backend name. Empty means BackendMemory.
func ParseBackend(s string) (Backend, error) {
	if s == "" {
		return BackendMemory, nil
	}
	for _, b := range ValidBackends {
		if string(b) == s {
			return b, nil
		}
	}
	return "", errors.WithHint(
		errors.Newf("unknown backend %q", s),
		"use memory or sql",
	)
}

// Report describes one sample execution.
type Report struct {
	RunID   string   `json:"run_id"`
	Seq     int64    `json:"seq"`
	Sample  string   `json:"sample"`
	Backend Backend  `json:"backend"`
	Lines   []string `json:"lines"`
	Rows    ir.Array `json:"rows"`
	Digest  string   `json:"digest"`
}

// Runner executes samples from a registry against one dataset.
// It is not safe for concurrent use.
type Runner struct {
	registry *samples.Registry
	ds       *dataset.Dataset
	backend  Backend
	ids      IDGenerator
	clock    Sequencer
	logger   *slog.Logger

	mirror   *store.Store
	snapshot *dataset.Dataset
}

// Option configures a Runner.
type Option func(*Runner)

// WithBackend selects the backend. Default: BackendMemory.
func WithBackend(b Backend) Option {
	return func(r *Runner) { r.backend = b }
}

// WithIDGenerator replaces the UUIDv7 run ID generator.
func WithIDGenerator(g IDGenerator) Option {
	return func(r *Runner) { r.ids = g }
}

// WithClock replaces the logical clock, e.g. to continue a sequence.
func WithClock(c Sequencer) Option {
	return func(r *Runner) { r.clock = c }
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) { r.logger = l }
}

// New creates a Runner. A nil registry or dataset is an invalid argument.
func New(registry *samples.Registry, ds *dataset.Dataset, opts ...Option) (*Runner, error) {
	if registry == nil {
		return nil, errors.Wrap(query.ErrInvalidArgument, "runner: registry is nil")
	}
	if ds == nil {
		return nil, errors.Wrap(query.ErrInvalidArgument, "runner: dataset is nil")
	}

	r := &Runner{
		registry: registry,
		ds:       ds,
		backend:  BackendMemory,
		ids:      UUIDv7Generator{},
		clock:    NewClock(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if _, err := ParseBackend(string(r.backend)); err != nil {
		return nil, err
	}
	return r, nil
}

// Close releases the SQL mirror, if one was opened.
func (r *Runner) Close() error {
	if r.mirror == nil {
		return nil
	}
	err := r.mirror.Close()
	r.mirror, r.snapshot = nil, nil
	return err
}

// Run executes the named sample and writes its lines to w (nil = discard).
func (r *Runner) Run(ctx context.Context, name string, w io.Writer) (Report, error) {
	s, err := r.registry.Lookup(name)
	if err != nil {
		return Report{}, err
	}
	return r.execute(ctx, s, w)
}

// RunAll executes every registered sample in registry order. It stops at
// the first failure and returns the reports completed so far.
func (r *Runner) RunAll(ctx context.Context, w io.Writer) ([]Report, error) {
	var reports []Report
	for _, s := range r.registry.All() {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		rep, err := r.execute(ctx, s, w)
		if err != nil {
			return reports, err
		}
		reports = append(reports, rep)
	}
	return reports, nil
}

func (r *Runner) execute(ctx context.Context, s samples.Sample, w io.Writer) (Report, error) {
	runID := r.ids.Generate()
	seq := r.clock.Next()
	log := r.logger.With("run_id", runID, "sample", s.Name, "backend", string(r.backend))

	log.Debug("running sample", "seq", seq, "title", s.Title)
	start := time.Now()

	res, err := r.evaluate(ctx, s)
	if err != nil {
		log.Error("sample failed", "error", err)
		return Report{}, errors.Wrapf(err, "sample %s", s.Name)
	}

	digest, err := res.Digest()
	if err != nil {
		return Report{}, errors.Wrapf(err, "sample %s", s.Name)
	}

	if w != nil {
		if _, err := io.WriteString(w, res.Text()); err != nil {
			return Report{}, errors.Wrap(err, "write sample output")
		}
	}

	log.Info("sample complete",
		"rows", len(res.Rows),
		"lines", len(res.Lines),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return Report{
		RunID:   runID,
		Seq:     seq,
		Sample:  s.Name,
		Backend: r.backend,
		Lines:   res.Lines,
		Rows:    res.Rows,
		Digest:  digest,
	}, nil
}

func (r *Runner) evaluate(ctx context.Context, s samples.Sample) (samples.Result, error) {
	if r.backend == BackendMemory {
		return s.Run(r.ds)
	}

	if err := r.ensureMirror(ctx); err != nil {
		return samples.Result{}, err
	}
	if s.HasSQL() {
		return s.RunSQL(ctx, r.mirror)
	}
	return s.Run(r.snapshot)
}

// ensureMirror opens the SQL mirror on first use.
func (r *Runner) ensureMirror(ctx context.Context) error {
	if r.mirror != nil {
		return nil
	}

	mirror, err := store.Mirror(ctx, r.ds)
	if err != nil {
		return errors.Wrap(err, "open sql mirror")
	}
	snapshot, err := mirror.Snapshot(ctx)
	if err != nil {
		mirror.Close()
		return errors.Wrap(err, "read sql mirror")
	}

	stats, err := mirror.Stats(ctx)
	if err != nil {
		mirror.Close()
		return errors.Wrap(err, "count sql mirror")
	}
	if want := r.ds.Stats(); stats != want {
		mirror.Close()
		return errors.Newf("sql mirror holds %+v, dataset has %+v", stats, want)
	}
	r.logger.Debug("sql mirror ready",
		"products", stats.Products,
		"customers", stats.Customers,
		"orders", stats.Orders,
	)
	r.mirror, r.snapshot = mirror, snapshot
	return nil
}
