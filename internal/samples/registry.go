package samples

import (
	"slices"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

// ErrUnknownSample is returned by Lookup for names that are not registered.
var ErrUnknownSample = errors.New("unknown sample")

// Registry holds samples in registration order.
type Registry struct {
	samples []Sample
	index   map[string]int
}

// NewRegistry builds a registry. Names are matched case-insensitively and
// must be unique.
func NewRegistry(samples ...Sample) (*Registry, error) {
	r := &Registry{index: make(map[string]int, len(samples))}
	for _, s := range samples {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends s to the registry.
func (r *Registry) Register(s Sample) error {
	if s.Name == "" {
		return errors.New("sample has no name")
	}
	if s.Run == nil {
		return errors.Newf("sample %s has no Run function", s.Name)
	}
	key := strings.ToLower(s.Name)
	if _, dup := r.index[key]; dup {
		return errors.Newf("sample %s registered twice", s.Name)
	}
	r.index[key] = len(r.samples)
	r.samples = append(r.samples, s)
	return nil
}

// Lookup finds a sample by name.
func (r *Registry) Lookup(name string) (Sample, error) {
	i, ok := r.index[strings.ToLower(name)]
	if !ok {
		return Sample{}, errors.WithHintf(
			errors.Wrapf(ErrUnknownSample, "%q", name),
			"registered samples: %s", strings.Join(r.Names(), ", "),
		)
	}
	return r.samples[i], nil
}

// All returns the samples in registration order.
func (r *Registry) All() []Sample {
	return slices.Clone(r.samples)
}

// Names returns the sample names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.samples))
	for i, s := range r.samples {
		names[i] = s.Name
	}
	return names
}

// Categories returns the distinct categories in first-registration order.
func (r *Registry) Categories() []string {
	var cats []string
	for _, s := range r.samples {
		if !slices.Contains(cats, s.Category) {
			cats = append(cats, s.Category)
		}
	}
	return cats
}

// ByCategory returns the samples in category, matched case-insensitively.
func (r *Registry) ByCategory(category string) []Sample {
	var out []Sample
	for _, s := range r.samples {
		if strings.EqualFold(s.Category, category) {
			out = append(out, s)
		}
	}
	return out
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry of built-in samples.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := NewRegistry(Linq1(), Linq2(), Linq5(), Linq7(), Linq10())
		if err != nil {
			panic(err)
		}
		defaultRegistry = r
	})
	return defaultRegistry
}
