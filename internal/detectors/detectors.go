package detectors

import (
	"fmt"
	"time"

	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

// Kind is the capability kind reported in enablement errors.
const Kind = "detector"

// Detector inspects a repository without modifying it.
type Detector interface {
	Meta() capability.Meta
	Detect(r repo.Repo) (value.Value, error)
}

// Clock supplies the current time to detectors that need a fallback date.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. Tests use it.
type FixedClock time.Time

func (c FixedClock) Now() time.Time { return time.Time(c) }

// Registry is an ordered set of detectors with unique names.
type Registry struct {
	detectors []Detector
}

// NewRegistry keeps ds in the given order and rejects empty or duplicate
// names.
func NewRegistry(ds ...Detector) (*Registry, error) {
	r := &Registry{detectors: append([]Detector(nil), ds...)}
	if err := capability.ValidateNames(Kind, r.Metas()); err != nil {
		return nil, fmt.Errorf("detector registry: %w", err)
	}
	return r, nil
}

// Default returns the built-in detectors in declaration order.
func Default(clock Clock) *Registry {
	if clock == nil {
		clock = SystemClock{}
	}
	r, err := NewRegistry(
		Docker{},
		Git{Clock: clock},
		Go{},
		Javascript{},
		JSON{},
		License{},
		Python{},
		Readme{},
		Rust{},
		Shell{},
		TOML{},
		YAML{},
	)
	if err != nil {
		panic(err)
	}
	return r
}

// All returns the detectors in declaration order.
func (r *Registry) All() []Detector {
	return append([]Detector(nil), r.detectors...)
}

// Metas returns every descriptor in declaration order.
func (r *Registry) Metas() []capability.Meta {
	out := make([]capability.Meta, len(r.detectors))
	for i, d := range r.detectors {
		out[i] = d.Meta()
	}
	return out
}

// Names returns detector names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.detectors))
	for i, d := range r.detectors {
		out[i] = d.Meta().Name
	}
	return out
}

// Lookup finds a detector by name.
func (r *Registry) Lookup(name string) (Detector, bool) {
	for _, d := range r.detectors {
		if d.Meta().Name == name {
			return d, true
		}
	}
	return nil, false
}
