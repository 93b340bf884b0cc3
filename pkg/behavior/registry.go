package behavior

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// SetupFunc wires one feature onto the prepared document. It returns the
// number of handlers it registered; zero with a nil error means the
// feature's elements were absent and the feature is inactive, a silent
// no-op rather than a fault.
type SetupFunc func() (handlers int, err error)

// Registration is one named feature setup.
type Registration struct {
	Name  string
	Setup SetupFunc
}

// FeatureReport is the setup outcome of a single feature.
type FeatureReport struct {
	Name     string
	Handlers int
	Err      error
}

// Report summarizes one bootstrap run.
type Report struct {
	Features []FeatureReport
}

// Handlers returns the total number of handlers registered.
func (r Report) Handlers() int {
	n := 0
	for _, f := range r.Features {
		n += f.Handlers
	}
	return n
}

// Inactive returns the names of features that registered nothing and
// raised no error, the silent no-ops.
func (r Report) Inactive() []string {
	var names []string
	for _, f := range r.Features {
		if f.Handlers == 0 && f.Err == nil {
			names = append(names, f.Name)
		}
	}
	return names
}

// Err joins the per-feature errors, nil when every setup succeeded.
func (r Report) Err() error {
	var errs []error
	for _, f := range r.Features {
		if f.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", f.Name, f.Err))
		}
	}
	return errors.Join(errs...)
}

// Registry collects feature registrations and runs them once the document
// is ready. Setups run in registration order for determinism, but none
// depends on another having run: a failing or inactive feature never
// blocks the rest.
type Registry struct {
	lifecycle *Lifecycle

	mu   sync.Mutex
	regs []Registration
}

// NewRegistry returns an empty registry with its own lifecycle gate.
func NewRegistry() *Registry {
	return &Registry{lifecycle: NewLifecycle()}
}

// Register appends a feature setup. Registration order is preserved.
func (r *Registry) Register(name string, setup SetupFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regs = append(r.regs, Registration{Name: name, Setup: setup})
}

// Lifecycle exposes the registry's ready gate.
func (r *Registry) Lifecycle() *Lifecycle {
	return r.lifecycle
}

// SignalReady marks the document ready for setup.
func (r *Registry) SignalReady() {
	r.lifecycle.SignalReady()
}

// Run awaits the ready signal once, then executes every registered setup
// in order and reports the outcome. A setup that panics is recorded as a
// failed feature; the run continues.
func (r *Registry) Run(ctx context.Context) (Report, error) {
	if err := r.lifecycle.WaitReady(ctx); err != nil {
		return Report{}, err
	}

	r.mu.Lock()
	regs := make([]Registration, len(r.regs))
	copy(regs, r.regs)
	r.mu.Unlock()

	report := Report{Features: make([]FeatureReport, 0, len(regs))}
	for _, reg := range regs {
		n, err := runSetup(reg.Setup)
		report.Features = append(report.Features, FeatureReport{
			Name:     reg.Name,
			Handlers: n,
			Err:      err,
		})
	}
	return report, report.Err()
}

// runSetup invokes one setup with panic containment so a broken feature
// cannot take down its siblings.
func runSetup(setup SetupFunc) (n int, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("setup panic: %v", rec)
		}
	}()
	return setup()
}
