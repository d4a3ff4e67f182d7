package core

import (
	"context"

	"github.com/boiler/boiler/internal/actions"
	"github.com/boiler/boiler/internal/config"
	"github.com/boiler/boiler/internal/detectors"
	"github.com/boiler/boiler/internal/engine"
	"github.com/boiler/boiler/internal/render"
	"github.com/boiler/boiler/internal/value"
)

// Re-export selected internal types as a stable public API surface.
// These are type aliases so external consumers can depend on a stable path.
type Config = engine.Config
type Result = engine.Result
type Change = render.Change
type Value = value.Value

func newEngine() (*engine.Engine, error) {
	overrides, err := config.BundledOverrides()
	if err != nil {
		return nil, err
	}
	return engine.New(detectors.SystemClock{}, overrides), nil
}

// Detect returns the detected context of cfg.Root with defaults filled in.
// Overrides are not applied.
func Detect(ctx context.Context, cfg Config) (Value, error) {
	eng, err := newEngine()
	if err != nil {
		return Value{}, err
	}
	return eng.Detect(ctx, cfg)
}

// Update regenerates the boilerplate of cfg.Root using the bundled
// overrides. With cfg.DryRun set nothing is written and Result.Changes
// carries the would-be contents.
func Update(ctx context.Context, cfg Config) (Result, error) {
	eng, err := newEngine()
	if err != nil {
		return Result{}, err
	}
	return eng.Update(ctx, cfg, nil)
}

// DetectorNames returns the built-in detector names in run order.
func DetectorNames() []string { return detectors.Default(nil).Names() }

// ActionNames returns the built-in action names in run order.
func ActionNames() []string { return actions.Default().Names() }
