// Package core provides a small, stable facade over boiler's internal engine
// for external integrations. It re-exports a narrow API surface so other
// tools can depend on a stable import path without reaching into internal
// packages.
//
// Example:
//
//	res, err := core.Update(ctx, core.Config{Root: ".", DryRun: true})
//	if err != nil { /* handle */ }
//	_ = core.MarshalContext(os.Stdout, res.Context)
package core
