package engine

import (
	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/value"
)

// DefaultContext is the context of a repository nothing was detected in.
// Detected values override it key by key.
func DefaultContext() value.Value {
	return value.Object(map[string]value.Value{
		ctxkeys.CratePublished:        value.Bool(true),
		ctxkeys.CoverageEnabled:       value.Bool(true),
		ctxkeys.License:               value.String(ctxkeys.LicenseProprietary),
		ctxkeys.Langs:                 value.Strings(),
		ctxkeys.Frameworks:            value.Strings(),
		ctxkeys.GHActionsRustVersions: value.Strings("stable", "nightly"),
		ctxkeys.GHActionsRustOS:       value.Strings("ubuntu-latest", "macos-latest", "windows-latest"),
		ctxkeys.GHActionsRustFeatures: value.Strings(),
		ctxkeys.GHActionsGoVersions:   value.Strings("stable", "oldstable"),
	})
}
