// Package engine runs boiler: it detects facts about a repository, merges them
// with defaults and per-repository overrides into the final context, and runs
// the enabled actions against it. This package is internal; external
// consumers should use the stable facade in pkg/core.
package engine
