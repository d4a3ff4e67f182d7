// Package detectors implements the repository detectors used by boiler.
// Each detector inspects a repository and returns an object fragment built
// from the keys in ctxkeys, or an empty object when it finds nothing.
package detectors
