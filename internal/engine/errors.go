package engine

import (
	"errors"
	"fmt"
)

// Phases reported by CapabilityError.
const (
	PhaseDetection = "detection"
	PhaseAction    = "action"
)

// ErrMissingRepositoryIdentity means repo_owner or repo_name could not be
// determined, so overrides cannot be looked up.
var ErrMissingRepositoryIdentity = errors.New("missing repository identity (repo_owner/repo_name)")

// CapabilityError wraps the failure of a single detector or action.
type CapabilityError struct {
	Phase string
	Name  string
	Err   error
}

func (e *CapabilityError) Error() string {
	what := "detector"
	if e.Phase == PhaseAction {
		what = "action"
	}
	return fmt.Sprintf("%s %s failed: %v", what, e.Name, e.Err)
}

func (e *CapabilityError) Unwrap() error { return e.Err }
