// Package capability holds what detectors and actions have in common: a
// descriptor used for listing, and the enablement map that decides which of
// them run.
package capability

import (
	"errors"
	"fmt"
	"strings"
)

// Meta describes a detector or an action.
type Meta struct {
	Name           string
	Description    string
	DefaultEnabled bool
}

// UnknownNameError is returned when an enable or exclude list names a
// capability that does not exist.
type UnknownNameError struct {
	Kind  string // "detector" or "action"
	Names []string
}

func (e *UnknownNameError) Error() string {
	noun := e.Kind
	if len(e.Names) > 1 {
		noun += "s"
	}
	return fmt.Sprintf("unknown %s: %s", noun, strings.Join(e.Names, ", "))
}

// ValidateNames checks that every name is non-empty and unique. Registries
// call it when they are built.
func ValidateNames(kind string, metas []Meta) error {
	seen := make(map[string]bool, len(metas))
	var errs []error
	for i, m := range metas {
		if strings.TrimSpace(m.Name) == "" {
			errs = append(errs, fmt.Errorf("%s #%d has an empty name", kind, i))
			continue
		}
		if seen[m.Name] {
			errs = append(errs, fmt.Errorf("duplicate %s name %q", kind, m.Name))
		}
		seen[m.Name] = true
	}
	return errors.Join(errs...)
}

// Enablement maps capability names to whether they run.
type Enablement struct {
	kind    string
	enabled map[string]bool
}

// NewEnablement seeds every capability with its default.
func NewEnablement(kind string, metas []Meta) *Enablement {
	e := &Enablement{kind: kind, enabled: make(map[string]bool, len(metas))}
	for _, m := range metas {
		e.enabled[m.Name] = m.DefaultEnabled
	}
	return e
}

// Exclude disables the named capabilities. All names are checked before any
// of them is applied, so an error leaves the map untouched.
func (e *Enablement) Exclude(names []string) error {
	return e.set(names, false)
}

// Only enables exactly the named capabilities and disables the rest. An
// empty list changes nothing.
func (e *Enablement) Only(names []string) error {
	if len(names) == 0 {
		return nil
	}
	if err := e.check(names); err != nil {
		return err
	}
	for n := range e.enabled {
		e.enabled[n] = false
	}
	return e.set(names, true)
}

func (e *Enablement) check(names []string) error {
	var unknown []string
	for _, n := range names {
		if _, ok := e.enabled[n]; !ok {
			unknown = append(unknown, n)
		}
	}
	if len(unknown) > 0 {
		return &UnknownNameError{Kind: e.kind, Names: unknown}
	}
	return nil
}

func (e *Enablement) set(names []string, on bool) error {
	if err := e.check(names); err != nil {
		return err
	}
	for _, n := range names {
		e.enabled[n] = on
	}
	return nil
}

// IsEnabled is false for names the map does not know.
func (e *Enablement) IsEnabled(name string) bool {
	return e.enabled[name]
}

// SplitList parses a comma separated list such as "rust_ci, readme" the way
// the command line and config files spell them. Empty items are dropped.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
