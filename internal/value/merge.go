package value

import (
	"fmt"
	"strings"
)

// ConflictError reports two incompatible values met by Union. Path holds the
// object keys leading to the conflict, outermost first.
type ConflictError struct {
	Path  []string
	Left  Value
	Right Value
}

func (e *ConflictError) Error() string {
	var msg string
	if e.Left.kind == e.Right.kind {
		msg = fmt.Sprintf("incompatible %s values: %s and %s", e.Left.kind, e.Left, e.Right)
	} else {
		msg = fmt.Sprintf("incompatible types: %s %s and %s %s", e.Left.kind, e.Left, e.Right.kind, e.Right)
	}
	if len(e.Path) == 0 {
		return msg
	}
	return "conflict at " + strings.Join(e.Path, ".") + ": " + msg
}

// Union merges other into v, for fragments produced independently of each
// other. Objects merge key by key, arrays are concatenated (duplicates kept),
// and scalars must be equal. Anything else is a *ConflictError. On error v
// may be partially merged and should be discarded.
func (v *Value) Union(other Value) error {
	switch {
	case v.kind == KindObject && other.kind == KindObject:
		v.own()
		for _, k := range other.Keys() {
			ov := other.obj[k]
			cur, ok := v.obj[k]
			if !ok {
				v.obj[k] = ov.Clone()
				continue
			}
			if err := cur.Union(ov); err != nil {
				return prependPath(k, err)
			}
			v.obj[k] = cur
		}
		return nil
	case v.kind == KindArray && other.kind == KindArray:
		v.own()
		for _, e := range other.arr {
			v.arr = append(v.arr, e.Clone())
		}
		return nil
	case v.kind == other.kind && v.kind != KindArray && v.kind != KindObject:
		if Equal(*v, other) {
			return nil
		}
	}
	return &ConflictError{Left: v.Clone(), Right: other.Clone()}
}

func prependPath(key string, err error) error {
	if ce, ok := err.(*ConflictError); ok {
		ce.Path = append([]string{key}, ce.Path...)
		return ce
	}
	return fmt.Errorf("at key %q: %w", key, err)
}

// OverrideWith merges other into v with other taking precedence. Objects are
// merged key by key; in every other case other replaces v. It never fails.
func (v *Value) OverrideWith(other Value) {
	if v.kind != KindObject || other.kind != KindObject {
		*v = other.Clone()
		return
	}
	v.own()
	for k, ov := range other.obj {
		cur, ok := v.obj[k]
		if !ok {
			v.obj[k] = ov.Clone()
			continue
		}
		cur.OverrideWith(ov)
		v.obj[k] = cur
	}
}
