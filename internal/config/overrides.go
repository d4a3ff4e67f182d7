package config

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/boiler/boiler/internal/value"
)

//go:embed overrides.yml
var bundledOverrides []byte

// Override is the operator configuration for one repository.
type Override struct {
	ExcludedActions []string    `yaml:"excluded_actions"`
	Context         value.Value `yaml:"context"`
}

// Overrides maps "owner/name" to its Override.
type Overrides map[string]Override

// ParseOverrides decodes an override document. Keys must look like
// "owner/name" and every context must be an object.
func ParseOverrides(b []byte) (Overrides, error) {
	var o Overrides
	if err := yaml.Unmarshal(b, &o); err != nil {
		return nil, fmt.Errorf("parse overrides: %w", err)
	}
	if o == nil {
		o = Overrides{}
	}
	for _, id := range o.IDs() {
		owner, name, ok := strings.Cut(id, "/")
		if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
			return nil, fmt.Errorf("parse overrides: key %q is not owner/name", id)
		}
		ov := o[id]
		switch ov.Context.Kind() {
		case value.KindNull:
			ov.Context = value.EmptyObject()
			o[id] = ov
		case value.KindObject:
		default:
			return nil, fmt.Errorf("parse overrides: %s: context must be an object, got %s", id, ov.Context.Kind())
		}
	}
	return o, nil
}

// BundledOverrides returns the override document compiled into the binary.
func BundledOverrides() (Overrides, error) {
	return ParseOverrides(bundledOverrides)
}

// LoadOverrides reads the override document at path, or the bundled one when
// path is empty.
func LoadOverrides(path string) (Overrides, error) {
	if path == "" {
		return BundledOverrides()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseOverrides(b)
}

// Lookup returns the override for "owner/name".
func (o Overrides) Lookup(id string) (Override, bool) {
	ov, ok := o[id]
	if !ok {
		return Override{}, false
	}
	ov.ExcludedActions = append([]string(nil), ov.ExcludedActions...)
	ov.Context = ov.Context.Clone()
	return ov, true
}

// IDs returns the repository keys, sorted.
func (o Overrides) IDs() []string {
	ids := make([]string, 0, len(o))
	for id := range o {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
