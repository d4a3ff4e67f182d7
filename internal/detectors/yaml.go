package detectors

import (
	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

// YAML detects YAML files.
type YAML struct{}

func (YAML) Meta() capability.Meta {
	return capability.Meta{Name: "yaml", Description: "Detects if the project contains YAML files.", DefaultEnabled: true}
}

func (YAML) Detect(r repo.Repo) (value.Value, error) {
	return detectByExtension(r, []string{"yaml", "yml"}, "yaml")
}
