package detectors

import (
	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

// JSON detects JSON files.
type JSON struct{}

func (JSON) Meta() capability.Meta {
	return capability.Meta{Name: "json", Description: "Detects if the project contains JSON files.", DefaultEnabled: true}
}

func (JSON) Detect(r repo.Repo) (value.Value, error) {
	return detectByExtension(r, []string{"json"}, "json")
}
