package detectors

import (
	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

// TOML detects TOML files.
type TOML struct{}

func (TOML) Meta() capability.Meta {
	return capability.Meta{Name: "toml", Description: "Detects if the project contains TOML files.", DefaultEnabled: true}
}

func (TOML) Detect(r repo.Repo) (value.Value, error) {
	return detectByExtension(r, []string{"toml"}, "toml")
}
