package detectors

import (
	"fmt"
	"os"

	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
	"golang.org/x/mod/modfile"
)

// Go reads the module path and language version from go.mod.
type Go struct{}

func (Go) Meta() capability.Meta {
	return capability.Meta{
		Name:           "go",
		Description:    "Detects Go modules and reads the module path and Go version from go.mod.",
		DefaultEnabled: true,
	}
}

func (Go) Detect(r repo.Repo) (value.Value, error) {
	out := value.EmptyObject()
	data, err := r.ReadFile("go.mod")
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return value.Value{}, fmt.Errorf("read go.mod: %w", err)
	}
	f, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil {
		return value.Value{}, fmt.Errorf("parse go.mod: %w", err)
	}
	out.Set(ctxkeys.Langs, value.Strings("go"))
	if f.Module != nil && f.Module.Mod.Path != "" {
		out.Set(ctxkeys.GoModule, value.String(f.Module.Mod.Path))
	}
	if f.Go != nil && f.Go.Version != "" {
		out.Set(ctxkeys.GoVersion, value.String(f.Go.Version))
	}
	return out, nil
}
