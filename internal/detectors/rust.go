package detectors

import (
	"fmt"
	"os"
	"strings"

	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
	"github.com/pelletier/go-toml/v2"
)

type cargoManifest struct {
	Package *struct {
		Name    string `toml:"name"`
		Authors any    `toml:"authors"`
	} `toml:"package"`
}

// Rust detects Rust crates and Trunk web apps.
type Rust struct{}

func (Rust) Meta() capability.Meta {
	return capability.Meta{
		Name:           "rust",
		Description:    "Detects if the project contains Rust files, and retrieves basic metadata from Cargo.toml, such as authors or the crate name.",
		DefaultEnabled: true,
	}
}

func (Rust) Detect(r repo.Repo) (value.Value, error) {
	out := value.EmptyObject()
	data, err := r.ReadFile("Cargo.toml")
	switch {
	case err == nil:
		var m cargoManifest
		if err := toml.Unmarshal(data, &m); err != nil {
			return value.Value{}, fmt.Errorf("parse Cargo.toml: %w", err)
		}
		out.Set(ctxkeys.Langs, value.Strings("rust"))
		if m.Package != nil {
			if m.Package.Name != "" {
				out.Set(ctxkeys.CrateName, value.String(m.Package.Name))
			}
			if name, ok := firstAuthorName(m.Package.Authors); ok {
				out.Set(ctxkeys.FullName, value.String(name))
			}
		}
	case !os.IsNotExist(err):
		return value.Value{}, fmt.Errorf("read Cargo.toml: %w", err)
	}

	trunk, err := r.Glob("**/Trunk.toml")
	if err != nil {
		return value.Value{}, err
	}
	if len(trunk) > 0 {
		if err := out.Union(value.Object(map[string]value.Value{
			ctxkeys.Frameworks:   value.Strings("trunk"),
			ctxkeys.TrunkConfigs: value.Strings(trunk...),
		})); err != nil {
			return value.Value{}, err
		}
	}
	return out, nil
}

// firstAuthorName takes "John Doe <john@example.com>" style entries. Authors
// inherited from a workspace (a table instead of a list) are ignored.
func firstAuthorName(authors any) (string, bool) {
	list, ok := authors.([]any)
	if !ok || len(list) == 0 {
		return "", false
	}
	first, ok := list[0].(string)
	if !ok {
		return "", false
	}
	if i := strings.Index(first, "<"); i >= 0 {
		first = first[:i]
	}
	first = strings.TrimSpace(first)
	return first, first != ""
}
