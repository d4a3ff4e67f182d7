package detectors

import (
	"log/slog"

	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
	"github.com/pelletier/go-toml/v2"
)

// Python detects Python projects, their package manager and Django.
type Python struct{}

func (Python) Meta() capability.Meta {
	return capability.Meta{
		Name:           "python",
		Description:    "Detects Python projects, the package manager in use (poetry or pip) and the Django framework.",
		DefaultEnabled: true,
	}
}

func (Python) Detect(r repo.Repo) (value.Value, error) {
	out := value.EmptyObject()
	manager := ""
	switch {
	case r.Exists("pyproject.toml"):
		manager = pyprojectManager(r)
	case r.Exists("requirements.txt"):
		manager = "pip"
	}
	if manager != "" {
		out.Set(ctxkeys.Langs, value.Strings("python"))
		out.Set(ctxkeys.PythonPackageManagers, value.Strings(manager))
	}
	if r.Exists("manage.py") {
		out.Set(ctxkeys.Frameworks, value.Strings("django"))
	}
	return out, nil
}

// pyprojectManager is poetry unless pyproject.toml declares a standard
// [project] table without a [tool.poetry] section, which means pip. A file
// that does not parse keeps the poetry default.
func pyprojectManager(r repo.Repo) string {
	data, err := r.ReadFile("pyproject.toml")
	if err != nil {
		return "poetry"
	}
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		slog.Debug("could not parse pyproject.toml", "err", err)
		return "poetry"
	}
	_, hasProject := doc["project"].(map[string]any)
	tool, _ := doc["tool"].(map[string]any)
	_, hasPoetry := tool["poetry"]
	if hasProject && !hasPoetry {
		return "pip"
	}
	return "poetry"
}
