package detectors

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

// Docker lists the Dockerfiles at the repository root.
type Docker struct{}

func (Docker) Meta() capability.Meta {
	return capability.Meta{
		Name:           "docker",
		Description:    "Detects the existence of Dockerfiles.",
		DefaultEnabled: true,
	}
}

func (Docker) Detect(r repo.Repo) (value.Value, error) {
	entries, err := os.ReadDir(r.Root)
	if err != nil {
		return value.Value{}, fmt.Errorf("read repository root: %w", err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		lower := strings.ToLower(e.Name())
		if lower == "dockerfile" || strings.HasSuffix(lower, ".dockerfile") {
			files = append(files, e.Name())
		}
	}
	out := value.EmptyObject()
	if len(files) == 0 {
		return out, nil
	}
	sort.SliceStable(files, func(i, j int) bool { return dockerfileLess(files[i], files[j]) })
	out.Set(ctxkeys.Langs, value.Strings("docker"))
	out.Set(ctxkeys.Dockerfiles, value.Strings(files...))
	return out, nil
}

// dockerfileLess puts a plain Dockerfile first and orders the rest by their
// stem.
func dockerfileLess(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	if a == "dockerfile" || b == "dockerfile" {
		return a == "dockerfile" && b != "dockerfile"
	}
	return strings.TrimSuffix(a, ".dockerfile") < strings.TrimSuffix(b, ".dockerfile")
}
