package detectors

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

var (
	reSetextTitle = regexp.MustCompile(`(?m)^(.+)\n=+[ \t]*$`)
	reATXTitle    = regexp.MustCompile(`(?m)^# (.+)$`)
)

// Readme reads the project name from the README title.
type Readme struct{}

func (Readme) Meta() capability.Meta {
	return capability.Meta{
		Name:           "readme",
		Description:    "Retrieves the project name from the README.md file.",
		DefaultEnabled: true,
	}
}

func (Readme) Detect(r repo.Repo) (value.Value, error) {
	out := value.EmptyObject()
	data, err := r.ReadFile("README.md")
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return value.Value{}, fmt.Errorf("read README.md: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	m := reSetextTitle.FindStringSubmatch(text)
	if m == nil {
		m = reATXTitle.FindStringSubmatch(text)
	}
	if m != nil {
		if name := strings.TrimSpace(m[1]); name != "" {
			out.Set(ctxkeys.Name, value.String(name))
		}
	}
	return out, nil
}
