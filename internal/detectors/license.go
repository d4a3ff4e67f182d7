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

// gplHeaderLen bounds where the GPL family title must appear.
const gplHeaderLen = 1024

var reCopyright = regexp.MustCompile(`(?mi)^[ \t]*copyright[ \t]+(?:\(c\)|©)[ \t]+[0-9][0-9, -]*[ \t]+(.+?)[ \t]*$`)

// License fingerprints the LICENSE file and reads the copyright holder.
type License struct{}

func (License) Meta() capability.Meta {
	return capability.Meta{
		Name:           "license",
		Description:    "Detects the license of the project using the LICENSE file.",
		DefaultEnabled: true,
	}
}

func (License) Detect(r repo.Repo) (value.Value, error) {
	out := value.EmptyObject()
	data, err := r.ReadFile("LICENSE")
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return value.Value{}, fmt.Errorf("read LICENSE: %w", err)
	}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	if id, ok := licenseID(text); ok {
		out.Set(ctxkeys.License, value.String(id))
	}
	if holder, ok := copyrightHolder(text); ok {
		out.Set(ctxkeys.FullName, value.String(holder))
	}
	return out, nil
}

func licenseID(text string) (string, bool) {
	lower := strings.ToLower(text)
	head := lower
	if len(head) > gplHeaderLen {
		head = head[:gplHeaderLen]
	}
	switch {
	case strings.Contains(lower, "mit license"):
		return "MIT", true
	case strings.Contains(head, "gnu affero general public license") && strings.Contains(lower, "version 3"):
		return "GNU AGPL v3", true
	case strings.Contains(head, "gnu general public license") && strings.Contains(lower, "version 3"):
		return "GNU GPL v3", true
	}
	return "", false
}

// copyrightHolder returns the name on the first copyright line, skipping the
// notice the FSF puts on its own license texts.
func copyrightHolder(text string) (string, bool) {
	for _, m := range reCopyright.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if name == "" || strings.Contains(name, "Free Software Foundation") {
			continue
		}
		return name, true
	}
	return "", false
}
