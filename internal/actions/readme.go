package actions

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"regexp"
	"strings"

	"github.com/boiler/boiler/internal/capability"
)

// reReadmeHeader matches the generated part of a README: the title, badge
// lines and blank lines before the first real paragraph.
var reReadmeHeader = regexp.MustCompile(`^(?:.+\n=+\n|# .+\n|\s*\n|\[!.+\)\n)*`)

// Readme replaces the title and badges at the top of README.md and keeps the
// rest of the file.
type Readme struct{}

func (Readme) Meta() capability.Meta {
	return capability.Meta{
		Name:           "readme",
		Description:    "Generates the README.md header: title plus CI, crate and license badges.",
		DefaultEnabled: true,
	}
}

func (Readme) Run(d Data) error {
	var text string
	b, err := d.Repo.ReadFile("README.md")
	switch {
	case errors.Is(err, fs.ErrNotExist):
		slog.Warn("readme: README.md not found, creating one")
	case err != nil:
		return fmt.Errorf("read README.md: %w", err)
	default:
		text = strings.ReplaceAll(string(b), "\r\n", "\n")
	}
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	body := stripHeader(text)

	header, err := d.renderer().Render("README.header.md", d.Context)
	if err != nil {
		return err
	}
	out := strings.TrimSpace(strings.TrimRight(header, "\n")+"\n\n"+body) + "\n"
	return d.put("README.md", out)
}

func stripHeader(text string) string {
	return text[len(reReadmeHeader.FindString(text)):]
}
