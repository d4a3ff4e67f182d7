package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"
	"text/template"

	"github.com/boiler/boiler/internal/value"
)

//go:embed all:templates
var templatesFS embed.FS

const (
	templateDir    = "templates"
	templateSuffix = ".tmpl"
	leftDelim      = "{%"
	rightDelim     = "%}"
)

// ErrUnknownTemplate is returned by Render for names with no template.
var ErrUnknownTemplate = errors.New("unknown template")

// Renderer executes the embedded templates. Template names are the output
// path relative to the repository root, e.g. ".github/workflows/rust.yml".
type Renderer struct {
	set   *template.Template
	names []string
}

// New parses every embedded template.
func New() (*Renderer, error) {
	set := template.New("").Delims(leftDelim, rightDelim).Funcs(funcMap()).Option("missingkey=default")
	var names []string
	err := fs.WalkDir(templatesFS, templateDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, templateSuffix) {
			return nil
		}
		body, err := templatesFS.ReadFile(p)
		if err != nil {
			return err
		}
		name := strings.TrimSuffix(strings.TrimPrefix(p, templateDir+"/"), templateSuffix)
		if _, err := set.New(name).Parse(string(body)); err != nil {
			return fmt.Errorf("parse template %s: %w", name, err)
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return &Renderer{set: set, names: names}, nil
}

var defaultRenderer = sync.OnceValues(New)

// Default returns a shared Renderer. The embedded templates are fixed at
// build time, so an error here means a broken build.
func Default() *Renderer {
	r, err := defaultRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Names lists the available templates.
func (r *Renderer) Names() []string {
	return append([]string(nil), r.names...)
}

// Has reports whether a template exists.
func (r *Renderer) Has(name string) bool {
	return r.set.Lookup(name) != nil
}

// Render executes the named template with ctx as its data. Templates see the
// context as plain maps and slices.
func (r *Renderer) Render(name string, ctx value.Value) (string, error) {
	t := r.set.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("%s: %w", name, ErrUnknownTemplate)
	}
	data, _ := ctx.ToAny().(map[string]any)
	if data == nil {
		data = map[string]any{}
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}
