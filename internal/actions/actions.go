package actions

import (
	"errors"
	"fmt"

	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/render"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

// Kind is the capability kind reported in enablement errors.
const Kind = "action"

// Data is everything an action gets. Context must be treated as read-only;
// every action in a run sees the same value.
type Data struct {
	Repo     repo.Repo
	Context  value.Value
	Sink     render.Sink
	Renderer *render.Renderer
}

func (d Data) renderer() *render.Renderer {
	if d.Renderer != nil {
		return d.Renderer
	}
	return render.Default()
}

// write renders tmpl and hands the result to the sink as rel.
func (d Data) write(rel, tmpl string) error {
	out, err := d.renderer().Render(tmpl, d.Context)
	if err != nil {
		return err
	}
	return d.put(rel, out)
}

func (d Data) put(rel, content string) error {
	if d.Sink == nil {
		return errors.New("no sink configured")
	}
	if _, err := d.Sink.WriteFile(rel, content); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// Action consumes the final context. Run returns nil without writing when
// the action does not apply to the repository.
type Action interface {
	Meta() capability.Meta
	Run(d Data) error
}

// hasLang reports whether lang was detected (or configured).
func hasLang(ctx value.Value, lang string) bool {
	langs, ok := ctx.Get(ctxkeys.Langs)
	return ok && langs.Contains(value.String(lang))
}

// Registry is an ordered set of actions with unique names.
type Registry struct {
	actions []Action
}

// NewRegistry keeps as in the given order and rejects empty or duplicate
// names.
func NewRegistry(as ...Action) (*Registry, error) {
	r := &Registry{actions: append([]Action(nil), as...)}
	if err := capability.ValidateNames(Kind, r.Metas()); err != nil {
		return nil, fmt.Errorf("action registry: %w", err)
	}
	return r, nil
}

// Default returns the built-in actions in declaration order.
func Default() *Registry {
	r, err := NewRegistry(
		DependabotConfig(),
		DockerCI(),
		GoCI(),
		License{},
		PreCommitCI(),
		PreCommitConfig(),
		PythonCI(),
		Readme{},
		RustCI(),
		RustfmtToml(),
	)
	if err != nil {
		panic(err)
	}
	return r
}

// All returns the actions in declaration order.
func (r *Registry) All() []Action {
	return append([]Action(nil), r.actions...)
}

// Metas returns every descriptor in declaration order.
func (r *Registry) Metas() []capability.Meta {
	out := make([]capability.Meta, len(r.actions))
	for i, a := range r.actions {
		out[i] = a.Meta()
	}
	return out
}

// Names returns action names in declaration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.actions))
	for i, a := range r.actions {
		out[i] = a.Meta().Name
	}
	return out
}

// Lookup finds an action by name.
func (r *Registry) Lookup(name string) (Action, bool) {
	for _, a := range r.actions {
		if a.Meta().Name == name {
			return a, true
		}
	}
	return nil, false
}
