package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/boiler/boiler/internal/actions"
	"github.com/boiler/boiler/internal/capability"
	"github.com/boiler/boiler/internal/config"
	"github.com/boiler/boiler/internal/ctxkeys"
	"github.com/boiler/boiler/internal/detectors"
	"github.com/boiler/boiler/internal/render"
	"github.com/boiler/boiler/internal/repo"
	"github.com/boiler/boiler/internal/value"
)

// Config controls a single run.
type Config struct {
	Root string

	// Comma-separated capability names. Enable lists act as an allow list;
	// disable lists are subtracted afterwards.
	EnableDetectors  string
	DisableDetectors string
	EnableActions    string
	DisableActions   string

	// Context is applied over the final context after any named override.
	// A null value is ignored.
	Context value.Value

	// DryRun records the would-be changes in memory instead of writing them.
	DryRun bool

	// Progress, if set, is called before each capability runs.
	Progress func(phase, name string)
}

// Engine holds the capability registries and override document a run uses.
type Engine struct {
	Detectors *detectors.Registry
	Actions   *actions.Registry
	Overrides config.Overrides
	Renderer  *render.Renderer
}

// New returns an engine with the built-in detectors and actions.
func New(clock detectors.Clock, overrides config.Overrides) *Engine {
	return &Engine{
		Detectors: detectors.Default(clock),
		Actions:   actions.Default(),
		Overrides: overrides,
		Renderer:  render.Default(),
	}
}

// Plan is the outcome of detection and overrides: the final context and the
// actions that will run against it.
type Plan struct {
	Repo      repo.Repo
	Context   value.Value
	Identity  string
	Override  bool
	Detectors []string
	Actions   []actions.Action
}

// ActionNames lists the planned actions in run order.
func (p Plan) ActionNames() []string {
	out := make([]string, len(p.Actions))
	for i, a := range p.Actions {
		out[i] = a.Meta().Name
	}
	return out
}

// Result summarizes a run.
type Result struct {
	Plan
	Changes  []render.Change
	Duration time.Duration
}

func enablement(kind string, metas []capability.Meta, enable, disable string, extra ...string) (*capability.Enablement, error) {
	en := capability.NewEnablement(kind, metas)
	if err := en.Only(capability.SplitList(enable)); err != nil {
		return nil, err
	}
	if err := en.Exclude(append(capability.SplitList(disable), extra...)); err != nil {
		return nil, err
	}
	return en, nil
}

func (e *Engine) progress(cfg Config, phase, name string) {
	slog.Debug("running", "phase", phase, "name", name)
	if cfg.Progress != nil {
		cfg.Progress(phase, name)
	}
}

// Detect runs the enabled detectors and returns the detected context with
// defaults filled in.
func (e *Engine) Detect(ctx context.Context, cfg Config) (value.Value, error) {
	r, err := repo.Open(cfg.Root)
	if err != nil {
		return value.Value{}, err
	}
	out, _, err := e.detect(ctx, r, cfg)
	return out, err
}

func (e *Engine) detect(ctx context.Context, r repo.Repo, cfg Config) (value.Value, []string, error) {
	en, err := enablement(detectors.Kind, e.Detectors.Metas(), cfg.EnableDetectors, cfg.DisableDetectors)
	if err != nil {
		return value.Value{}, nil, err
	}
	detected := value.EmptyObject()
	var ran []string
	for _, d := range e.Detectors.All() {
		name := d.Meta().Name
		if !en.IsEnabled(name) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return value.Value{}, nil, err
		}
		e.progress(cfg, PhaseDetection, name)
		fragment, err := d.Detect(r)
		if err != nil {
			return value.Value{}, nil, &CapabilityError{Phase: PhaseDetection, Name: name, Err: err}
		}
		if err := detected.Union(fragment); err != nil {
			return value.Value{}, nil, &CapabilityError{Phase: PhaseDetection, Name: name, Err: fmt.Errorf("combine result: %w", err)}
		}
		ran = append(ran, name)
	}
	out := DefaultContext()
	out.OverrideWith(detected)
	return out, ran, nil
}

// Identity returns "owner/name" from the context.
func Identity(ctx value.Value) (string, error) {
	owner, ok := ctx.StringAt(ctxkeys.RepoOwner)
	if !ok || owner == "" {
		return "", ErrMissingRepositoryIdentity
	}
	name, ok := ctx.StringAt(ctxkeys.RepoName)
	if !ok || name == "" {
		return "", ErrMissingRepositoryIdentity
	}
	return owner + "/" + name, nil
}

// Resolve detects the context, applies the matching override and validates
// the action selection. Nothing is written.
func (e *Engine) Resolve(ctx context.Context, cfg Config) (Plan, error) {
	r, err := repo.Open(cfg.Root)
	if err != nil {
		return Plan{}, err
	}
	if k := cfg.Context.Kind(); k != value.KindNull && k != value.KindObject {
		return Plan{}, fmt.Errorf("config context must be an object, got %s", k)
	}
	// Validate the configured action lists before any detector runs.
	if _, err := enablement(actions.Kind, e.Actions.Metas(), cfg.EnableActions, cfg.DisableActions); err != nil {
		return Plan{}, err
	}

	final, ran, err := e.detect(ctx, r, cfg)
	if err != nil {
		return Plan{}, fmt.Errorf("build context for %s: %w", r.Root, err)
	}
	id, err := Identity(final)
	if err != nil {
		return Plan{}, fmt.Errorf("%s: %w", r.Root, err)
	}
	plan := Plan{Repo: r, Identity: id, Detectors: ran}

	var excluded []string
	if ov, ok := e.Overrides.Lookup(id); ok {
		slog.Info("applying override", "repository", id, "excluded_actions", ov.ExcludedActions)
		final.OverrideWith(ov.Context)
		excluded = ov.ExcludedActions
		plan.Override = true
	}
	if !cfg.Context.IsNull() {
		final.OverrideWith(cfg.Context)
	}
	plan.Context = final

	en, err := enablement(actions.Kind, e.Actions.Metas(), cfg.EnableActions, cfg.DisableActions, excluded...)
	if err != nil {
		return Plan{}, fmt.Errorf("override for %s: %w", id, err)
	}
	for _, a := range e.Actions.All() {
		if en.IsEnabled(a.Meta().Name) {
			plan.Actions = append(plan.Actions, a)
		}
	}
	return plan, nil
}

type changeLister interface {
	Changes() []render.Change
}

// Apply runs the planned actions in order against sink. The first failure
// stops the run; files already written stay on disk.
func (e *Engine) Apply(ctx context.Context, plan Plan, sink render.Sink, cfg Config) error {
	data := actions.Data{Repo: plan.Repo, Context: plan.Context, Sink: sink, Renderer: e.Renderer}
	for _, a := range plan.Actions {
		name := a.Meta().Name
		if err := ctx.Err(); err != nil {
			return err
		}
		e.progress(cfg, PhaseAction, name)
		if err := a.Run(data); err != nil {
			return &CapabilityError{Phase: PhaseAction, Name: name, Err: err}
		}
	}
	return nil
}

// Update resolves the plan and runs it. A nil sink means a FileSink, or a
// MemorySink when cfg.DryRun is set.
func (e *Engine) Update(ctx context.Context, cfg Config, sink render.Sink) (Result, error) {
	started := time.Now()
	plan, err := e.Resolve(ctx, cfg)
	if err != nil {
		return Result{}, err
	}
	if sink == nil {
		if cfg.DryRun {
			sink = render.NewMemorySink(plan.Repo)
		} else {
			sink = render.NewFileSink(plan.Repo)
		}
	}
	res := Result{Plan: plan}
	err = e.Apply(ctx, plan, sink, cfg)
	if cl, ok := sink.(changeLister); ok {
		res.Changes = cl.Changes()
	}
	res.Duration = time.Since(started)
	if err != nil {
		return res, fmt.Errorf("run actions for %s: %w", plan.Repo.Root, err)
	}
	return res, nil
}
