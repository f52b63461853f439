// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/exeplan/exeplan/internal/config"
	"github.com/exeplan/exeplan/internal/dag"
	"github.com/exeplan/exeplan/internal/issue"
	"github.com/exeplan/exeplan/pkg/framework"
	"github.com/exeplan/exeplan/pkg/layout"
	"github.com/exeplan/exeplan/pkg/platform"
	"github.com/exeplan/exeplan/pkg/project"
	"github.com/exeplan/exeplan/pkg/redirect"
)

// ErrNativeAnyCPU is returned when an AnyCPU executable uses native code and
// the native_any_cpu diagnostic is configured as an error.
var ErrNativeAnyCPU = errors.New("native code in an AnyCPU executable")

type (
	// Engine plans builds with a fixed configuration. It holds no mutable
	// state and is safe for concurrent use.
	Engine struct {
		cfg    *config.Config
		roots  layout.Roots
		logger *slog.Logger
	}

	// Option customizes an Engine.
	Option func(*Engine)
)

// WithLogger sets the logger for resolver decisions and diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithRoots overrides the output roots derived from the configuration.
func WithRoots(roots layout.Roots) Option {
	return func(e *Engine) { e.roots = roots }
}

// New creates an Engine. A nil cfg means DefaultConfig.
func New(cfg *config.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	roots, err := cfg.Output.Roots(nil)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:    cfg,
		roots:  roots,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Roots returns the output roots plans are composed on.
func (e *Engine) Roots() layout.Roots { return e.roots }

// PlanProject plans every target framework of p for op. A non-empty only
// restricts planning to that framework, which must be targeted by p.
func (e *Engine) PlanProject(ctx context.Context, p *project.Project, op layout.Operation, only framework.Moniker) ([]*Plan, error) {
	configs, err := p.Configurations(op)
	if err != nil {
		return nil, err
	}

	if only != "" {
		configs, err = selectFramework(configs, only)
		if err != nil {
			return nil, err
		}
	}

	source := ProjectClosure(p)
	plans := make([]*Plan, 0, len(configs))
	for _, c := range configs {
		plan, err := e.Plan(ctx, c, source)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// Plan resolves one build configuration. source may be nil when the
// caller has no reference closure; planning then fails only if binding
// redirects are actually required.
func (e *Engine) Plan(ctx context.Context, c project.BuildConfiguration, source ClosureSource) (*Plan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	inferred := platform.InferRuntimeIdentifier(c.RuntimeIdentifier, c.ExplicitArchitecture, c.UsesNativeCode, e.cfg.RuntimeIdentifier.ImplicitDefault)
	if inferred.IsInferred() && !c.RuntimeIdentifier.IsPresent() {
		e.logger.Debug("inferred runtime identifier", "framework", c.Target.Moniker, "rid", inferred.Identifier())
	}
	c = c.WithRuntimeIdentifier(inferred)

	arch := c.Architecture()
	out := c.OutputPath(e.roots)
	native := platform.PredictNativeOutcome(arch, c.UsesNativeCode)

	plan := &Plan{
		AssemblyName:      c.AssemblyName,
		Framework:         c.Target.Moniker,
		Operation:         c.Operation,
		RuntimeIdentifier: string(c.RuntimeIdentifier.Identifier()),
		RIDProvenance:     c.RuntimeIdentifier.Provenance().String(),
		Architecture:      arch,
		ImageKind:         arch.ImageKind(),
		OutputDir:         out.Slash(),
		Native:            native,
		DefaultReferences: framework.DefaultReferences(c.Target),
		Configuration:     c,
		Output:            out,
	}
	e.logger.Debug("resolved build",
		"framework", plan.Framework,
		"operation", plan.Operation,
		"rid", c.RuntimeIdentifier,
		"architecture", arch,
		"output", plan.OutputDir,
	)

	if native == platform.NativeFails {
		if err := e.nativeAnyCPU(plan); err != nil {
			return nil, err
		}
	}

	if c.NeedsAppConfig() && e.cfg.BindingRedirects.Enabled {
		redirects, err := e.planRedirects(ctx, c, source)
		if err != nil {
			return nil, err
		}
		plan.Redirects = redirects
	}

	plan.Artifacts = []string{c.PrimaryArtifact()}
	if plan.NeedsAppConfig() {
		plan.Artifacts = append(plan.Artifacts, plan.AppConfigName())
	}
	return plan, nil
}

func (e *Engine) nativeAnyCPU(plan *Plan) error {
	severity := e.cfg.Diagnostics.NativeAnyCPU
	msg := fmt.Sprintf("%s uses native code but builds as %s; native code fails to load at run time", plan.AssemblyName, plan.Architecture)

	switch severity {
	case config.SeverityOff:
		return nil
	case config.SeverityError:
		return issue.NewErrorContext().
			WithOperation("plan build").
			WithResource(plan.Configuration.String()).
			WithSuggestions(
				"Set platform_target to x86 or x64",
				"Or declare a runtime_identifier such as win7-x86",
			).
			WithIssue(issue.NativeAnyCPUId).
			Wrap(fmt.Errorf("%w: %s", ErrNativeAnyCPU, msg)).
			BuildError()
	default:
		e.logger.Warn(msg, "framework", plan.Framework, "code", CodeNativeAnyCPU)
		plan.Diagnostics = append(plan.Diagnostics, Diagnostic{Code: CodeNativeAnyCPU, Severity: severity, Message: msg})
		return nil
	}
}

func (e *Engine) planRedirects(ctx context.Context, c project.BuildConfiguration, source ClosureSource) ([]redirect.BindingRedirect, error) {
	var (
		closure []redirect.AssemblyReference
		err     error
	)
	if source == nil {
		err = errors.New("no closure source configured")
	} else {
		closure, err = source.Closure(ctx, c)
	}
	if err != nil {
		id := issue.ClosureUnavailableId
		var cycle *dag.CycleError
		if errors.As(err, &cycle) {
			id = issue.ReferenceCycleId
		}
		return nil, issue.NewErrorContext().
			WithOperation("plan binding redirects").
			WithResource(c.String()).
			WithSuggestion("Fix the packages listed in the project file").
			WithSuggestion("Or set auto_generate_binding_redirects: false").
			WithIssue(id).
			Wrap(fmt.Errorf("%w: %w", ErrClosureUnavailable, err)).
			BuildError()
	}

	redirects := redirect.Plan(closure)
	if len(redirects) > 0 {
		e.logger.Debug("planned binding redirects", "framework", c.Target.Moniker, "count", len(redirects))
	}
	return redirects, nil
}

func selectFramework(configs []project.BuildConfiguration, only framework.Moniker) ([]project.BuildConfiguration, error) {
	want, err := framework.Parse(only)
	if err != nil {
		return nil, err
	}
	targeted := make([]string, 0, len(configs))
	for _, c := range configs {
		if c.Target.Moniker == want.Moniker {
			return []project.BuildConfiguration{c}, nil
		}
		targeted = append(targeted, string(c.Target.Moniker))
	}
	return nil, issue.NewErrorContext().
		WithOperation("select target framework").
		WithResource(string(only)).
		WithSuggestion("The project targets: " + strings.Join(targeted, ", ")).
		WithIssue(issue.InvalidMonikerId).
		Wrap(fmt.Errorf("%w: %s is not targeted by the project", framework.ErrInvalidMoniker, want.Moniker)).
		BuildError()
}
