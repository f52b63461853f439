// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"

	"github.com/exeplan/exeplan/pkg/project"
	"github.com/exeplan/exeplan/pkg/redirect"
)

// ErrClosureUnavailable is returned when binding redirects are required
// but the reference closure cannot be obtained.
var ErrClosureUnavailable = errors.New("reference closure unavailable")

type (
	// ClosureSource provides the resolved reference closure of a build.
	ClosureSource interface {
		Closure(ctx context.Context, cfg project.BuildConfiguration) ([]redirect.AssemblyReference, error)
	}

	// ClosureFunc adapts a function to ClosureSource.
	ClosureFunc func(ctx context.Context, cfg project.BuildConfiguration) ([]redirect.AssemblyReference, error)

	projectClosure struct {
		p *project.Project
	}
)

// Closure calls f.
func (f ClosureFunc) Closure(ctx context.Context, cfg project.BuildConfiguration) ([]redirect.AssemblyReference, error) {
	return f(ctx, cfg)
}

// ProjectClosure returns a ClosureSource backed by the packages declared in p.
func ProjectClosure(p *project.Project) ClosureSource {
	return projectClosure{p: p}
}

func (s projectClosure) Closure(ctx context.Context, _ project.BuildConfiguration) ([]redirect.AssemblyReference, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.p.Closure()
}
