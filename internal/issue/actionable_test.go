// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableError_Error(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  *ActionableError
		want string
	}{
		{"operation only", &ActionableError{Operation: "load config"}, "failed to load config"},
		{"with resource", &ActionableError{Operation: "load project", Resource: "./exeplan.cue"}, "failed to load project: ./exeplan.cue"},
		{
			"with cause",
			&ActionableError{Operation: "plan binding redirects", Resource: "App (net46)", Cause: errors.New("cycle")},
			"failed to plan binding redirects: App (net46): cycle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestActionableError_ErrorsIs(t *testing.T) {
	t.Parallel()

	cause := errors.New("specific error")
	wrapped := &ActionableError{Operation: "test", Cause: cause}
	if !errors.Is(wrapped, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestActionableError_Format(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *ActionableError
		verbose  bool
		contains []string
		excludes []string
	}{
		{
			name: "suggestions",
			err: &ActionableError{
				Operation:   "load project",
				Resource:    "./exeplan.cue",
				Suggestions: []string{"Run 'exeplan config show'", "Check file permissions"},
			},
			contains: []string{"failed to load project", "./exeplan.cue", "• Run 'exeplan config show'", "• Check file permissions"},
		},
		{
			name:     "no error chain when not verbose",
			err:      &ActionableError{Operation: "parse config", Cause: errors.New("syntax error")},
			contains: []string{"failed to parse config: syntax error"},
			excludes: []string{"Error chain:"},
		},
		{
			name: "nested error chain when verbose",
			err: &ActionableError{
				Operation: "plan",
				Cause:     &ActionableError{Operation: "resolve closure", Cause: errors.New("cycle")},
			},
			verbose:  true,
			contains: []string{"Error chain:", "1. failed to resolve closure: cycle", "2. cycle"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := tt.err.Format(tt.verbose)
			for _, s := range tt.contains {
				if !strings.Contains(got, s) {
					t.Errorf("Format() missing %q\ngot:\n%s", s, got)
				}
			}
			for _, s := range tt.excludes {
				if strings.Contains(got, s) {
					t.Errorf("Format() should not contain %q\ngot:\n%s", s, got)
				}
			}
		})
	}
}

func TestErrorContext_Build(t *testing.T) {
	t.Parallel()

	if got := NewErrorContext().WithResource("x").Build(); got != nil {
		t.Errorf("Build() without operation = %v, want nil", got)
	}
	if err := NewErrorContext().BuildError(); err != nil {
		t.Errorf("BuildError() without operation = %v, want nil interface", err)
	}

	cause := errors.New("parse error")
	ae := NewErrorContext().
		WithOperation("load config").
		WithResource("/etc/exeplan/config.cue").
		WithSuggestion("Check syntax").
		WithSuggestions("Verify permissions", "Run 'exeplan config show'").
		WithIssue(ConfigLoadFailedId).
		Wrap(cause).
		Build()

	if ae.Operation != "load config" || ae.Resource != "/etc/exeplan/config.cue" {
		t.Errorf("unexpected error context: %+v", ae)
	}
	if len(ae.Suggestions) != 3 {
		t.Errorf("Suggestions = %v, want 3", ae.Suggestions)
	}
	if !errors.Is(ae, cause) {
		t.Error("Build() should keep the cause")
	}
	if g := ae.Guidance(); g == nil || g.Id() != ConfigLoadFailedId {
		t.Errorf("Guidance() = %v, want ConfigLoadFailedId", g)
	}
}

func TestActionableError_GuidanceNone(t *testing.T) {
	t.Parallel()

	if g := WrapWithOperation(errors.New("x"), "plan").Guidance(); g != nil {
		t.Errorf("Guidance() = %v, want nil", g)
	}
}

func TestWrapHelpers(t *testing.T) {
	t.Parallel()

	if WrapWithOperation(nil, "op") != nil {
		t.Error("WrapWithOperation(nil) should be nil")
	}
	if WrapWithContext(nil, "op", "res") != nil {
		t.Error("WrapWithContext(nil) should be nil")
	}
	err := WrapWithContext(errors.New("boom"), "write app config", "bin/App.exe.config")
	if got := err.Error(); got != "failed to write app config: bin/App.exe.config: boom" {
		t.Errorf("WrapWithContext().Error() = %q", got)
	}
}
