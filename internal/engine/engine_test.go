// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/exeplan/exeplan/internal/config"
	"github.com/exeplan/exeplan/internal/issue"
	"github.com/exeplan/exeplan/pkg/framework"
	"github.com/exeplan/exeplan/pkg/layout"
	"github.com/exeplan/exeplan/pkg/platform"
	"github.com/exeplan/exeplan/pkg/project"
	"github.com/exeplan/exeplan/pkg/redirect"
)

func boolPtr(b bool) *bool { return &b }

func newEngine(t *testing.T, mutate func(*config.Config)) *Engine {
	t.Helper()
	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	e, err := New(cfg)
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	return e
}

func planOne(t *testing.T, e *Engine, p *project.Project, op layout.Operation) *Plan {
	t.Helper()
	plans, err := e.PlanProject(context.Background(), p, op, "")
	if err != nil {
		t.Fatalf("PlanProject() unexpected error: %v", err)
	}
	if len(plans) != 1 {
		t.Fatalf("PlanProject() returned %d plans, want 1", len(plans))
	}
	return plans[0]
}

func TestPlan_NativeMatrix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		platform    string
		rid         string
		native      bool
		wantArch    platform.Architecture
		wantNative  platform.NativeOutcome
		wantSummary string
		wantRID     string
	}{
		{"defaults", "", "", false, platform.AnyCPU, platform.NativeNotUsed, "Native code was not used (MSIL)", ""},
		{"defaults native", "", "", true, platform.ArchX86, platform.NativeLoaded, "Native code was used (X86)", "win7-x86"},
		{"anycpu native", "AnyCPU", "", true, platform.AnyCPU, platform.NativeFails, "Native code failed (MSIL)", "win7-x86"},
		{"x64 native", "x64", "", true, platform.ArchX64, platform.NativeLoaded, "Native code was used (Amd64)", "win7-x64"},
		{"x86 rid", "", "win7-x86", false, platform.ArchX86, platform.NativeNotUsed, "Native code was not used (X86)", "win7-x86"},
		{"arm64 rid", "", "win10-arm64", true, platform.AnyCPU, platform.NativeFails, "Native code failed (MSIL)", "win10-arm64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newEngine(t, nil)
			plan := planOne(t, e, &project.Project{
				Name:              "App",
				TargetFramework:   "net46",
				PlatformTarget:    tt.platform,
				RuntimeIdentifier: tt.rid,
				UseNativeCode:     boolPtr(tt.native),
			}, layout.OperationBuild)

			if plan.Architecture != tt.wantArch {
				t.Errorf("Architecture = %q, want %q", plan.Architecture, tt.wantArch)
			}
			if plan.Native != tt.wantNative {
				t.Errorf("Native = %q, want %q", plan.Native, tt.wantNative)
			}
			if got := plan.NativeSummary(); got != tt.wantSummary {
				t.Errorf("NativeSummary() = %q, want %q", got, tt.wantSummary)
			}
			if plan.RuntimeIdentifier != tt.wantRID {
				t.Errorf("RuntimeIdentifier = %q, want %q", plan.RuntimeIdentifier, tt.wantRID)
			}
		})
	}
}

func TestPlan_InferredRuntimeIdentifierScopesOnlyPublish(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil)
	p := &project.Project{Name: "App", TargetFramework: "net46", UseNativeCode: boolPtr(true)}

	build := planOne(t, e, p, layout.OperationBuild)
	if build.OutputDir != "bin/Debug/net46" {
		t.Errorf("build OutputDir = %q, want bin/Debug/net46", build.OutputDir)
	}
	if build.RIDProvenance != "inferred" {
		t.Errorf("RIDProvenance = %q, want inferred", build.RIDProvenance)
	}

	publish := planOne(t, e, p, layout.OperationPublish)
	if publish.OutputDir != "bin/Debug/net46/win7-x86/publish" {
		t.Errorf("publish OutputDir = %q, want bin/Debug/net46/win7-x86/publish", publish.OutputDir)
	}
}

func TestPlan_OutputLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rid    string
		append bool
		op     layout.Operation
		want   string
	}{
		{"no rid build", "", true, layout.OperationBuild, "bin/Debug/net46"},
		{"no rid publish", "", true, layout.OperationPublish, "bin/Debug/net46/publish"},
		{"explicit append build", "win7-x86", true, layout.OperationBuild, "bin/Debug/net46/win7-x86"},
		{"explicit no append build", "win7-x86", false, layout.OperationBuild, "bin/Debug/net46"},
		{"explicit no append publish", "win7-x86", false, layout.OperationPublish, "bin/Debug/net46/win7-x86/publish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			e := newEngine(t, nil)
			plan := planOne(t, e, &project.Project{
				Name:                                "App",
				TargetFramework:                     "net46",
				RuntimeIdentifier:                   tt.rid,
				AppendRuntimeIdentifierToOutputPath: boolPtr(tt.append),
			}, tt.op)
			if plan.OutputDir != tt.want {
				t.Errorf("OutputDir = %q, want %q", plan.OutputDir, tt.want)
			}
		})
	}
}

func TestPlan_ConfiguredRoots(t *testing.T) {
	t.Parallel()

	e := newEngine(t, func(c *config.Config) {
		c.Output.Root = "out"
		c.Output.Configuration = "Release"
		c.Output.PublishDir = ""
	})
	plan := planOne(t, e, &project.Project{Name: "App", TargetFramework: "net46", RuntimeIdentifier: "win7-x64"}, layout.OperationPublish)
	if plan.OutputDir != "out/Release/net46/win7-x64" {
		t.Errorf("OutputDir = %q, want out/Release/net46/win7-x64", plan.OutputDir)
	}
}

func TestPlan_WithRoots(t *testing.T) {
	t.Parallel()

	e, err := New(nil, WithRoots(layout.Roots{Base: "artifacts/bin", PublishLeaf: "pub"}))
	if err != nil {
		t.Fatalf("New() unexpected error: %v", err)
	}
	if got := e.Roots().Base; got != "artifacts/bin" {
		t.Errorf("Roots().Base = %q, want artifacts/bin", got)
	}
	plan := planOne(t, e, &project.Project{Name: "App", TargetFramework: "net46"}, layout.OperationPublish)
	if plan.OutputDir != "artifacts/bin/net46/pub" {
		t.Errorf("OutputDir = %q, want artifacts/bin/net46/pub", plan.OutputDir)
	}
}

func TestPlan_NativeAnyCPUSeverity(t *testing.T) {
	t.Parallel()

	p := &project.Project{Name: "App", TargetFramework: "net46", PlatformTarget: "AnyCPU", UseNativeCode: boolPtr(true)}

	warn := planOne(t, newEngine(t, nil), p, layout.OperationBuild)
	if len(warn.Diagnostics) != 1 || warn.Diagnostics[0].Code != CodeNativeAnyCPU || warn.Diagnostics[0].Severity != config.SeverityWarn {
		t.Errorf("Diagnostics = %+v, want one native-anycpu warning", warn.Diagnostics)
	}

	off := planOne(t, newEngine(t, func(c *config.Config) { c.Diagnostics.NativeAnyCPU = config.SeverityOff }), p, layout.OperationBuild)
	if len(off.Diagnostics) != 0 {
		t.Errorf("Diagnostics = %+v, want none", off.Diagnostics)
	}

	e := newEngine(t, func(c *config.Config) { c.Diagnostics.NativeAnyCPU = config.SeverityError })
	_, err := e.PlanProject(context.Background(), p, layout.OperationBuild, "")
	if !errors.Is(err, ErrNativeAnyCPU) {
		t.Fatalf("PlanProject() error = %v, want ErrNativeAnyCPU", err)
	}
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue != issue.NativeAnyCPUId {
		t.Errorf("error should carry NativeAnyCPUId, got %v", err)
	}
}

func conflictingProject() *project.Project {
	return &project.Project{
		Name:             "App",
		TargetFrameworks: "net45;net8.0",
		Packages: []project.Package{
			{Name: "Web", Version: "3.0", Dependencies: []project.Dependency{{Name: "Json", Version: "6.0"}}},
			{Name: "Json", Version: "9.0"},
		},
	}
}

func TestPlan_Redirects(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil)
	plans, err := e.PlanProject(context.Background(), conflictingProject(), layout.OperationBuild, "")
	if err != nil {
		t.Fatalf("PlanProject() unexpected error: %v", err)
	}
	if len(plans) != 2 {
		t.Fatalf("got %d plans, want 2", len(plans))
	}

	desktop, modern := plans[0], plans[1]
	want := []redirect.BindingRedirect{{
		AssemblyName: "Json",
		OldVersion:   redirect.VersionRange{Min: redirect.V(6, 0, 0, 0), Max: redirect.V(6, 0, 0, 0)},
		NewVersion:   redirect.V(9, 0, 0, 0),
	}}
	if diff := cmp.Diff(want, desktop.Redirects); diff != "" {
		t.Errorf("net45 redirects mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"App.exe", "App.exe.config"}, desktop.Artifacts); diff != "" {
		t.Errorf("net45 artifacts mismatch (-want +got):\n%s", diff)
	}
	if len(desktop.DefaultReferences) == 0 {
		t.Error("net45 should list default framework references")
	}

	if len(modern.Redirects) != 0 {
		t.Errorf("net8.0 redirects = %v, want none", modern.Redirects)
	}
	if diff := cmp.Diff([]string{"App.exe"}, modern.Artifacts); diff != "" {
		t.Errorf("net8.0 artifacts mismatch (-want +got):\n%s", diff)
	}
}

func TestPlan_RedirectsDisabled(t *testing.T) {
	t.Parallel()

	p := conflictingProject()
	p.TargetFrameworks = "net45"

	global := planOne(t, newEngine(t, func(c *config.Config) { c.BindingRedirects.Enabled = false }), p, layout.OperationBuild)
	if len(global.Redirects) != 0 {
		t.Errorf("globally disabled: redirects = %v", global.Redirects)
	}

	p.AutoGenerateBindingRedirects = boolPtr(false)
	local := planOne(t, newEngine(t, nil), p, layout.OperationBuild)
	if len(local.Redirects) != 0 {
		t.Errorf("project disabled: redirects = %v", local.Redirects)
	}

	p.AutoGenerateBindingRedirects = nil
	p.OutputType = project.OutputLibrary
	lib := planOne(t, newEngine(t, nil), p, layout.OperationBuild)
	if len(lib.Redirects) != 0 || lib.Artifacts[0] != "App.dll" {
		t.Errorf("library plan = %+v, want no redirects and App.dll", lib)
	}
}

func TestPlan_NoConflictNoAppConfig(t *testing.T) {
	t.Parallel()

	p := &project.Project{Name: "App", TargetFramework: "net461", Packages: []project.Package{{Name: "Json", Version: "9.0"}}}
	plan := planOne(t, newEngine(t, nil), p, layout.OperationBuild)
	if plan.NeedsAppConfig() || len(plan.Artifacts) != 1 {
		t.Errorf("plan = %+v, want no app config", plan)
	}
}

func TestPlan_ClosureUnavailable(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil)
	p := &project.Project{Name: "App", TargetFramework: "net46"}
	configs, err := p.Configurations(layout.OperationBuild)
	if err != nil {
		t.Fatal(err)
	}

	_, err = e.Plan(context.Background(), configs[0], nil)
	if !errors.Is(err, ErrClosureUnavailable) {
		t.Errorf("Plan(nil source) error = %v, want ErrClosureUnavailable", err)
	}

	failing := ClosureFunc(func(context.Context, project.BuildConfiguration) ([]redirect.AssemblyReference, error) {
		return nil, errors.New("restore not run")
	})
	_, err = e.Plan(context.Background(), configs[0], failing)
	var ae *issue.ActionableError
	if !errors.Is(err, ErrClosureUnavailable) || !errors.As(err, &ae) || ae.Issue != issue.ClosureUnavailableId {
		t.Errorf("Plan(failing source) error = %v, want actionable ErrClosureUnavailable", err)
	}

	// A closure is never consulted when redirects are not needed.
	modern, _ := framework.Parse("net8.0")
	c := configs[0]
	c.Target = modern
	if _, err := e.Plan(context.Background(), c, nil); err != nil {
		t.Errorf("Plan(net8.0, nil source) unexpected error: %v", err)
	}
}

func TestPlan_ReferenceCycle(t *testing.T) {
	t.Parallel()

	p := &project.Project{
		Name:            "App",
		TargetFramework: "net46",
		Packages: []project.Package{
			{Name: "A", Version: "1.0", Dependencies: []project.Dependency{{Name: "B", Version: "1.0"}}},
			{Name: "B", Version: "1.0", Dependencies: []project.Dependency{{Name: "A", Version: "1.0"}}},
		},
	}
	_, err := newEngine(t, nil).PlanProject(context.Background(), p, layout.OperationBuild, "")
	var ae *issue.ActionableError
	if !errors.As(err, &ae) || ae.Issue != issue.ReferenceCycleId {
		t.Errorf("PlanProject() error = %v, want ReferenceCycleId", err)
	}
}

func TestPlanProject_FrameworkFilter(t *testing.T) {
	t.Parallel()

	e := newEngine(t, nil)
	p := &project.Project{Name: "App", TargetFrameworks: "net40;net45;net461"}

	plans, err := e.PlanProject(context.Background(), p, layout.OperationBuild, "NET45")
	if err != nil {
		t.Fatalf("PlanProject() unexpected error: %v", err)
	}
	if len(plans) != 1 || plans[0].Framework != "net45" {
		t.Errorf("PlanProject(net45) = %v", plans)
	}

	_, err = e.PlanProject(context.Background(), p, layout.OperationBuild, "net48")
	if !errors.Is(err, framework.ErrInvalidMoniker) {
		t.Errorf("PlanProject(net48) error = %v, want ErrInvalidMoniker", err)
	}
}

func TestPlan_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newEngine(t, nil).PlanProject(ctx, &project.Project{Name: "App", TargetFramework: "net46"}, layout.OperationBuild, "")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("PlanProject() error = %v, want context.Canceled", err)
	}
}

func TestNew_InvalidRoot(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output.Root = "$EXEPLAN_TEST_UNSET_ROOT_VARIABLE"
	if _, err := New(cfg); !errors.Is(err, config.ErrInvalidOutputConfig) {
		t.Errorf("New() error = %v, want ErrInvalidOutputConfig", err)
	}
}
