// SPDX-License-Identifier: MPL-2.0

package project

import (
	"testing"

	"github.com/exeplan/exeplan/pkg/framework"
	"github.com/exeplan/exeplan/pkg/layout"
	"github.com/exeplan/exeplan/pkg/platform"
	"github.com/exeplan/exeplan/pkg/rid"
)

func boolPtr(b bool) *bool { return &b }

func TestConfigurations_MultiTarget(t *testing.T) {
	t.Parallel()

	p := &Project{
		Name:              "App",
		TargetFrameworks:  "net40;net45;;net461;net45",
		PlatformTarget:    "X64",
		RuntimeIdentifier: "win7-x86",
	}
	configs, err := p.Configurations(layout.OperationBuild)
	if err != nil {
		t.Fatalf("Configurations() unexpected error: %v", err)
	}

	want := []framework.Moniker{"net40", "net45", "net461"}
	if len(configs) != len(want) {
		t.Fatalf("got %d configurations, want %d", len(configs), len(want))
	}
	for i, c := range configs {
		if c.Target.Moniker != want[i] {
			t.Errorf("configs[%d].Target = %q, want %q", i, c.Target.Moniker, want[i])
		}
		if c.ExplicitArchitecture != platform.ArchX64 {
			t.Errorf("ExplicitArchitecture = %q, want x64", c.ExplicitArchitecture)
		}
		if !c.RuntimeIdentifier.IsExplicit() {
			t.Errorf("RuntimeIdentifier = %s, want explicit", c.RuntimeIdentifier)
		}
		// explicit platform target wins over the RID
		if got := c.Architecture(); got != platform.ArchX64 {
			t.Errorf("Architecture() = %q, want x64", got)
		}
	}
}

func TestConfigurations_EmptyRuntimeIdentifierIsAbsent(t *testing.T) {
	t.Parallel()

	p := &Project{Name: "App", TargetFramework: "net46", RuntimeIdentifier: "   "}
	configs, err := p.Configurations(layout.OperationPublish)
	if err != nil {
		t.Fatal(err)
	}
	c := configs[0]
	if c.RuntimeIdentifier.IsPresent() {
		t.Errorf("RuntimeIdentifier = %s, want absent", c.RuntimeIdentifier)
	}
	if got := c.Architecture(); got != platform.AnyCPU {
		t.Errorf("Architecture() = %q, want AnyCPU", got)
	}
	if got := c.OutputPath(layout.Roots{Base: "bin/Debug", PublishLeaf: "publish"}).Slash(); got != "bin/Debug/net46/publish" {
		t.Errorf("OutputPath() = %q", got)
	}
}

func TestConfigurations_InvalidOperation(t *testing.T) {
	t.Parallel()

	p := &Project{Name: "App", TargetFramework: "net46"}
	if _, err := p.Configurations(layout.Operation("clean")); err == nil {
		t.Error("expected error for unknown operation")
	}
}

func TestBuildConfiguration_OutputPath(t *testing.T) {
	t.Parallel()

	roots := layout.Roots{Base: "bin/Debug", PublishLeaf: "publish"}
	net46 := framework.Target{Moniker: "net46", Family: framework.FamilyNETFramework}

	tests := []struct {
		name    string
		setting rid.Setting
		append  bool
		op      layout.Operation
		want    string
	}{
		{"explicit build appends", rid.Explicit("win7-x86"), true, layout.OperationBuild, "bin/Debug/net46/win7-x86"},
		{"explicit build flag off", rid.Explicit("win7-x86"), false, layout.OperationBuild, "bin/Debug/net46"},
		{"inferred build never appends", rid.Inferred("win7-x86"), true, layout.OperationBuild, "bin/Debug/net46"},
		{"inferred publish appends", rid.Inferred("win7-x86"), false, layout.OperationPublish, "bin/Debug/net46/win7-x86/publish"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := BuildConfiguration{Target: net46, RuntimeIdentifier: tt.setting, AppendRuntimeIdentifier: tt.append, Operation: tt.op}
			if got := c.OutputPath(roots).Slash(); got != tt.want {
				t.Errorf("OutputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildConfiguration_NeedsAppConfig(t *testing.T) {
	t.Parallel()

	net46, _ := framework.Parse("net46")
	net8, _ := framework.Parse("net8.0")

	tests := []struct {
		name string
		cfg  BuildConfiguration
		want bool
	}{
		{"desktop exe", BuildConfiguration{OutputType: OutputExe, Target: net46, AutoGenerateBindingRedirects: true}, true},
		{"redirects disabled", BuildConfiguration{OutputType: OutputExe, Target: net46}, false},
		{"library", BuildConfiguration{OutputType: OutputLibrary, Target: net46, AutoGenerateBindingRedirects: true}, false},
		{"modern framework", BuildConfiguration{OutputType: OutputExe, Target: net8, AutoGenerateBindingRedirects: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.cfg.NeedsAppConfig(); got != tt.want {
				t.Errorf("NeedsAppConfig() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBuildConfiguration_PrimaryArtifact(t *testing.T) {
	t.Parallel()

	if got := (BuildConfiguration{AssemblyName: "App", OutputType: OutputExe}).PrimaryArtifact(); got != "App.exe" {
		t.Errorf("PrimaryArtifact() = %q, want App.exe", got)
	}
	if got := (BuildConfiguration{AssemblyName: "Lib", OutputType: OutputLibrary}).PrimaryArtifact(); got != "Lib.dll" {
		t.Errorf("PrimaryArtifact() = %q, want Lib.dll", got)
	}
}

func TestProject_BoolDefaults(t *testing.T) {
	t.Parallel()

	p := &Project{AppendRuntimeIdentifierToOutputPath: boolPtr(false), UseNativeCode: boolPtr(true)}
	if p.AppendsRuntimeIdentifier() || !p.UsesNativeCode() || !p.GeneratesBindingRedirects() {
		t.Errorf("unexpected accessor values for %+v", p)
	}
}
