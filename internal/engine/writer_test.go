// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"context"
	"testing"

	"github.com/spf13/afero"

	"github.com/exeplan/exeplan/pkg/layout"
	"github.com/exeplan/exeplan/pkg/project"
	"github.com/exeplan/exeplan/pkg/redirect"
)

func desktopPlan(t *testing.T) *Plan {
	t.Helper()
	p := conflictingProject()
	p.TargetFrameworks = "net45"
	return planOne(t, newEngine(t, nil), p, layout.OperationBuild)
}

func TestWriter_WriteAppConfig(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "/src/app", nil)
	plan := desktopPlan(t)

	res, err := w.WriteAppConfig(context.Background(), plan)
	if err != nil {
		t.Fatalf("WriteAppConfig() unexpected error: %v", err)
	}
	if res.Status != WriteCreated || res.Path != "/src/app/bin/Debug/net45/App.exe.config" {
		t.Errorf("WriteAppConfig() = %+v", res)
	}

	data, err := afero.ReadFile(fs, res.Path)
	if err != nil {
		t.Fatalf("app config not written: %v", err)
	}
	got, err := redirect.ParseAppConfig(data)
	if err != nil || len(got) != 1 || got[0].AssemblyName != "Json" {
		t.Errorf("written app config = %v, %v", got, err)
	}

	res, err = w.WriteAppConfig(context.Background(), plan)
	if err != nil || res.Status != WriteUnchanged {
		t.Errorf("second WriteAppConfig() = %+v, %v; want unchanged", res, err)
	}
}

func TestWriter_UpdatesDifferentRedirects(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "/src/app", nil)
	plan := desktopPlan(t)

	stale, err := redirect.RenderAppConfig([]redirect.BindingRedirect{{
		AssemblyName: "Json",
		OldVersion:   redirect.VersionRange{Min: redirect.V(1, 0, 0, 0), Max: redirect.V(1, 0, 0, 0)},
		NewVersion:   redirect.V(2, 0, 0, 0),
	}})
	if err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fs, "/src/app/bin/Debug/net45/App.exe.config", stale, 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := w.WriteAppConfig(context.Background(), plan)
	if err != nil || res.Status != WriteUpdated {
		t.Errorf("WriteAppConfig() = %+v, %v; want updated", res, err)
	}
}

func TestWriter_SkipsWithoutRedirects(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	w := NewWriter(fs, "", nil)
	p := &project.Project{Name: "App", TargetFramework: "net46"}
	plan := planOne(t, newEngine(t, nil), p, layout.OperationBuild)

	res, err := w.WriteAppConfig(context.Background(), plan)
	if err != nil || res.Status != WriteSkipped {
		t.Errorf("WriteAppConfig() = %+v, %v; want skipped", res, err)
	}
	if exists, _ := afero.Exists(fs, res.Path); exists {
		t.Error("no file should be written without redirects")
	}
}

func TestWriter_ReadOnlyFs(t *testing.T) {
	t.Parallel()

	w := NewWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/src", nil)
	if _, err := w.WriteAppConfig(context.Background(), desktopPlan(t)); err == nil {
		t.Error("WriteAppConfig() on a read-only filesystem should fail")
	}
}
