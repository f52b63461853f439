// SPDX-License-Identifier: MPL-2.0

package engine

import (
	"fmt"

	"github.com/exeplan/exeplan/internal/config"
	"github.com/exeplan/exeplan/pkg/framework"
	"github.com/exeplan/exeplan/pkg/layout"
	"github.com/exeplan/exeplan/pkg/platform"
	"github.com/exeplan/exeplan/pkg/project"
	"github.com/exeplan/exeplan/pkg/redirect"
)

// CodeNativeAnyCPU identifies the AnyCPU plus native code diagnostic.
const CodeNativeAnyCPU = "native-anycpu"

type (
	// Diagnostic is a non-fatal finding attached to a plan.
	Diagnostic struct {
		Code     string          `json:"code" yaml:"code"`
		Severity config.Severity `json:"severity" yaml:"severity"`
		Message  string          `json:"message" yaml:"message"`
	}

	// Plan is the resolved outcome for one target framework and operation.
	Plan struct {
		AssemblyName      string                     `json:"assembly_name" yaml:"assembly_name"`
		Framework         framework.Moniker          `json:"framework" yaml:"framework"`
		Operation         layout.Operation           `json:"operation" yaml:"operation"`
		RuntimeIdentifier string                     `json:"runtime_identifier,omitempty" yaml:"runtime_identifier,omitempty"`
		RIDProvenance     string                     `json:"runtime_identifier_provenance" yaml:"runtime_identifier_provenance"`
		Architecture      platform.Architecture      `json:"architecture" yaml:"architecture"`
		ImageKind         platform.ImageKind         `json:"image_kind" yaml:"image_kind"`
		OutputDir         string                     `json:"output_dir" yaml:"output_dir"`
		Native            platform.NativeOutcome     `json:"native" yaml:"native"`
		DefaultReferences []string                   `json:"default_references,omitempty" yaml:"default_references,omitempty"`
		Redirects         []redirect.BindingRedirect `json:"redirects,omitempty" yaml:"redirects,omitempty"`
		Artifacts         []string                   `json:"artifacts" yaml:"artifacts"`
		Diagnostics       []Diagnostic               `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`

		// Configuration is the input the plan was computed from, after
		// runtime identifier inference.
		Configuration project.BuildConfiguration `json:"-" yaml:"-"`
		// Output is the structured form of OutputDir.
		Output layout.OutputPath `json:"-" yaml:"-"`
	}
)

// NeedsAppConfig reports whether the plan produces <Name>.exe.config.
func (p *Plan) NeedsAppConfig() bool {
	return len(p.Redirects) > 0
}

// AppConfigName returns the application configuration file name.
func (p *Plan) AppConfigName() string {
	return redirect.AppConfigFileName(p.AssemblyName)
}

// NativeSummary renders the native outcome, e.g. "Native code was used (X86)".
func (p *Plan) NativeSummary() string {
	return p.Native.Describe(p.ImageKind)
}

// String renders a one-line summary.
func (p *Plan) String() string {
	return fmt.Sprintf("%s %s %s -> %s [%s]", p.AssemblyName, p.Framework, p.Operation, p.OutputDir, p.Architecture)
}
