// SPDX-License-Identifier: MPL-2.0

package project

import (
	"fmt"

	"github.com/exeplan/exeplan/pkg/framework"
	"github.com/exeplan/exeplan/pkg/layout"
	"github.com/exeplan/exeplan/pkg/platform"
	"github.com/exeplan/exeplan/pkg/rid"
)

// BuildConfiguration is the immutable input of the resolvers for one target
// framework and one operation.
type BuildConfiguration struct {
	AssemblyName                 string
	OutputType                   OutputType
	Target                       framework.Target
	ExplicitArchitecture         platform.Architecture
	RuntimeIdentifier            rid.Setting
	AppendRuntimeIdentifier      bool
	UsesNativeCode               bool
	AutoGenerateBindingRedirects bool
	Operation                    layout.Operation
}

// Configurations returns one BuildConfiguration per target framework, in
// declaration order.
func (p *Project) Configurations(op layout.Operation) ([]BuildConfiguration, error) {
	if ok, errs := op.IsValid(); !ok {
		return nil, errs[0]
	}
	targets, err := p.Targets()
	if err != nil {
		return nil, err
	}
	arch, err := platform.ParseArchitecture(p.PlatformTarget)
	if err != nil {
		return nil, err
	}

	configs := make([]BuildConfiguration, 0, len(targets))
	for _, t := range targets {
		configs = append(configs, BuildConfiguration{
			AssemblyName:                 p.Name,
			OutputType:                   p.Output(),
			Target:                       t,
			ExplicitArchitecture:         arch,
			RuntimeIdentifier:            rid.Explicit(rid.RuntimeIdentifier(p.RuntimeIdentifier)),
			AppendRuntimeIdentifier:      p.AppendsRuntimeIdentifier(),
			UsesNativeCode:               p.UsesNativeCode(),
			AutoGenerateBindingRedirects: p.GeneratesBindingRedirects(),
			Operation:                    op,
		})
	}
	return configs, nil
}

// WithRuntimeIdentifier returns a copy using setting as its runtime identifier.
func (c BuildConfiguration) WithRuntimeIdentifier(setting rid.Setting) BuildConfiguration {
	c.RuntimeIdentifier = setting
	return c
}

// Architecture resolves the effective architecture of the configuration.
func (c BuildConfiguration) Architecture() platform.Architecture {
	return platform.ResolveArchitecture(c.ExplicitArchitecture, c.RuntimeIdentifier.Identifier())
}

// OutputPath resolves the output directory of the configuration under roots.
func (c BuildConfiguration) OutputPath(roots layout.Roots) layout.OutputPath {
	return layout.Resolve(roots, c.Target.Moniker, c.RuntimeIdentifier, c.AppendRuntimeIdentifier, c.Operation)
}

// IsExecutable reports whether the configuration produces an .exe.
func (c BuildConfiguration) IsExecutable() bool { return c.OutputType != OutputLibrary }

// NeedsAppConfig reports whether the produced executable reads an
// application configuration file with binding redirects.
func (c BuildConfiguration) NeedsAppConfig() bool {
	return c.IsExecutable() && c.AutoGenerateBindingRedirects && c.Target.UsesAppConfig()
}

// PrimaryArtifact returns the file name of the main output, e.g. "App.exe".
func (c BuildConfiguration) PrimaryArtifact() string {
	if c.IsExecutable() {
		return c.AssemblyName + ".exe"
	}
	return c.AssemblyName + ".dll"
}

// String renders the configuration as "App (net46, build, explicit(win7-x86))".
func (c BuildConfiguration) String() string {
	return fmt.Sprintf("%s (%s, %s, %s)", c.AssemblyName, c.Target, c.Operation, c.RuntimeIdentifier)
}
