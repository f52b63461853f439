// SPDX-License-Identifier: MPL-2.0

package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/exeplan/exeplan/pkg/framework"
	"github.com/exeplan/exeplan/pkg/platform"
	"github.com/exeplan/exeplan/pkg/redirect"
)

const (
	// OutputExe produces an executable (<name>.exe).
	OutputExe OutputType = "exe"
	// OutputLibrary produces a class library (<name>.dll).
	OutputLibrary OutputType = "library"
)

// ErrInvalidProject is the sentinel error wrapped by InvalidProjectError.
var ErrInvalidProject = errors.New("invalid project")

type (
	// OutputType is the kind of assembly a project produces.
	OutputType string

	// InvalidProjectError describes one problem with a project declaration.
	InvalidProjectError struct {
		Field  string
		Reason string
	}

	// Dependency is a package reference declared by another package.
	Dependency struct {
		Name    string `json:"name" toml:"name" yaml:"name"`
		Version string `json:"version" toml:"version" yaml:"version"`
	}

	// Package is a directly referenced package and the packages it pulls in.
	Package struct {
		Name           string       `json:"name" toml:"name" yaml:"name"`
		Version        string       `json:"version" toml:"version" yaml:"version"`
		PublicKeyToken string       `json:"public_key_token,omitempty" toml:"public_key_token,omitempty" yaml:"public_key_token,omitempty"`
		Culture        string       `json:"culture,omitempty" toml:"culture,omitempty" yaml:"culture,omitempty"`
		Dependencies   []Dependency `json:"dependencies,omitempty" toml:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	}

	// Project is a parsed project declaration. Boolean properties are
	// pointers so that formats without schema defaults (TOML, YAML) can tell
	// "unset" from "false"; use the accessor methods to read them.
	Project struct {
		Name                                string     `json:"name" toml:"name" yaml:"name"`
		OutputType                          OutputType `json:"output_type,omitempty" toml:"output_type,omitempty" yaml:"output_type,omitempty"`
		TargetFramework                     string     `json:"target_framework,omitempty" toml:"target_framework,omitempty" yaml:"target_framework,omitempty"`
		TargetFrameworks                    string     `json:"target_frameworks,omitempty" toml:"target_frameworks,omitempty" yaml:"target_frameworks,omitempty"`
		PlatformTarget                      string     `json:"platform_target,omitempty" toml:"platform_target,omitempty" yaml:"platform_target,omitempty"`
		RuntimeIdentifier                   string     `json:"runtime_identifier,omitempty" toml:"runtime_identifier,omitempty" yaml:"runtime_identifier,omitempty"`
		AppendRuntimeIdentifierToOutputPath *bool      `json:"append_runtime_identifier_to_output_path,omitempty" toml:"append_runtime_identifier_to_output_path,omitempty" yaml:"append_runtime_identifier_to_output_path,omitempty"`
		UseNativeCode                       *bool      `json:"use_native_code,omitempty" toml:"use_native_code,omitempty" yaml:"use_native_code,omitempty"`
		AutoGenerateBindingRedirects        *bool      `json:"auto_generate_binding_redirects,omitempty" toml:"auto_generate_binding_redirects,omitempty" yaml:"auto_generate_binding_redirects,omitempty"`
		Packages                            []Package  `json:"packages,omitempty" toml:"packages,omitempty" yaml:"packages,omitempty"`

		// FilePath is the file the project was loaded from, if any.
		FilePath string `json:"-" toml:"-" yaml:"-"`
	}
)

// String returns the string representation of the OutputType.
func (o OutputType) String() string { return string(o) }

// IsValid returns whether the OutputType is exe or library. The zero value
// is valid and means exe.
func (o OutputType) IsValid() (bool, []error) {
	switch o {
	case "", OutputExe, OutputLibrary:
		return true, nil
	default:
		return false, []error{&InvalidProjectError{Field: "output_type", Reason: fmt.Sprintf("%q is not exe or library", string(o))}}
	}
}

// Error implements the error interface for InvalidProjectError.
func (e *InvalidProjectError) Error() string {
	return fmt.Sprintf("invalid project: %s %s", e.Field, e.Reason)
}

// Unwrap returns ErrInvalidProject for errors.Is() compatibility.
func (e *InvalidProjectError) Unwrap() error { return ErrInvalidProject }

// Output returns the declared output type, defaulting to exe.
func (p *Project) Output() OutputType {
	if p.OutputType == "" {
		return OutputExe
	}
	return p.OutputType
}

// IsExecutable reports whether the project produces an .exe.
func (p *Project) IsExecutable() bool { return p.Output() == OutputExe }

// AppendsRuntimeIdentifier returns append_runtime_identifier_to_output_path (default true).
func (p *Project) AppendsRuntimeIdentifier() bool { return boolOr(p.AppendRuntimeIdentifierToOutputPath, true) }

// UsesNativeCode returns use_native_code (default false).
func (p *Project) UsesNativeCode() bool { return boolOr(p.UseNativeCode, false) }

// GeneratesBindingRedirects returns auto_generate_binding_redirects (default true).
func (p *Project) GeneratesBindingRedirects() bool { return boolOr(p.AutoGenerateBindingRedirects, true) }

// Targets returns the parsed target frameworks. target_frameworks takes
// precedence over target_framework when both are set.
func (p *Project) Targets() ([]framework.Target, error) {
	switch {
	case strings.TrimSpace(p.TargetFrameworks) != "":
		return framework.ParseList(p.TargetFrameworks)
	case strings.TrimSpace(p.TargetFramework) != "":
		t, err := framework.Parse(framework.Moniker(p.TargetFramework))
		if err != nil {
			return nil, err
		}
		return []framework.Target{t}, nil
	default:
		return nil, &InvalidProjectError{Field: "target_framework", Reason: "is required (or target_frameworks)"}
	}
}

// Validate checks the declaration and returns every problem found, joined.
func (p *Project) Validate() error {
	var errs []error

	if err := platform.ValidateAssemblyName(p.Name); err != nil {
		errs = append(errs, err)
	}
	if ok, oErrs := p.OutputType.IsValid(); !ok {
		errs = append(errs, oErrs...)
	}
	if _, err := p.Targets(); err != nil {
		errs = append(errs, err)
	}
	if _, err := platform.ParseArchitecture(p.PlatformTarget); err != nil {
		errs = append(errs, err)
	}

	for i, pkg := range p.Packages {
		field := fmt.Sprintf("packages[%d]", i)
		if strings.TrimSpace(pkg.Name) == "" {
			errs = append(errs, &InvalidProjectError{Field: field + ".name", Reason: "must be non-empty"})
		}
		if _, err := redirect.ParseVersion(pkg.Version); err != nil {
			errs = append(errs, fmt.Errorf("%s.version: %w", field, err))
		}
		for j, dep := range pkg.Dependencies {
			depField := fmt.Sprintf("%s.dependencies[%d]", field, j)
			if strings.TrimSpace(dep.Name) == "" {
				errs = append(errs, &InvalidProjectError{Field: depField + ".name", Reason: "must be non-empty"})
			}
			if _, err := redirect.ParseVersion(dep.Version); err != nil {
				errs = append(errs, fmt.Errorf("%s.version: %w", depField, err))
			}
		}
	}

	return errors.Join(errs...)
}

func boolOr(b *bool, def bool) bool {
	if b == nil {
		return def
	}
	return *b
}
