// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/exeplan/exeplan/pkg/rid"
)

const (
	// ArchX86 targets 32-bit x86.
	ArchX86 Architecture = "x86"
	// ArchX64 targets 64-bit x86-64.
	ArchX64 Architecture = "x64"
	// ArchARM targets 32-bit ARM.
	ArchARM Architecture = "arm"
	// AnyCPU is architecture-neutral IL. It is both the default and the
	// fallback for unrecognized signals.
	AnyCPU Architecture = "AnyCPU"

	// ImageMSIL is reported by an architecture-neutral image.
	ImageMSIL ImageKind = "MSIL"
	// ImageX86 is reported by a 32-bit x86 image.
	ImageX86 ImageKind = "X86"
	// ImageAmd64 is reported by a 64-bit x86-64 image.
	ImageAmd64 ImageKind = "Amd64"
	// ImageARM is reported by a 32-bit ARM image.
	ImageARM ImageKind = "ARM"
)

// ErrInvalidArchitecture is the sentinel error wrapped by InvalidArchitectureError.
var ErrInvalidArchitecture = errors.New("invalid architecture")

// ridArchitectures maps the second RID segment to an architecture. arm64 is
// deliberately missing: it is never inferred.
var ridArchitectures = map[string]Architecture{
	"x86": ArchX86,
	"x64": ArchX64,
	"arm": ArchARM,
}

type (
	// Architecture is the CPU instruction-set family an executable is compiled for.
	// The zero value ("") means "not declared".
	Architecture string

	// InvalidArchitectureError is returned when an Architecture value is not recognized.
	// It wraps ErrInvalidArchitecture for errors.Is() compatibility.
	InvalidArchitectureError struct {
		Value Architecture
	}

	// ImageKind is the machine kind a produced executable reports at run time.
	ImageKind string
)

// ParseArchitecture converts a declared platform target into an Architecture.
// Matching is case-insensitive ("anycpu" and "X64" are accepted) and
// surrounding whitespace is ignored. An empty string yields the zero value
// with no error.
func ParseArchitecture(s string) (Architecture, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, a := range Architectures() {
		if strings.EqualFold(s, string(a)) {
			return a, nil
		}
	}
	return "", &InvalidArchitectureError{Value: Architecture(s)}
}

// Architectures returns every supported architecture in declaration order.
func Architectures() []Architecture {
	return []Architecture{ArchX86, ArchX64, ArchARM, AnyCPU}
}

// String returns the string representation of the Architecture.
func (a Architecture) String() string { return string(a) }

// IsDeclared reports whether an architecture was set at all.
func (a Architecture) IsDeclared() bool { return a != "" }

// IsSpecific reports whether the architecture pins a concrete instruction set,
// i.e. it is declared and not AnyCPU.
func (a Architecture) IsSpecific() bool {
	return a == ArchX86 || a == ArchX64 || a == ArchARM
}

// IsValid returns whether the Architecture is one of the defined values.
// The zero value is valid and means "not declared".
func (a Architecture) IsValid() (bool, []error) {
	switch a {
	case "", ArchX86, ArchX64, ArchARM, AnyCPU:
		return true, nil
	default:
		return false, []error{&InvalidArchitectureError{Value: a}}
	}
}

// ImageKind returns the machine kind an image built for this architecture
// reports. Undeclared architectures behave like AnyCPU.
func (a Architecture) ImageKind() ImageKind {
	switch a {
	case ArchX86:
		return ImageX86
	case ArchX64:
		return ImageAmd64
	case ArchARM:
		return ImageARM
	default:
		return ImageMSIL
	}
}

// String returns the string representation of the ImageKind.
func (k ImageKind) String() string { return string(k) }

// Error implements the error interface for InvalidArchitectureError.
func (e *InvalidArchitectureError) Error() string {
	return fmt.Sprintf("invalid architecture %q (valid: x86, x64, arm, AnyCPU)", e.Value)
}

// Unwrap returns ErrInvalidArchitecture for errors.Is() compatibility.
func (e *InvalidArchitectureError) Unwrap() error { return ErrInvalidArchitecture }

// ArchitectureFromRuntimeIdentifier returns the architecture named by the
// second dash-delimited segment of id, and whether one was recognized.
// Only "x86", "x64" and "arm" are recognized; "arm64", any other token, and
// tokens in any other position yield (AnyCPU, false).
func ArchitectureFromRuntimeIdentifier(id rid.RuntimeIdentifier) (Architecture, bool) {
	if arch, ok := ridArchitectures[id.ArchitectureToken()]; ok {
		return arch, true
	}
	return AnyCPU, false
}

// ResolveArchitecture returns the effective architecture for a build.
//
// A declared explicit architecture is returned unchanged even when it
// contradicts the runtime identifier. Otherwise the runtime identifier's
// architecture segment decides, and the absence of a recognizable signal
// degrades to AnyCPU. It never fails.
func ResolveArchitecture(explicit Architecture, id rid.RuntimeIdentifier) Architecture {
	if explicit.IsDeclared() {
		return explicit
	}
	arch, _ := ArchitectureFromRuntimeIdentifier(id)
	return arch
}

// InferRuntimeIdentifier returns the runtime identifier setting a build uses.
//
// A declared identifier is kept as is. When none is declared and the project
// uses native code, an identifier is inferred so that the native dependency
// gets a concrete architecture: "win7-x64" for an explicit x64 target,
// fallback otherwise. Without native code no identifier is inferred.
func InferRuntimeIdentifier(declared rid.Setting, explicit Architecture, usesNativeCode bool, fallback rid.RuntimeIdentifier) rid.Setting {
	if declared.IsPresent() || !usesNativeCode {
		return declared
	}
	if explicit == ArchX64 {
		return rid.Inferred("win7-x64")
	}
	return rid.Inferred(fallback)
}
