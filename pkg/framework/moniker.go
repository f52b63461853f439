// SPDX-License-Identifier: MPL-2.0

package framework

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	// FamilyNETFramework is the desktop .NET Framework (net20 ... net48).
	FamilyNETFramework Family = ".NETFramework"
	// FamilyNETStandard is the .NET Standard surface (netstandard2.0).
	FamilyNETStandard Family = ".NETStandard"
	// FamilyNETCoreApp is .NET Core and .NET 5+ (netcoreapp3.1, net8.0).
	FamilyNETCoreApp Family = ".NETCoreApp"

	// ListSeparator separates monikers in a multi-targeting declaration.
	ListSeparator = ";"
)

var (
	// ErrInvalidMoniker is the sentinel error wrapped by InvalidMonikerError.
	ErrInvalidMoniker = errors.New("invalid target framework moniker")

	desktopMoniker  = regexp.MustCompile(`^net([1-9])([0-9])([0-9])?$`)
	standardMoniker = regexp.MustCompile(`^netstandard([0-9]+\.[0-9]+)$`)
	coreAppMoniker  = regexp.MustCompile(`^netcoreapp([0-9]+\.[0-9]+)$`)
	// net5.0 and later, optionally with an OS suffix such as net8.0-windows.
	modernMoniker = regexp.MustCompile(`^net([5-9]|[1-9][0-9])\.([0-9]+)(-[a-z0-9.]+)?$`)
)

type (
	// Moniker is a short target framework moniker such as "net46" or "net8.0".
	Moniker string

	// Family identifies the framework a moniker belongs to.
	Family string

	// InvalidMonikerError is returned when a moniker cannot be parsed.
	InvalidMonikerError struct {
		Value Moniker
	}

	// Target is a parsed moniker.
	Target struct {
		Moniker Moniker
		Family  Family
		Version *semver.Version
	}
)

// String returns the string representation of the Moniker.
func (m Moniker) String() string { return string(m) }

// IsValid returns whether the Moniker parses.
func (m Moniker) IsValid() (bool, []error) {
	if _, err := Parse(m); err != nil {
		return false, []error{err}
	}
	return true, nil
}

// Parse parses a short moniker. Matching is case-insensitive; the returned
// Target keeps the moniker in lowercase, which is also the form used as the
// output directory segment.
func Parse(m Moniker) (Target, error) {
	s := strings.ToLower(strings.TrimSpace(string(m)))

	var (
		family  Family
		version string
	)
	switch {
	case desktopMoniker.MatchString(s):
		parts := desktopMoniker.FindStringSubmatch(s)
		version = parts[1] + "." + parts[2]
		if parts[3] != "" {
			version += "." + parts[3]
		}
		family = FamilyNETFramework
	case standardMoniker.MatchString(s):
		version = standardMoniker.FindStringSubmatch(s)[1]
		family = FamilyNETStandard
	case coreAppMoniker.MatchString(s):
		version = coreAppMoniker.FindStringSubmatch(s)[1]
		family = FamilyNETCoreApp
	case modernMoniker.MatchString(s):
		parts := modernMoniker.FindStringSubmatch(s)
		version = parts[1] + "." + parts[2]
		family = FamilyNETCoreApp
	default:
		return Target{}, &InvalidMonikerError{Value: m}
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %w", &InvalidMonikerError{Value: m}, err)
	}

	return Target{Moniker: Moniker(s), Family: family, Version: v}, nil
}

// ParseList parses a ";"-separated multi-targeting declaration such as
// "net40;net45;net461". Empty entries are skipped and duplicates keep their
// first position.
func ParseList(s string) ([]Target, error) {
	var (
		targets []Target
		seen    = make(map[Moniker]bool)
	)
	for _, part := range strings.Split(s, ListSeparator) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := Parse(Moniker(part))
		if err != nil {
			return nil, err
		}
		if seen[t.Moniker] {
			continue
		}
		seen[t.Moniker] = true
		targets = append(targets, t)
	}
	if len(targets) == 0 {
		return nil, &InvalidMonikerError{Value: Moniker(s)}
	}
	return targets, nil
}

// String returns the moniker.
func (t Target) String() string { return string(t.Moniker) }

// IsDesktop reports whether the target is the .NET Framework.
func (t Target) IsDesktop() bool { return t.Family == FamilyNETFramework }

// UsesAppConfig reports whether executables for this target read an
// application configuration file (and therefore honor binding redirects).
func (t Target) UsesAppConfig() bool { return t.IsDesktop() }

// Satisfies reports whether the target's version matches constraint,
// e.g. ">= 4.5". An unparsable constraint never matches.
func (t Target) Satisfies(constraint string) bool {
	if t.Version == nil {
		return false
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false
	}
	return c.Check(t.Version)
}

// Error implements the error interface for InvalidMonikerError.
func (e *InvalidMonikerError) Error() string {
	return fmt.Sprintf("invalid target framework moniker %q (examples: net46, net461, netstandard2.0, net8.0)", e.Value)
}

// Unwrap returns ErrInvalidMoniker for errors.Is() compatibility.
func (e *InvalidMonikerError) Unwrap() error { return ErrInvalidMoniker }
