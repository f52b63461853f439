// SPDX-License-Identifier: MPL-2.0

package redirect

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// MaxComponent is the largest value a version component may take.
const MaxComponent = 65535

// ErrInvalidVersion is the sentinel error wrapped by InvalidVersionError.
var ErrInvalidVersion = errors.New("invalid assembly version")

type (
	// Version is a four-component assembly version.
	Version struct {
		Major    int
		Minor    int
		Build    int
		Revision int
	}

	// InvalidVersionError is returned when a version string cannot be parsed.
	InvalidVersionError struct {
		Value  string
		Reason string
	}
)

// V is shorthand for building a Version from its components.
func V(major, minor, build, revision int) Version {
	return Version{Major: major, Minor: minor, Build: build, Revision: revision}
}

// ParseVersion parses "1", "1.0", "1.0.0" or "1.0.0.0". Missing trailing
// components are zero. Each component must be a decimal in [0, 65535].
func ParseVersion(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, &InvalidVersionError{Value: s, Reason: "must be non-empty"}
	}
	parts := strings.Split(s, ".")
	if len(parts) > 4 {
		return Version{}, &InvalidVersionError{Value: s, Reason: "has more than four components"}
	}

	var comps [4]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || strings.HasPrefix(part, "+") || strings.HasPrefix(part, "-") {
			return Version{}, &InvalidVersionError{Value: s, Reason: fmt.Sprintf("component %q is not a number", part)}
		}
		if n > MaxComponent {
			return Version{}, &InvalidVersionError{Value: s, Reason: fmt.Sprintf("component %d exceeds %d", n, MaxComponent)}
		}
		comps[i] = n
	}
	return V(comps[0], comps[1], comps[2], comps[3]), nil
}

// MustParseVersion is like ParseVersion but panics on error. Intended for
// tests and package-level literals.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Compare returns -1, 0 or +1 comparing v to o component by component.
func (v Version) Compare(o Version) int {
	a := [4]int{v.Major, v.Minor, v.Build, v.Revision}
	b := [4]int{o.Major, o.Minor, o.Build, o.Revision}
	for i := range a {
		switch {
		case a[i] < b[i]:
			return -1
		case a[i] > b[i]:
			return 1
		}
	}
	return 0
}

// Less reports whether v sorts before o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// String renders all four components, e.g. "2.0.0.0".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", v.Major, v.Minor, v.Build, v.Revision)
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Error implements the error interface for InvalidVersionError.
func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid assembly version %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidVersion for errors.Is() compatibility.
func (e *InvalidVersionError) Unwrap() error { return ErrInvalidVersion }
