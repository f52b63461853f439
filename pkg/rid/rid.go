// SPDX-License-Identifier: MPL-2.0

package rid

import (
	"errors"
	"fmt"
	"strings"
)

// Separator delimits the segments of a runtime identifier.
const Separator = "-"

// ErrInvalidProvenance is the sentinel error wrapped by InvalidProvenanceError.
var ErrInvalidProvenance = errors.New("invalid runtime identifier provenance")

type (
	// RuntimeIdentifier is an opaque `<os>-<arch>[-<qualifier>]` token such as
	// "win7-x86" or "win10-arm64-aot". No validation is performed beyond
	// segment extraction.
	RuntimeIdentifier string

	// Provenance records where a runtime identifier value came from.
	Provenance int

	// InvalidProvenanceError is returned when a Provenance value is not one of
	// the defined constants.
	InvalidProvenanceError struct {
		Value Provenance
	}

	// Setting is a runtime identifier tagged with its provenance. The zero value
	// is Absent.
	//
	// The build output layout treats declared and inferred identifiers
	// differently, so callers must keep the provenance next to the value
	// instead of collapsing both into a bare string.
	Setting struct {
		value      RuntimeIdentifier
		provenance Provenance
	}
)

const (
	// ProvenanceAbsent means no runtime identifier is known.
	ProvenanceAbsent Provenance = iota
	// ProvenanceExplicit means the identifier was declared by the caller or project.
	ProvenanceExplicit
	// ProvenanceInferred means the toolchain derived the identifier from ambient context.
	ProvenanceInferred
)

// Absent is the Setting carrying no runtime identifier.
var Absent = Setting{}

// String returns the string representation of the RuntimeIdentifier.
func (r RuntimeIdentifier) String() string { return string(r) }

// IsEmpty reports whether the identifier is empty or whitespace-only.
func (r RuntimeIdentifier) IsEmpty() bool {
	return strings.TrimSpace(string(r)) == ""
}

// Segments splits the identifier on the dash separator. An empty identifier
// has no segments.
func (r RuntimeIdentifier) Segments() []string {
	if r.IsEmpty() {
		return nil
	}
	return strings.Split(string(r), Separator)
}

// Segment returns the segment at index i, or "" when the identifier has fewer segments.
func (r RuntimeIdentifier) Segment(i int) string {
	segs := r.Segments()
	if i < 0 || i >= len(segs) {
		return ""
	}
	return segs[i]
}

// OS returns the first segment (e.g. "win7").
func (r RuntimeIdentifier) OS() string { return r.Segment(0) }

// ArchitectureToken returns the second segment, which by convention names the
// CPU architecture (e.g. "x86" in "win8-x86-aot"). Anything after it is a
// qualifier and is ignored.
func (r RuntimeIdentifier) ArchitectureToken() string { return r.Segment(1) }

// Qualifier returns the remaining segments after the architecture joined back
// with the separator, or "" when there are none.
func (r RuntimeIdentifier) Qualifier() string {
	segs := r.Segments()
	if len(segs) <= 2 {
		return ""
	}
	return strings.Join(segs[2:], Separator)
}

// Explicit returns a Setting for an identifier declared by the caller.
// An empty or whitespace-only identifier is normalized to Absent.
func Explicit(r RuntimeIdentifier) Setting {
	if r.IsEmpty() {
		return Absent
	}
	return Setting{value: RuntimeIdentifier(strings.TrimSpace(string(r))), provenance: ProvenanceExplicit}
}

// Inferred returns a Setting for an identifier derived by the toolchain.
// An empty or whitespace-only identifier is normalized to Absent.
func Inferred(r RuntimeIdentifier) Setting {
	if r.IsEmpty() {
		return Absent
	}
	return Setting{value: RuntimeIdentifier(strings.TrimSpace(string(r))), provenance: ProvenanceInferred}
}

// Value returns the identifier and whether one is present.
func (s Setting) Value() (RuntimeIdentifier, bool) {
	return s.value, s.provenance != ProvenanceAbsent
}

// Identifier returns the identifier, or "" when Absent.
func (s Setting) Identifier() RuntimeIdentifier { return s.value }

// Provenance returns where the identifier came from.
func (s Setting) Provenance() Provenance { return s.provenance }

// IsPresent reports whether the setting carries an identifier.
func (s Setting) IsPresent() bool { return s.provenance != ProvenanceAbsent }

// IsExplicit reports whether the identifier was declared by the caller.
func (s Setting) IsExplicit() bool { return s.provenance == ProvenanceExplicit }

// IsInferred reports whether the identifier was derived by the toolchain.
func (s Setting) IsInferred() bool { return s.provenance == ProvenanceInferred }

// String renders the setting as `explicit(win7-x86)`, `inferred(win7-x86)` or `absent`.
func (s Setting) String() string {
	if !s.IsPresent() {
		return s.provenance.String()
	}
	return fmt.Sprintf("%s(%s)", s.provenance, s.value)
}

// String returns the lowercase name of the provenance.
func (p Provenance) String() string {
	switch p {
	case ProvenanceAbsent:
		return "absent"
	case ProvenanceExplicit:
		return "explicit"
	case ProvenanceInferred:
		return "inferred"
	default:
		return fmt.Sprintf("Provenance(%d)", int(p))
	}
}

// IsValid returns whether the Provenance is one of the defined constants.
func (p Provenance) IsValid() (bool, []error) {
	switch p {
	case ProvenanceAbsent, ProvenanceExplicit, ProvenanceInferred:
		return true, nil
	default:
		return false, []error{&InvalidProvenanceError{Value: p}}
	}
}

// Error implements the error interface for InvalidProvenanceError.
func (e *InvalidProvenanceError) Error() string {
	return fmt.Sprintf("invalid runtime identifier provenance %d (valid: absent, explicit, inferred)", int(e.Value))
}

// Unwrap returns ErrInvalidProvenance for errors.Is() compatibility.
func (e *InvalidProvenanceError) Unwrap() error { return ErrInvalidProvenance }
