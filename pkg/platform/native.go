// SPDX-License-Identifier: MPL-2.0

package platform

import "fmt"

const (
	// NativeNotUsed means the executable has no native dependency.
	NativeNotUsed NativeOutcome = "not-used"
	// NativeLoaded means the native dependency matches the image architecture.
	NativeLoaded NativeOutcome = "loaded"
	// NativeFails means the image is AnyCPU and cannot pick an architecture-specific
	// native dependency. The build succeeds; the failure shows up at run time.
	NativeFails NativeOutcome = "fails"
)

// NativeOutcome predicts how a native dependency behaves when the produced
// executable runs.
type NativeOutcome string

// PredictNativeOutcome returns the runtime outcome for an executable built
// for arch. Undeclared architectures behave like AnyCPU.
func PredictNativeOutcome(arch Architecture, usesNativeCode bool) NativeOutcome {
	switch {
	case !usesNativeCode:
		return NativeNotUsed
	case arch.IsSpecific():
		return NativeLoaded
	default:
		return NativeFails
	}
}

// String returns the string representation of the NativeOutcome.
func (o NativeOutcome) String() string { return string(o) }

// Describe renders the outcome the way the produced program reports it,
// e.g. "Native code was used (X86)" or "Native code failed (MSIL)".
func (o NativeOutcome) Describe(kind ImageKind) string {
	switch o {
	case NativeLoaded:
		return fmt.Sprintf("Native code was used (%s)", kind)
	case NativeFails:
		return fmt.Sprintf("Native code failed (%s)", kind)
	default:
		return fmt.Sprintf("Native code was not used (%s)", kind)
	}
}
