// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"testing"
)

func TestIsWindowsReservedName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"con", true},
		{"CON", true},
		{"Con", true},
		{"com9", true},
		{"LPT1", true},
		{"NUL.exe", true},
		{"aux.exe.config", true},
		{"DesktopMinusRid", false},
		{"confile", false},
		{"COM10", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := IsWindowsReservedName(tt.input); got != tt.expected {
				t.Errorf("IsWindowsReservedName(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}

	if len(WindowsReservedNames) != 22 {
		t.Errorf("WindowsReservedNames has %d entries, want 22", len(WindowsReservedNames))
	}
}

func TestValidateAssemblyName(t *testing.T) {
	t.Parallel()

	valid := []string{"DesktopMinusRid", "My.App", "app_1"}
	for _, name := range valid {
		if err := ValidateAssemblyName(name); err != nil {
			t.Errorf("ValidateAssemblyName(%q) = %v, want nil", name, err)
		}
	}

	invalid := []string{"", "   ", "CON", "nul", "bin/app", `a\b`, "what?"}
	for _, name := range invalid {
		err := ValidateAssemblyName(name)
		if !errors.Is(err, ErrInvalidAssemblyName) {
			t.Errorf("ValidateAssemblyName(%q) = %v, want ErrInvalidAssemblyName", name, err)
		}
	}
}

func TestPredictNativeOutcome(t *testing.T) {
	t.Parallel()
	if got := PredictNativeOutcome(ArchX64, false); got != NativeNotUsed {
		t.Errorf("got %q, want not-used", got)
	}
	if got := PredictNativeOutcome(ArchARM, true); got != NativeLoaded {
		t.Errorf("got %q, want loaded", got)
	}
	if got := PredictNativeOutcome("", true); got != NativeFails {
		t.Errorf("got %q, want fails", got)
	}
}
