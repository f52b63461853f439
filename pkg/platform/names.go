// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"errors"
	"fmt"
	"strings"
)

// OS name constants for runtime.GOOS comparisons.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// ErrInvalidAssemblyName is the sentinel error wrapped by InvalidAssemblyNameError.
var ErrInvalidAssemblyName = errors.New("invalid assembly name")

// WindowsReservedNames are device names Windows refuses as file names,
// whatever the extension. An assembly named "CON" cannot be written as CON.exe.
var WindowsReservedNames = map[string]bool{
	"CON": true, "PRN": true, "AUX": true, "NUL": true,
	"COM1": true, "COM2": true, "COM3": true, "COM4": true,
	"COM5": true, "COM6": true, "COM7": true, "COM8": true, "COM9": true,
	"LPT1": true, "LPT2": true, "LPT3": true, "LPT4": true,
	"LPT5": true, "LPT6": true, "LPT7": true, "LPT8": true, "LPT9": true,
}

// InvalidAssemblyNameError is returned when an assembly name cannot be used
// as an output file name.
type InvalidAssemblyNameError struct {
	Value  string
	Reason string
}

// IsWindowsReservedName reports whether name, with any extension stripped,
// is a Windows reserved device name. Comparison is case-insensitive.
func IsWindowsReservedName(name string) bool {
	upper := strings.ToUpper(name)
	if idx := strings.IndexByte(upper, '.'); idx != -1 {
		upper = upper[:idx]
	}
	return WindowsReservedNames[upper]
}

// ValidateAssemblyName checks that name can become `<name>.exe` or
// `<name>.dll` on every supported host.
func ValidateAssemblyName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return &InvalidAssemblyNameError{Value: name, Reason: "must be non-empty"}
	case strings.ContainsAny(name, `/\:*?"<>|`):
		return &InvalidAssemblyNameError{Value: name, Reason: "must not contain path separators or wildcard characters"}
	case IsWindowsReservedName(name):
		return &InvalidAssemblyNameError{Value: name, Reason: "is a Windows reserved device name"}
	}
	return nil
}

// Error implements the error interface for InvalidAssemblyNameError.
func (e *InvalidAssemblyNameError) Error() string {
	return fmt.Sprintf("invalid assembly name %q: %s", e.Value, e.Reason)
}

// Unwrap returns ErrInvalidAssemblyName for errors.Is() compatibility.
func (e *InvalidAssemblyNameError) Unwrap() error { return ErrInvalidAssemblyName }
