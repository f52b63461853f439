// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"mvdan.cc/sh/v3/shell"

	"github.com/exeplan/exeplan/pkg/layout"
	"github.com/exeplan/exeplan/pkg/rid"
)

const (
	// SeverityOff silences a diagnostic.
	SeverityOff Severity = "off"
	// SeverityWarn reports a diagnostic without failing.
	SeverityWarn Severity = "warn"
	// SeverityError fails the plan.
	SeverityError Severity = "error"

	// LogLevelDebug logs resolver decisions.
	LogLevelDebug LogLevel = "debug"
	// LogLevelInfo logs progress.
	LogLevelInfo LogLevel = "info"
	// LogLevelWarn logs non-fatal problems only.
	LogLevelWarn LogLevel = "warn"
	// LogLevelError logs errors only.
	LogLevelError LogLevel = "error"

	// ColorSchemeAuto detects the terminal color scheme automatically.
	ColorSchemeAuto ColorScheme = "auto"
	// ColorSchemeDark forces dark color scheme.
	ColorSchemeDark ColorScheme = "dark"
	// ColorSchemeLight forces light color scheme.
	ColorSchemeLight ColorScheme = "light"
)

var (
	// ErrInvalidSeverity is returned when a Severity value is not recognized.
	ErrInvalidSeverity = errors.New("invalid severity")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidColorScheme is returned when a ColorScheme value is not recognized.
	ErrInvalidColorScheme = errors.New("invalid color scheme")
	// ErrInvalidOutputConfig is the sentinel error wrapped by InvalidOutputConfigError.
	ErrInvalidOutputConfig = errors.New("invalid output config")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// Severity controls how a diagnostic is reported.
	Severity string

	// InvalidSeverityError is returned when a Severity value is not recognized.
	InvalidSeverityError struct {
		Value Severity
	}

	// LogLevel is the minimum level written to stderr.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// ColorScheme specifies the terminal color scheme.
	ColorScheme string

	// InvalidColorSchemeError is returned when a ColorScheme value is not recognized.
	InvalidColorSchemeError struct {
		Value ColorScheme
	}

	// InvalidOutputConfigError is returned when OutputConfig has invalid fields.
	InvalidOutputConfigError struct {
		Reason string
	}

	// InvalidConfigError wraps the field errors found in a Config.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// OutputConfig describes where build and publish output goes.
	OutputConfig struct {
		// Root is the output root, before expansion (e.g. "bin" or "$OUT/bin").
		Root string `json:"root" mapstructure:"root"`
		// Configuration is the build configuration directory (e.g. "Debug").
		Configuration string `json:"configuration" mapstructure:"configuration"`
		// PublishDir is the last directory of publish output.
		PublishDir string `json:"publish_dir" mapstructure:"publish_dir"`
	}

	// RuntimeIdentifierConfig controls implicit runtime identifier inference.
	RuntimeIdentifierConfig struct {
		ImplicitDefault rid.RuntimeIdentifier `json:"implicit_default" mapstructure:"implicit_default"`
	}

	// BindingRedirectsConfig controls binding redirect generation.
	BindingRedirectsConfig struct {
		Enabled bool `json:"enabled" mapstructure:"enabled"`
	}

	// DiagnosticsConfig sets the severity of each diagnostic.
	DiagnosticsConfig struct {
		NativeAnyCPU Severity `json:"native_any_cpu" mapstructure:"native_any_cpu"`
	}

	// LogConfig controls logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// UIConfig contains user interface settings.
	UIConfig struct {
		ColorScheme ColorScheme `json:"color_scheme" mapstructure:"color_scheme"`
		Verbose     bool        `json:"verbose" mapstructure:"verbose"`
	}

	// Config holds the application configuration.
	Config struct {
		Output            OutputConfig            `json:"output" mapstructure:"output"`
		RuntimeIdentifier RuntimeIdentifierConfig `json:"runtime_identifier" mapstructure:"runtime_identifier"`
		BindingRedirects  BindingRedirectsConfig  `json:"binding_redirects" mapstructure:"binding_redirects"`
		Diagnostics       DiagnosticsConfig       `json:"diagnostics" mapstructure:"diagnostics"`
		Log               LogConfig               `json:"log" mapstructure:"log"`
		UI                UIConfig                `json:"ui" mapstructure:"ui"`

		// Source is the file the configuration was loaded from; empty when
		// only defaults and environment variables apply.
		Source string `json:"-" mapstructure:"-"`
	}
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Root:          "bin",
			Configuration: "Debug",
			PublishDir:    layout.DefaultPublishLeaf,
		},
		RuntimeIdentifier: RuntimeIdentifierConfig{
			ImplicitDefault: "win7-x86",
		},
		BindingRedirects: BindingRedirectsConfig{Enabled: true},
		Diagnostics:      DiagnosticsConfig{NativeAnyCPU: SeverityWarn},
		Log:              LogConfig{Level: LogLevelWarn},
		UI: UIConfig{
			ColorScheme: ColorSchemeAuto,
			Verbose:     false,
		},
	}
}

// String returns the string representation of the Severity.
func (s Severity) String() string { return string(s) }

// IsValid returns whether the Severity is one of off, warn, error.
func (s Severity) IsValid() (bool, []error) {
	switch s {
	case SeverityOff, SeverityWarn, SeverityError:
		return true, nil
	default:
		return false, []error{&InvalidSeverityError{Value: s}}
	}
}

// Error implements the error interface for InvalidSeverityError.
func (e *InvalidSeverityError) Error() string {
	return fmt.Sprintf("invalid severity %q (valid: off, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidSeverity for errors.Is() compatibility.
func (e *InvalidSeverityError) Unwrap() error { return ErrInvalidSeverity }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// IsValid returns whether the LogLevel is one of debug, info, warn, error.
func (l LogLevel) IsValid() (bool, []error) {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return true, nil
	default:
		return false, []error{&InvalidLogLevelError{Value: l}}
	}
}

// SlogLevel converts the level for log/slog. Unknown levels map to warn.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Error implements the error interface for InvalidLogLevelError.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// String returns the string representation of the ColorScheme.
func (c ColorScheme) String() string { return string(c) }

// IsValid returns whether the ColorScheme is one of the defined color schemes.
func (c ColorScheme) IsValid() (bool, []error) {
	switch c {
	case ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight:
		return true, nil
	default:
		return false, []error{&InvalidColorSchemeError{Value: c}}
	}
}

// GlamourStyle returns the glamour style name used to render guidance.
func (c ColorScheme) GlamourStyle() string {
	switch c {
	case ColorSchemeDark, ColorSchemeLight:
		return string(c)
	default:
		return "auto"
	}
}

// Error implements the error interface for InvalidColorSchemeError.
func (e *InvalidColorSchemeError) Error() string {
	return fmt.Sprintf("invalid color scheme %q (valid: auto, dark, light)", e.Value)
}

// Unwrap returns ErrInvalidColorScheme for errors.Is() compatibility.
func (e *InvalidColorSchemeError) Unwrap() error { return ErrInvalidColorScheme }

// IsValid returns whether the output settings can form a path.
func (c OutputConfig) IsValid() (bool, []error) {
	var errs []error
	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, &InvalidOutputConfigError{Reason: "root must be non-empty"})
	}
	if strings.ContainsAny(c.Configuration, `/\`) {
		errs = append(errs, &InvalidOutputConfigError{Reason: fmt.Sprintf("configuration %q must be a single directory name", c.Configuration)})
	}
	if strings.ContainsAny(c.PublishDir, `/\`) {
		errs = append(errs, &InvalidOutputConfigError{Reason: fmt.Sprintf("publish_dir %q must be a single directory name", c.PublishDir)})
	}
	if len(errs) > 0 {
		return false, errs
	}
	return true, nil
}

// Roots expands the output root and returns the resolver roots:
// Base is <root>/<configuration>. env resolves $VAR references; nil means
// the process environment.
func (c OutputConfig) Roots(env func(string) string) (layout.Roots, error) {
	root, err := shell.Expand(c.Root, env)
	if err != nil {
		return layout.Roots{}, fmt.Errorf("expand output.root %q: %w", c.Root, err)
	}
	if strings.TrimSpace(root) == "" {
		return layout.Roots{}, &InvalidOutputConfigError{Reason: fmt.Sprintf("root %q expands to an empty path", c.Root)}
	}
	return layout.Roots{
		Base:        filepath.ToSlash(filepath.Join(root, c.Configuration)),
		PublishLeaf: c.PublishDir,
	}, nil
}

// Error implements the error interface for InvalidOutputConfigError.
func (e *InvalidOutputConfigError) Error() string {
	return "invalid output config: " + e.Reason
}

// Unwrap returns ErrInvalidOutputConfig for errors.Is() compatibility.
func (e *InvalidOutputConfigError) Unwrap() error { return ErrInvalidOutputConfig }

// IsValid returns whether the Config has valid fields. Booleans need no
// validation; the implicit runtime identifier may be empty, which disables
// inference.
func (c Config) IsValid() (bool, []error) {
	var errs []error
	if valid, fieldErrs := c.Output.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Diagnostics.NativeAnyCPU.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.Log.Level.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if valid, fieldErrs := c.UI.ColorScheme.IsValid(); !valid {
		errs = append(errs, fieldErrs...)
	}
	if len(errs) > 0 {
		return false, []error{&InvalidConfigError{FieldErrors: errs}}
	}
	return true, nil
}

// Error implements the error interface for InvalidConfigError.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, fe := range e.FieldErrors {
		msgs = append(msgs, fe.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors for errors.Is() compatibility.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}
