// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"log/slog"
	"testing"
)

func TestSeverity_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value Severity
		want  bool
	}{
		{SeverityOff, true},
		{SeverityWarn, true},
		{SeverityError, true},
		{"", false},
		{"WARN", false},
		{"loud", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()
			isValid, errs := tt.value.IsValid()
			if isValid != tt.want {
				t.Errorf("Severity(%q).IsValid() = %v, want %v", tt.value, isValid, tt.want)
			}
			if !tt.want && (len(errs) == 0 || !errors.Is(errs[0], ErrInvalidSeverity)) {
				t.Errorf("Severity(%q).IsValid() errors = %v, want ErrInvalidSeverity", tt.value, errs)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value LogLevel
		valid bool
		slog  slog.Level
	}{
		{LogLevelDebug, true, slog.LevelDebug},
		{LogLevelInfo, true, slog.LevelInfo},
		{LogLevelWarn, true, slog.LevelWarn},
		{LogLevelError, true, slog.LevelError},
		{"trace", false, slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(string(tt.value), func(t *testing.T) {
			t.Parallel()
			if ok, _ := tt.value.IsValid(); ok != tt.valid {
				t.Errorf("LogLevel(%q).IsValid() = %v, want %v", tt.value, ok, tt.valid)
			}
			if got := tt.value.SlogLevel(); got != tt.slog {
				t.Errorf("LogLevel(%q).SlogLevel() = %v, want %v", tt.value, got, tt.slog)
			}
		})
	}
}

func TestColorScheme(t *testing.T) {
	t.Parallel()

	for _, cs := range []ColorScheme{ColorSchemeAuto, ColorSchemeDark, ColorSchemeLight} {
		if ok, errs := cs.IsValid(); !ok {
			t.Errorf("ColorScheme(%q).IsValid() = false: %v", cs, errs)
		}
	}
	if _, errs := ColorScheme("neon").IsValid(); len(errs) == 0 || !errors.Is(errs[0], ErrInvalidColorScheme) {
		t.Errorf("ColorScheme(neon) errors = %v, want ErrInvalidColorScheme", errs)
	}
	if got := ColorSchemeLight.GlamourStyle(); got != "light" {
		t.Errorf("GlamourStyle() = %q, want light", got)
	}
	if got := ColorSchemeAuto.GlamourStyle(); got != "auto" {
		t.Errorf("GlamourStyle() = %q, want auto", got)
	}
}

func TestOutputConfig_Roots(t *testing.T) {
	t.Parallel()

	env := func(name string) string {
		if name == "OUT" {
			return "/srv/build"
		}
		return ""
	}

	tests := []struct {
		name    string
		cfg     OutputConfig
		want    string
		leaf    string
		wantErr bool
	}{
		{"defaults", OutputConfig{Root: "bin", Configuration: "Debug", PublishDir: "publish"}, "bin/Debug", "publish", false},
		{"expanded", OutputConfig{Root: "$OUT/bin", Configuration: "Release"}, "/srv/build/bin/Release", "", false},
		{"braced", OutputConfig{Root: "${OUT}", Configuration: "Debug"}, "/srv/build/Debug", "", false},
		{"expands to empty", OutputConfig{Root: "$MISSING", Configuration: "Debug"}, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			roots, err := tt.cfg.Roots(env)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOutputConfig) {
					t.Errorf("Roots() error = %v, want ErrInvalidOutputConfig", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Roots() unexpected error: %v", err)
			}
			if roots.Base != tt.want || roots.PublishLeaf != tt.leaf {
				t.Errorf("Roots() = %+v, want base %q leaf %q", roots, tt.want, tt.leaf)
			}
		})
	}
}

func TestConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Output.Root = " "
	cfg.Log.Level = "loud"

	valid, errs := cfg.IsValid()
	if valid {
		t.Fatal("IsValid() = true, want false")
	}
	err := errs[0]
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, ErrInvalidOutputConfig) || !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("error should wrap every field error, got: %v", err)
	}
}
