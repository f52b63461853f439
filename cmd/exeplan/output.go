// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	formatText outputFormat = "text"
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"

	// fieldWidth aligns values in key/value listings.
	fieldWidth = 14
)

// errInvalidFormat is returned for an unknown --format value.
var errInvalidFormat = errors.New("invalid output format")

// outputFormat selects how a command renders its result.
type outputFormat string

func parseOutputFormat(s string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case formatText, formatJSON, formatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("%w %q (valid: text, json, yaml)", errInvalidFormat, s)
	}
}

// writeStructured encodes v as indented JSON or YAML.
func writeStructured(w io.Writer, format outputFormat, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w %q for structured output", errInvalidFormat, format)
	}
}

// writeField prints one aligned "key  value" line.
func writeField(w io.Writer, indent, key, value string) {
	pad := max(fieldWidth-len(key), 1)
	fmt.Fprintf(w, "%s%s%s%s\n", indent, KeyStyle.Render(key), strings.Repeat(" ", pad), value)
}

// orNone renders an empty value as a muted placeholder.
func orNone(s string) string {
	if s == "" {
		return SubtitleStyle.Render("(none)")
	}
	return s
}
