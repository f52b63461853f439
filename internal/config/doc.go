// SPDX-License-Identifier: MPL-2.0

// Package config handles application configuration using Viper with CUE as the file format.
//
// Configuration is loaded from ~/.config/exeplan/config.cue (or the XDG equivalent on Linux,
// ~/Library/Application Support/exeplan/config.cue on macOS, %APPDATA%\exeplan\config.cue
// on Windows), falling back to ./config.cue. The file is validated against an embedded CUE
// schema (config_schema.cue) and merged on top of built-in defaults; EXEPLAN_<SECTION>_<KEY>
// environment variables override both. Settings cover output roots, implicit runtime
// identifier inference, binding redirect generation, diagnostic severities, logging, and UI.
package config
