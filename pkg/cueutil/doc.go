// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates user files against embedded CUE schemas.
//
// Every file format backed by CUE (the tool configuration and project files)
// goes through the same steps: compile the embedded schema, compile the user
// bytes, unify them with a schema definition, validate, and decode. Errors
// are reported as `<file>: <json.path>: <message>`.
package cueutil
