// SPDX-License-Identifier: MPL-2.0

// Package project loads desktop executable project declarations and turns
// them into per-framework build configurations.
//
// A project file is written in CUE (validated against the embedded #Project
// schema), TOML, or YAML. All three formats share the same keys. Each target
// framework declared by the project yields one immutable BuildConfiguration,
// and the declared packages yield the resolved reference closure consumed by
// the binding redirect planner.
package project
