// SPDX-License-Identifier: MPL-2.0

// Package framework parses target framework monikers ("net46", "net461",
// "netstandard2.0", "net8.0") and lists the framework assemblies a desktop
// project references by default.
package framework
