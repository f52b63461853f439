// SPDX-License-Identifier: MPL-2.0

// Package engine composes the architecture, output layout, and binding
// redirect resolvers into a per-framework build plan.
//
// For each BuildConfiguration the engine infers an implicit runtime
// identifier, resolves the architecture and output directory independently,
// predicts whether native code loads, and, for .NET Framework executables,
// asks a ClosureSource for the reference closure and plans binding
// redirects. The Writer then materializes the application configuration
// file when redirects exist.
package engine
