// SPDX-License-Identifier: MPL-2.0

// Package layout resolves build and publish output directories.
//
// An output directory is the output root, the target framework, and, under
// the rules of AppendsRuntimeIdentifier, the runtime identifier. Publish
// output additionally ends with a publish leaf directory.
package layout
