// SPDX-License-Identifier: MPL-2.0

// Package platform resolves the CPU architecture (platform target) an
// executable is built for.
//
// Resolution precedence is: an explicit platform target, then the
// architecture segment of the runtime identifier, then AnyCPU. The package
// also predicts how a native dependency will load for a resolved
// architecture and validates assembly names against Windows reserved
// device names.
package platform
