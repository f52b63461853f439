// SPDX-License-Identifier: MPL-2.0

// Package rid models runtime identifiers (RIDs) such as "win7-x86" and the
// provenance of a RID value.
//
// A RID is tokenized on "-" only; the package never searches for substrings.
// The Setting type keeps declared (Explicit) and toolchain-derived (Inferred)
// identifiers apart because output layout rules depend on the difference.
package rid
