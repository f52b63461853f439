// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors and a catalog of Markdown guidance.
//
// An ActionableError says what operation failed, on which resource, and what
// the user can do about it. Errors may point at a catalog Issue, whose
// Markdown guidance is rendered with glamour when the CLI runs verbosely.
package issue
