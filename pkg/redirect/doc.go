// SPDX-License-Identifier: MPL-2.0

// Package redirect plans assembly binding redirects for a resolved reference
// closure and renders them as an application configuration file.
//
// Versions are compared as four-component integer tuples
// (major, minor, build, revision), never as strings, so 10.0 sorts after 9.0.
package redirect
