// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// ActionableError carries the failed operation, the resource involved and
// remediation hints. The issue catalog holds Markdown explanations for the
// non-fatal conditions reported while building a sprite, rendered for the
// terminal with glamour.
package issue
