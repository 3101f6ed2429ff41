// SPDX-License-Identifier: MPL-2.0

// Package inject places the sprite into HTML documents, right before the
// closing body tag, so that <use href="#icon-name"/> references resolve.
package inject
