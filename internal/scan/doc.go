// SPDX-License-Identifier: MPL-2.0

// Package scan enumerates the SVG icon files of a single directory.
//
// Only the top level of the directory is read. Results are ordered
// lexicographically by file name, which is the order os.ReadDir returns;
// callers relying on a platform listing order get a stable order instead.
package scan
