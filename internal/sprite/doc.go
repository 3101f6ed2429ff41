// SPDX-License-Identifier: MPL-2.0

// Package sprite assembles icon symbols into one hidden SVG sprite document.
//
// Builder runs the whole pipeline for a directory on every call: scan,
// normalize, extract, assemble. Nothing is cached between calls. Missing
// directories, empty directories and icons that fail to normalize or extract
// degrade the result to an empty or partial sprite; they are reported as
// warnings and never returned as errors.
package sprite
