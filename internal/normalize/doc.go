// SPDX-License-Identifier: MPL-2.0

// Package normalize runs raw icon markup through an optimization pipeline.
//
// A pipeline is a Plan: the fixed base passes (cleanup, removeXMLNS,
// removeTitle) followed by the caller's additional passes and regex
// substitutions. Base passes always run first and cannot be removed or
// replaced. The Plan is executed by an Engine; the default Pipeline engine
// applies the passes in order and uses the tdewolff/minify SVG minifier for
// structural cleanup.
package normalize
