// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for iconsprite.
//
// Every command receives an *App, the composition root that owns the config
// provider and the output writers. Commands build the sprite through
// internal/sprite and never print from library packages; warnings from the
// build are logged with charmbracelet/log and summarized here.
package cmd
