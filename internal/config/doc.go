// SPDX-License-Identifier: MPL-2.0

// Package config handles iconsprite configuration using Viper with CUE as the file format.
//
// Configuration is read from iconsprite.cue in the project directory (or the file
// passed with --config), validated against the embedded CUE schema (config_schema.cue),
// merged over built-in defaults and finally overridden by ICONSPRITE_* environment
// variables (e.g. ICONSPRITE_SERVE_ADDR for serve.addr).
package config
