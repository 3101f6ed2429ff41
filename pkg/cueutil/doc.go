// SPDX-License-Identifier: MPL-2.0

// Package cueutil provides shared CUE parsing utilities.
//
// It wraps the schema-then-data flow used to validate iconsprite.cue:
//
//  1. Compile the embedded schema and look up the root definition
//  2. Compile user data and unify with the definition
//  3. Validate, returning errors prefixed with JSON-style field paths
//
// # Usage
//
//	//go:embed config_schema.cue
//	var schema string
//
//	unified, err := cueutil.Unify(schema, data, "#Config", "iconsprite.cue")
//	if err != nil {
//	    return err // includes the field path, e.g. "normalize.passes[1]"
//	}
package cueutil
