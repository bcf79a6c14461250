// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates user documents against an embedded CUE schema.
//
// A document is compiled (CUE, JSON) or decoded and encoded (TOML) into a
// cue.Value, unified with a schema definition and validated. The unified
// value keeps the document's field order, which Go maps lose:
//
//	//go:embed config_schema.cue
//	var schema []byte
//
//	format, err := cueutil.FormatOf(path)
//	if err != nil {
//		return err
//	}
//	v, err := cueutil.Load(schema, "#Config", data, format, cueutil.WithFilename(path))
//	if err != nil {
//		return err // *ValidationError names the offending fields
//	}
package cueutil
