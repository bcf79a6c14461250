// SPDX-License-Identifier: MPL-2.0

// Package config loads the project rc file.
//
// The rc file lives in the project directory as .unistylusrc.cue,
// .unistylusrc.json or .unistylusrc.toml (first match wins). Whatever its
// format, the document is validated against the embedded CUE schema
// (config_schema.cue) before Viper layers it over the defaults and the
// UNISTYLUS_* environment overrides.
//
// Variables and copies are read from the validated CUE value rather than
// through Viper, because their declaration order is meaningful and Go maps
// lose it.
package config
