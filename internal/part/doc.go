// SPDX-License-Identifier: MPL-2.0

// Package part expands a source tree of style parts into processed items.
//
// A group directory (for example "components") holds parts. Each part is
// classified from its directory listing alone:
//
//   - a loose "*.scss" file is copied verbatim;
//   - a folder holding exactly "<name>.scss" is a single definition whose
//     [base] placeholder becomes ".<name>";
//   - any other folder is a variant set. Its "default.scss" and one template
//     per axis ("palettes.scss", "directions_and_size_steps.scss", ...) are
//     expanded against the variable table, and an "<name>-all" aggregator
//     importing every variant is synthesized.
//
// Template placeholders are plain tokens replaced everywhere they occur:
//
//	[base]      single definition selector      .<name>
//	[default]   default variant selector        .<name>, .<name>-default
//	[variant]   variant selector                .<name>-<key>[-<key2>[-<key3>]]
//	#{$key}     simple axis key
//	#{$value}   simple axis value
//	#{$keyN}    key of the Nth component of a combined axis (N = 1..3)
//	#{$valueN}  value of the Nth component of a combined axis (N = 1..3)
//
// Missing templates and absent axes are not errors: they produce fewer items.
package part
