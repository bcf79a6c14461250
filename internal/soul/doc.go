// SPDX-License-Identifier: MPL-2.0

// Package soul runs a generation: it turns a project's source tree into the
// "soul" output directory of expanded stylesheets, the full.scss bundle and
// the optional API manifest.
package soul
