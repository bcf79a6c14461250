// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable error handling with user-friendly messages.
//
// Errors carry the operation that failed, the resource involved and hints for
// fixing the problem. A catalog of Markdown help pages covers the failures a
// user most often runs into (missing rc file, missing Sass binary, download
// failures) and is rendered in the terminal.
package issue
