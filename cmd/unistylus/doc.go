// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the unistylus command line: project initialisation,
// soul generation, the website build and the consumer file helpers.
package cmd
