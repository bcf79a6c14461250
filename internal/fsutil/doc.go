// SPDX-License-Identifier: MPL-2.0

// Package fsutil holds the filesystem chores shared by the generation and
// website builds: clearing output directories, writing files with their
// parents, and copying resources selected by doublestar globs.
package fsutil
