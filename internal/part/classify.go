// SPDX-License-Identifier: MPL-2.0

package part

import "strings"

const (
	// LooseFile is a style file placed directly in a group directory.
	LooseFile Shape = iota + 1
	// SingleDefinition is a folder holding only "<name>.scss".
	SingleDefinition
	// VariantSet is any other folder: a default template and/or axis templates.
	VariantSet
)

// Shape is the classification of a part.
type Shape int

// String returns the string representation of the Shape.
func (s Shape) String() string {
	switch s {
	case LooseFile:
		return "loose-file"
	case SingleDefinition:
		return "single-definition"
	case VariantSet:
		return "variant-set"
	default:
		return "unknown"
	}
}

// Classify decides the shape of a group entry from its name and, for
// folders, the names of its children. Content is never inspected.
func Classify(name string, children []string) Shape {
	if strings.HasSuffix(name, StyleExt) {
		return LooseFile
	}
	if len(children) == 1 && children[0] == name+StyleExt {
		return SingleDefinition
	}
	return VariantSet
}
