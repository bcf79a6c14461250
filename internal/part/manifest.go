// SPDX-License-Identifier: MPL-2.0

package part

import (
	"slices"

	"github.com/goccy/go-json"
)

type (
	// Manifest is the ordered API listing of generated export paths. Each
	// aggregator is followed by a nested node listing its children, which
	// gives the manifest its mixed string / list shape.
	Manifest []ManifestNode

	// ManifestNode is either a single export path or a list of export paths.
	ManifestNode struct {
		path  string
		paths []string
		list  bool
	}
)

// PathNode returns a node holding one export path.
func PathNode(path string) ManifestNode { return ManifestNode{path: path} }

// ListNode returns a node holding a list of export paths.
func ListNode(paths []string) ManifestNode {
	return ManifestNode{paths: slices.Clone(paths), list: true}
}

// IsList reports whether the node is a nested list.
func (n ManifestNode) IsList() bool { return n.list }

// Path returns the export path of a single node.
func (n ManifestNode) Path() string { return n.path }

// Paths returns the export paths of a list node.
func (n ManifestNode) Paths() []string { return slices.Clone(n.paths) }

// MarshalJSON encodes a single node as a string and a list node as an array.
func (n ManifestNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.value())
}

// MarshalYAML mirrors MarshalJSON for YAML encoders.
func (n ManifestNode) MarshalYAML() (any, error) {
	return n.value(), nil
}

func (n ManifestNode) value() any {
	if n.list {
		if n.paths == nil {
			return []string{}
		}
		return n.paths
	}
	return n.path
}

// BuildManifest lists leading paths, then every group entry in order. An
// aggregator contributes its own path followed by the list of its children.
func BuildManifest(leading []string, results []GroupResult) Manifest {
	var m Manifest
	for _, p := range leading {
		m = append(m, PathNode(p))
	}
	for _, r := range results {
		for _, e := range r.Entries {
			m = append(m, PathNode(e.Item.ExportPath))
			if e.IsAggregate() {
				paths := make([]string, len(e.Children))
				for i, c := range e.Children {
					paths[i] = c.ExportPath
				}
				m = append(m, ListNode(paths))
			}
		}
	}
	return m
}

// TopLevel returns the single-path nodes in order.
func (m Manifest) TopLevel() []string {
	var paths []string
	for _, n := range m {
		if !n.list {
			paths = append(paths, n.path)
		}
	}
	return paths
}
