// Package filetree converts a snapshot's file map into a navigation
// hierarchy for host UIs. It shares the assembler's path conventions but
// is presentation-only: nothing in the render pipeline depends on it.
package filetree

import (
	"sort"
	"strings"
)

// NodeType distinguishes directories from files.
type NodeType string

const (
	// NodeDir is a directory node.
	NodeDir NodeType = "dir"
	// NodeFile is a file node.
	NodeFile NodeType = "file"
)

// Node is one entry in the navigation hierarchy.
type Node struct {
	Name     string   `json:"name"`
	Path     string   `json:"path"`
	Type     NodeType `json:"type"`
	Children []*Node  `json:"children,omitempty"`
}

// Build converts a path→content map into a sorted hierarchy: directories
// first, then files, both alphabetical. Paths are slash-separated as the
// snapshot normalizes them.
func Build(files map[string]string) []*Node {
	root := &Node{Type: NodeDir}
	index := map[string]*Node{"": root}

	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		segments := strings.Split(p, "/")
		parentKey := ""
		for i, segment := range segments {
			key := strings.Join(segments[:i+1], "/")
			if existing, exists := index[key]; exists {
				// A path like "a/b" can extend a previously inserted
				// file "a"; promote it so children have a dir parent.
				if i < len(segments)-1 {
					existing.Type = NodeDir
				}
				parentKey = key
				continue
			}
			node := &Node{Name: segment, Path: key, Type: NodeDir}
			if i == len(segments)-1 {
				node.Type = NodeFile
			}
			parent := index[parentKey]
			parent.Children = append(parent.Children, node)
			index[key] = node
			parentKey = key
		}
	}

	sortNodes(root.Children)
	return root.Children
}

func sortNodes(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if nodes[i].Type != nodes[j].Type {
			return nodes[i].Type == NodeDir
		}
		return nodes[i].Name < nodes[j].Name
	})
	for _, n := range nodes {
		sortNodes(n.Children)
	}
}
