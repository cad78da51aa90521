package models

import "sort"

// DependencyNode holds the raw specifiers a file imports and the in-corpus files
// that import it.
type DependencyNode struct {
	Imports []string `json:"imports"`
	UsedBy  []string `json:"usedBy"`
}

// DependencyGraph maps a file path to its node. It is rebuilt for every
// generation and never persisted.
type DependencyGraph map[string]*DependencyNode

// Paths returns the node paths in ascending order.
func (g DependencyGraph) Paths() []string {
	paths := make([]string, 0, len(g))
	for p := range g {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// UniqueImports returns the imports of path without repeats, keeping the first
// occurrence of each specifier.
func (g DependencyGraph) UniqueImports(path string) []string {
	node, ok := g[path]
	if !ok {
		return nil
	}
	seen := make(map[string]struct{}, len(node.Imports))
	unique := make([]string, 0, len(node.Imports))
	for _, specifier := range node.Imports {
		if _, dup := seen[specifier]; dup {
			continue
		}
		seen[specifier] = struct{}{}
		unique = append(unique, specifier)
	}
	return unique
}
