package corpus

import (
	"sort"
	"strings"
)

// ExcludedDirectories are never auto-selected and never descended into by the loader.
var ExcludedDirectories = []string{"node_modules", ".git", ".next", "dist", "build"}

// Selection is an immutable snapshot of the paths chosen for context generation.
// Every mutating operation returns a new Selection.
type Selection struct {
	paths map[string]struct{}
}

// NewSelection builds a snapshot holding exactly the given paths.
func NewSelection(paths ...string) Selection {
	s := Selection{paths: make(map[string]struct{}, len(paths))}
	for _, p := range paths {
		if p != "" {
			s.paths[p] = struct{}{}
		}
	}
	return s
}

// Has reports whether path is selected.
func (s Selection) Has(path string) bool {
	_, ok := s.paths[path]
	return ok
}

// Len returns the number of selected paths.
func (s Selection) Len() int {
	return len(s.paths)
}

// IsEmpty reports whether nothing is selected.
func (s Selection) IsEmpty() bool {
	return len(s.paths) == 0
}

// Paths returns the selected paths in lexical order.
func (s Selection) Paths() []string {
	out := make([]string, 0, len(s.paths))
	for p := range s.paths {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func (s Selection) clone() Selection {
	next := Selection{paths: make(map[string]struct{}, len(s.paths)+1)}
	for p := range s.paths {
		next.paths[p] = struct{}{}
	}
	return next
}

// Select returns a snapshot with path added. Selecting a directory also adds every
// path currently below it in c; later corpus changes are not reflected.
func (s Selection) Select(c Corpus, path string) Selection {
	next := s.clone()
	next.paths[path] = struct{}{}

	entry, ok := c.Lookup(path)
	if !ok || entry.Kind != KindDirectory {
		return next
	}
	for _, child := range entry.sortedChildren() {
		walkEntry(child, func(e *FileEntry) bool {
			next.paths[e.Path] = struct{}{}
			return true
		})
	}
	return next
}

// Deselect returns a snapshot without path and without any path below it.
func (s Selection) Deselect(path string) Selection {
	next := s.clone()
	delete(next.paths, path)
	prefix := path + "/"
	for p := range next.paths {
		if strings.HasPrefix(p, prefix) {
			delete(next.paths, p)
		}
	}
	return next
}

// DefaultSelection computes the initial selection for a freshly built corpus:
// every non-binary file and every directory, skipping excluded directories and
// everything beneath them.
func DefaultSelection(c Corpus) Selection {
	s := Selection{paths: make(map[string]struct{})}
	c.Walk(func(entry *FileEntry) bool {
		if entry.Kind == KindDirectory {
			if IsExcludedDirectory(entry.Name) {
				return false
			}
			s.paths[entry.Path] = struct{}{}
			return true
		}
		if !entry.Binary {
			s.paths[entry.Path] = struct{}{}
		}
		return true
	})
	return s
}

// IsExcludedDirectory reports whether a directory name is in ExcludedDirectories.
func IsExcludedDirectory(name string) bool {
	for _, excluded := range ExcludedDirectories {
		if name == excluded {
			return true
		}
	}
	return false
}
