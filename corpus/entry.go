package corpus

import (
	"fmt"
	"sort"
	"strings"
)

// EntryKind distinguishes files from directories in the corpus tree.
type EntryKind string

const (
	KindFile      EntryKind = "file"
	KindDirectory EntryKind = "directory"
)

// PlainText is the language assigned to files with an unknown extension.
const PlainText = "plaintext"

// FileEntry is one node of the corpus tree. Entries are built once per ingestion
// and only read afterwards.
type FileEntry struct {
	Name     string
	Path     string
	Kind     EntryKind
	Language string
	Content  string
	Size     int64
	Binary   bool
	Error    string
	Children map[string]*FileEntry
}

// HasContent reports whether the entry is a file whose text was read successfully.
func (e *FileEntry) HasContent() bool {
	return e != nil && e.Kind == KindFile && !e.Binary && e.Error == ""
}

// IsDir reports whether the entry is a directory.
func (e *FileEntry) IsDir() bool {
	return e != nil && e.Kind == KindDirectory
}

// sortedChildren returns the children ordered by name.
func (e *FileEntry) sortedChildren() []*FileEntry {
	return sortedEntries(e.Children)
}

// Corpus maps top-level entry names to their entries.
type Corpus map[string]*FileEntry

// IsEmpty reports whether nothing has been ingested.
func (c Corpus) IsEmpty() bool {
	return len(c) == 0
}

// Lookup resolves a "/"-joined path to its entry.
func (c Corpus) Lookup(path string) (*FileEntry, bool) {
	if path == "" {
		return nil, false
	}
	parts := strings.Split(path, "/")
	current := map[string]*FileEntry(c)
	for i, part := range parts {
		entry, ok := current[part]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return entry, true
		}
		if entry.Kind != KindDirectory {
			return nil, false
		}
		current = entry.Children
	}
	return nil, false
}

// Walk visits every entry in pre-order, siblings ordered by name.
// Returning false from fn skips the entry's children.
func (c Corpus) Walk(fn func(entry *FileEntry) bool) {
	for _, entry := range sortedEntries(c) {
		walkEntry(entry, fn)
	}
}

func walkEntry(entry *FileEntry, fn func(entry *FileEntry) bool) {
	if !fn(entry) {
		return
	}
	if entry.Kind == KindDirectory {
		for _, child := range entry.sortedChildren() {
			walkEntry(child, fn)
		}
	}
}

// Files returns every file entry in traversal order.
func (c Corpus) Files() []*FileEntry {
	var files []*FileEntry
	c.Walk(func(entry *FileEntry) bool {
		if entry.Kind == KindFile {
			files = append(files, entry)
		}
		return true
	})
	return files
}

// Validate checks the path invariants: each entry's path is its parent's path plus
// "/" plus its name, and no path occurs twice.
func (c Corpus) Validate() error {
	seen := make(map[string]bool)
	var check func(parent string, name string, entry *FileEntry) error
	check = func(parent string, name string, entry *FileEntry) error {
		if entry == nil {
			return fmt.Errorf("nil entry under %q", parent)
		}
		want := name
		if parent != "" {
			want = parent + "/" + name
		}
		if entry.Path != want {
			return fmt.Errorf("entry %q has path %q, expected %q", name, entry.Path, want)
		}
		if seen[entry.Path] {
			return fmt.Errorf("duplicate path %q", entry.Path)
		}
		seen[entry.Path] = true
		if entry.Kind == KindFile && len(entry.Children) > 0 {
			return fmt.Errorf("file %q has children", entry.Path)
		}
		for _, childName := range sortedKeys(entry.Children) {
			if err := check(entry.Path, childName, entry.Children[childName]); err != nil {
				return err
			}
		}
		return nil
	}
	for _, name := range sortedKeys(c) {
		if err := check("", name, c[name]); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys(entries map[string]*FileEntry) []string {
	keys := make([]string, 0, len(entries))
	for name := range entries {
		keys = append(keys, name)
	}
	sort.Strings(keys)
	return keys
}

func sortedEntries(entries map[string]*FileEntry) []*FileEntry {
	keys := sortedKeys(entries)
	out := make([]*FileEntry, 0, len(keys))
	for _, key := range keys {
		out = append(out, entries[key])
	}
	return out
}
