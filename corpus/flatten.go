package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrPathNotFound means a selected path does not resolve in the corpus snapshot.
	ErrPathNotFound = errors.New("path not found")
	// ErrUnreadable means the entry carries a read error marker.
	ErrUnreadable = errors.New("file could not be read")
	// ErrBinaryContent means the entry was classified binary and has no text.
	ErrBinaryContent = errors.New("binary file")
)

// PathError records a per-path failure during flattening. It never aborts the
// whole operation.
type PathError struct {
	Path   string
	Err    error
	Detail string
}

func (e *PathError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %v: %s", e.Path, e.Err, e.Detail)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

// SelectedFile is a selected file with readable content.
type SelectedFile struct {
	Path     string `json:"path"`
	Language string `json:"language"`
	Content  string `json:"content"`
}

// Flatten returns every selected file with content, in corpus traversal order.
// Selected directories are skipped silently. Selected paths that do not resolve,
// or that resolve to unreadable or binary files, are reported per path.
func Flatten(c Corpus, sel Selection) ([]SelectedFile, []*PathError) {
	var files []SelectedFile
	var failures []*PathError

	for _, p := range sel.Paths() {
		if _, ok := c.Lookup(p); !ok {
			failures = append(failures, &PathError{Path: p, Err: ErrPathNotFound})
		}
	}

	c.Walk(func(entry *FileEntry) bool {
		if entry.Kind != KindFile || !sel.Has(entry.Path) {
			return true
		}
		switch {
		case entry.Error != "":
			failures = append(failures, &PathError{Path: entry.Path, Err: ErrUnreadable, Detail: entry.Error})
		case entry.Binary:
			failures = append(failures, &PathError{Path: entry.Path, Err: ErrBinaryContent})
		default:
			language := entry.Language
			if language == "" {
				language = PlainText
			}
			files = append(files, SelectedFile{Path: entry.Path, Language: language, Content: entry.Content})
		}
		return true
	})

	return files, failures
}
