package corpus

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// FromContents builds a corpus from "/"-joined paths and their text content,
// creating intermediate directories. It is the in-memory counterpart of Loader
// for callers that already hold file contents, such as dropped files. A file
// whose path is also the parent of another path is replaced by the directory,
// which records the conflict in its Error.
func FromContents(files map[string]string) Corpus {
	c := Corpus{}
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	for _, p := range paths {
		content := files[p]
		parent := ensureParents(c, p)
		name := path.Base(p)
		parent[name] = &FileEntry{
			Name:     name,
			Path:     p,
			Kind:     KindFile,
			Language: LanguageFromName(name),
			Content:  content,
			Size:     int64(len(content)),
			Binary:   IsBinaryName(name, int64(len(content))),
		}
	}
	return c
}

// ensureParents creates the directories leading to p and returns the child map
// that p belongs in.
func ensureParents(c Corpus, p string) map[string]*FileEntry {
	parts := strings.Split(p, "/")
	current := map[string]*FileEntry(c)
	for i := 0; i < len(parts)-1; i++ {
		dirPath := strings.Join(parts[:i+1], "/")
		dir, ok := current[parts[i]]
		if !ok || dir.Kind != KindDirectory {
			replaced := dir
			dir = &FileEntry{Name: parts[i], Path: dirPath, Kind: KindDirectory, Children: map[string]*FileEntry{}}
			if replaced != nil {
				dir.Error = fmt.Sprintf("Path conflict: file %s was replaced by a directory of the same path", dirPath)
			}
			current[parts[i]] = dir
		}
		current = dir.Children
	}
	return current
}
