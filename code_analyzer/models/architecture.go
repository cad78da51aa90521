package models

import (
	"fmt"
	"strings"
)

// RankedFile is a file together with the number of files that import it.
type RankedFile struct {
	Path        string `json:"path"`
	UsedByCount int    `json:"usedByCount"`
}

// DirectoryCount is the number of selected files under a top-level directory.
// Files at the corpus root are counted under "root".
type DirectoryCount struct {
	Name  string `json:"name"`
	Files int    `json:"files"`
}

// Architecture is the derived overview of a selection.
type Architecture struct {
	TotalFiles  int              `json:"totalFiles"`
	MostUsed    []RankedFile     `json:"mostUsed"`
	Directories []DirectoryCount `json:"directories"`
	Languages   []string         `json:"languages"`
}

// Text renders the overview as plain structured text. Equal values always
// render to equal text.
func (a Architecture) Text() string {
	var b strings.Builder

	fmt.Fprintf(&b, "This codebase contains %s across %s.\n",
		plural(a.TotalFiles, "file"), plural(len(a.Directories), "top-level directory"))
	if len(a.Languages) > 0 {
		fmt.Fprintf(&b, "Languages: %s.\n", strings.Join(a.Languages, ", "))
	}

	if len(a.MostUsed) > 0 {
		b.WriteString("\nMost used files:\n")
		for i, f := range a.MostUsed {
			fmt.Fprintf(&b, "%d. %s (used by %s)\n", i+1, f.Path, plural(f.UsedByCount, "file"))
		}
	}

	if len(a.Directories) > 0 {
		b.WriteString("\nDirectory grouping:\n")
		for _, d := range a.Directories {
			fmt.Fprintf(&b, "- %s: %s\n", d.Name, plural(d.Files, "file"))
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
