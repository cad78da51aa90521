package code_analyzer

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/meysamhadeli/codectx/code_analyzer/contracts"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
)

const (
	goImportQuery   = `(import_spec path: (_) @path)`
	javaImportQuery = `
(import_declaration (scoped_identifier) @path)
(import_declaration (identifier) @path)`
)

// treeSitterExtractor runs a capture query over the syntax tree of a file and
// reports every capture in source order.
type treeSitterExtractor struct {
	languages []string
	language  *sitter.Language
	pattern   string
	clean     func(string) string

	once     sync.Once
	query    *sitter.Query
	queryErr error
}

// NewGoExtractor extracts import paths from Go source.
func NewGoExtractor() contracts.ISpecifierExtractor {
	return &treeSitterExtractor{
		languages: []string{"go"},
		language:  golang.GetLanguage(),
		pattern:   goImportQuery,
		clean: func(s string) string {
			return strings.Trim(s, "\"`")
		},
	}
}

// NewJavaExtractor extracts imported packages and types from Java source.
func NewJavaExtractor() contracts.ISpecifierExtractor {
	return &treeSitterExtractor{
		languages: []string{"java"},
		language:  java.GetLanguage(),
		pattern:   javaImportQuery,
		clean:     strings.TrimSpace,
	}
}

func (e *treeSitterExtractor) Languages() []string {
	return e.languages
}

func (e *treeSitterExtractor) compile() (*sitter.Query, error) {
	e.once.Do(func() {
		e.query, e.queryErr = sitter.NewQuery([]byte(e.pattern), e.language)
	})
	return e.query, e.queryErr
}

func (e *treeSitterExtractor) Extract(content string) ([]string, error) {
	query, err := e.compile()
	if err != nil {
		return nil, fmt.Errorf("failed to compile query: %w", err)
	}

	source := []byte(content)

	// Parsers are not safe for concurrent use, so each call gets its own.
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(e.language)

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	defer tree.Close()

	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, tree.RootNode())

	type capture struct {
		start uint32
		text  string
	}
	var captures []capture
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, c := range match.Captures {
			captures = append(captures, capture{start: c.Node.StartByte(), text: e.clean(c.Node.Content(source))})
		}
	}

	sort.SliceStable(captures, func(i, j int) bool {
		return captures[i].start < captures[j].start
	})

	specifiers := make([]string, 0, len(captures))
	for _, c := range captures {
		if c.text != "" {
			specifiers = append(specifiers, c.text)
		}
	}
	return specifiers, nil
}
