package code_analyzer

import (
	"path"
	"regexp"
	"strings"

	"github.com/meysamhadeli/codectx/code_analyzer/contracts"
	"github.com/meysamhadeli/codectx/code_analyzer/models"
	"github.com/meysamhadeli/codectx/corpus"
	"go.uber.org/zap"
)

// aliasPrefixes mark a specifier as relative to the corpus root.
var aliasPrefixes = []string{"@/", "~/"}

// resolvableExtensions are tried, in order, after an exact match fails.
var resolvableExtensions = []string{
	"ts", "tsx", "js", "jsx", "mjs", "cjs",
	"py", "rb", "rs", "go", "java",
	"css", "scss", "h", "hpp", "c", "cpp",
}

// indexFiles are tried, in order, when a specifier names a directory.
var indexFiles = []string{
	"index.ts", "index.tsx", "index.js", "index.jsx", "index.mjs", "index.cjs",
	"__init__.py", "mod.rs",
}

var pythonRelativePattern = regexp.MustCompile(`^(\.+)([\w.]*)$`)

// DependencyMapper builds the reciprocal dependency graph of a selection.
type DependencyMapper struct {
	registry *ExtractorRegistry
	cache    *CacheManager
	logger   *zap.Logger
}

// NewDependencyMapper creates a mapper. The cache and logger may be nil.
func NewDependencyMapper(registry *ExtractorRegistry, cache *CacheManager, logger *zap.Logger) contracts.IDependencyMapper {
	if registry == nil {
		registry = DefaultExtractorRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DependencyMapper{registry: registry, cache: cache, logger: logger}
}

// Map records the raw specifiers of every file and inverts those that resolve
// to a selected file into usedBy edges. Every selected file becomes a node;
// unresolved specifiers add no node. usedBy lists each importer once, in the
// order the importers appear in files.
func (m *DependencyMapper) Map(files []corpus.SelectedFile) models.DependencyGraph {
	graph := make(models.DependencyGraph, len(files))
	var ordered []corpus.SelectedFile
	for _, file := range files {
		if _, dup := graph[file.Path]; dup {
			continue
		}
		graph[file.Path] = &models.DependencyNode{Imports: []string{}, UsedBy: []string{}}
		ordered = append(ordered, file)
	}

	for _, file := range ordered {
		graph[file.Path].Imports = append(graph[file.Path].Imports, m.extract(file)...)
	}

	for _, file := range ordered {
		for _, specifier := range graph[file.Path].Imports {
			target, ok := ResolveSpecifier(file.Path, specifier, graph)
			if !ok {
				continue
			}
			usedBy := graph[target].UsedBy
			if len(usedBy) > 0 && usedBy[len(usedBy)-1] == file.Path {
				continue
			}
			graph[target].UsedBy = append(usedBy, file.Path)
		}
	}

	return graph
}

func (m *DependencyMapper) extract(file corpus.SelectedFile) []string {
	if !m.registry.Supports(file.Language) {
		return nil
	}
	if cached, ok := m.cache.GetSpecifiers(file.Language, file.Content); ok {
		return cached
	}

	specifiers, err := m.registry.For(file.Language).Extract(file.Content)
	if err != nil {
		m.logger.Warn("Failed to extract import specifiers",
			zap.String("path", file.Path),
			zap.String("language", file.Language),
			zap.Error(err))
		return nil
	}
	m.cache.SetSpecifiers(file.Language, file.Content, specifiers)
	return specifiers
}

// NormalizeSpecifier turns a specifier found in importer into a candidate path
// relative to the corpus root. Alias prefixes are stripped, "./" and "../"
// specifiers are joined with the importer's directory, and Python relative
// module names are converted to the same form. The boolean reports whether the
// specifier is path-like; bare specifiers are returned unchanged with false.
// A relative specifier that escapes the root yields "".
func NormalizeSpecifier(importer string, specifier string) (string, bool) {
	for _, prefix := range aliasPrefixes {
		if strings.HasPrefix(specifier, prefix) {
			return path.Clean(strings.TrimPrefix(specifier, prefix)), true
		}
	}

	if m := pythonRelativePattern.FindStringSubmatch(specifier); m != nil && !strings.Contains(specifier, "/") {
		relative := "./"
		if len(m[1]) > 1 {
			relative = strings.Repeat("../", len(m[1])-1)
		}
		specifier = relative + strings.ReplaceAll(m[2], ".", "/")
	}

	if !strings.HasPrefix(specifier, "./") && !strings.HasPrefix(specifier, "../") {
		return specifier, false
	}

	candidate := path.Join(path.Dir(importer), specifier)
	if candidate == ".." || strings.HasPrefix(candidate, "../") {
		return "", true
	}
	return candidate, true
}

// ResolveSpecifier matches a specifier against the nodes of graph: exactly,
// then with a known source extension appended, then as a directory index file.
// Bare specifiers only match exactly.
func ResolveSpecifier(importer string, specifier string, graph models.DependencyGraph) (string, bool) {
	candidate, pathLike := NormalizeSpecifier(importer, specifier)
	if candidate == "" {
		return "", false
	}
	if _, ok := graph[candidate]; ok {
		return candidate, true
	}
	if !pathLike {
		return "", false
	}

	for _, ext := range resolvableExtensions {
		if _, ok := graph[candidate+"."+ext]; ok {
			return candidate + "." + ext, true
		}
	}
	for _, index := range indexFiles {
		if p := path.Join(candidate, index); graph[p] != nil {
			return p, true
		}
	}
	return "", false
}
