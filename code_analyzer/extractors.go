package code_analyzer

import (
	"regexp"
	"strings"

	"github.com/meysamhadeli/codectx/code_analyzer/contracts"
)

var (
	scriptImportPattern = regexp.MustCompile(
		`\b(?:import\s+(?:[\w*\s{},$]+?\s+from\s+)?|export\s+[\w*\s{},$]+?\s+from\s+|import\s*\(\s*|require\s*\(\s*)['"]([^'"\n]+)['"]`)
	pythonImportPattern = regexp.MustCompile(
		`(?m)^[ \t]*(?:from\s+([.\w]+)\s+import\b|import\s+([\w.]+(?:[ \t]*,[ \t]*[\w.]+)*))`)
	rubyRequirePattern = regexp.MustCompile(
		`(?m)^[ \t]*require(_relative)?[ \t]*\(?[ \t]*['"]([^'"\n]+)['"]`)
	rustUsePattern = regexp.MustCompile(
		`(?m)^[ \t]*(?:pub(?:\([\w:]+\))?\s+)?(?:use\s+([\w:]+)|mod\s+(\w+)\s*;)`)
	styleImportPattern = regexp.MustCompile(
		`@(?:import|use|forward)\s+(?:url\(\s*)?['"]([^'"\n]+)['"]`)
	includePattern = regexp.MustCompile(
		`(?m)^[ \t]*#[ \t]*include[ \t]*"([^"\n]+)"`)
)

// scriptExtractor handles ES module imports and exports, dynamic import() and
// CommonJS require() for the JavaScript family.
type scriptExtractor struct{}

func (scriptExtractor) Languages() []string {
	return []string{"javascript", "jsx", "typescript", "tsx"}
}

func (scriptExtractor) Extract(content string) ([]string, error) {
	return firstGroups(scriptImportPattern, content), nil
}

// pythonExtractor handles "import a.b" and "from .x import y". Each module of
// a comma separated import is reported on its own.
type pythonExtractor struct{}

func (pythonExtractor) Languages() []string {
	return []string{"python"}
}

func (pythonExtractor) Extract(content string) ([]string, error) {
	var specifiers []string
	for _, m := range pythonImportPattern.FindAllStringSubmatch(content, -1) {
		if m[1] != "" {
			specifiers = append(specifiers, m[1])
			continue
		}
		for _, module := range strings.Split(m[2], ",") {
			specifiers = append(specifiers, strings.TrimSpace(module))
		}
	}
	return specifiers, nil
}

// rubyExtractor handles require and require_relative. A require_relative
// target is reported with a leading "./" so it resolves against the file.
type rubyExtractor struct{}

func (rubyExtractor) Languages() []string {
	return []string{"ruby"}
}

func (rubyExtractor) Extract(content string) ([]string, error) {
	var specifiers []string
	for _, m := range rubyRequirePattern.FindAllStringSubmatch(content, -1) {
		specifier := m[2]
		if m[1] != "" {
			specifier = relativeSpecifier(specifier)
		}
		specifiers = append(specifiers, specifier)
	}
	return specifiers, nil
}

// rustExtractor handles use paths and out-of-line module declarations.
type rustExtractor struct{}

func (rustExtractor) Languages() []string {
	return []string{"rust"}
}

func (rustExtractor) Extract(content string) ([]string, error) {
	var specifiers []string
	for _, m := range rustUsePattern.FindAllStringSubmatch(content, -1) {
		if m[1] != "" {
			specifiers = append(specifiers, strings.TrimSuffix(m[1], "::"))
			continue
		}
		specifiers = append(specifiers, "./"+m[2])
	}
	return specifiers, nil
}

// styleExtractor handles @import, @use and @forward in stylesheets.
type styleExtractor struct{}

func (styleExtractor) Languages() []string {
	return []string{"css", "scss"}
}

func (styleExtractor) Extract(content string) ([]string, error) {
	return firstGroups(styleImportPattern, content), nil
}

// cFamilyExtractor handles quoted #include directives. Angle bracket includes
// name system headers and are ignored.
type cFamilyExtractor struct{}

func (cFamilyExtractor) Languages() []string {
	return []string{"c", "cpp"}
}

func (cFamilyExtractor) Extract(content string) ([]string, error) {
	var specifiers []string
	for _, header := range firstGroups(includePattern, content) {
		specifiers = append(specifiers, relativeSpecifier(header))
	}
	return specifiers, nil
}

// noopExtractor is used for languages without an import heuristic.
type noopExtractor struct{}

func (noopExtractor) Languages() []string {
	return nil
}

func (noopExtractor) Extract(string) ([]string, error) {
	return nil, nil
}

func firstGroups(pattern *regexp.Regexp, content string) []string {
	var groups []string
	for _, m := range pattern.FindAllStringSubmatch(content, -1) {
		groups = append(groups, m[1])
	}
	return groups
}

func relativeSpecifier(specifier string) string {
	if strings.HasPrefix(specifier, ".") || strings.HasPrefix(specifier, "/") {
		return specifier
	}
	return "./" + specifier
}

// ExtractorRegistry dispatches on a file's language tag.
type ExtractorRegistry struct {
	byLanguage map[string]contracts.ISpecifierExtractor
	fallback   contracts.ISpecifierExtractor
}

// NewExtractorRegistry registers every extractor under each of its languages.
// A later extractor replaces an earlier one for the same language.
func NewExtractorRegistry(extractors ...contracts.ISpecifierExtractor) *ExtractorRegistry {
	registry := &ExtractorRegistry{
		byLanguage: make(map[string]contracts.ISpecifierExtractor),
		fallback:   noopExtractor{},
	}
	for _, extractor := range extractors {
		for _, language := range extractor.Languages() {
			registry.byLanguage[language] = extractor
		}
	}
	return registry
}

// DefaultExtractorRegistry knows every built-in language.
func DefaultExtractorRegistry() *ExtractorRegistry {
	return NewExtractorRegistry(
		scriptExtractor{},
		pythonExtractor{},
		NewGoExtractor(),
		NewJavaExtractor(),
		rubyExtractor{},
		rustExtractor{},
		styleExtractor{},
		cFamilyExtractor{},
	)
}

// For returns the extractor for language, or a no-op extractor.
func (r *ExtractorRegistry) For(language string) contracts.ISpecifierExtractor {
	if extractor, ok := r.byLanguage[language]; ok {
		return extractor
	}
	return r.fallback
}

// Supports reports whether language has an import heuristic.
func (r *ExtractorRegistry) Supports(language string) bool {
	_, ok := r.byLanguage[language]
	return ok
}
