package corpus

import (
	"bytes"
	"path"
	"regexp"
	"strings"
)

// MaxTextFileSize is the size above which a file is treated as binary without reading it.
const MaxTextFileSize = 1024 * 1024

var extensionLanguages = map[string]string{
	"js":    "javascript",
	"jsx":   "jsx",
	"mjs":   "javascript",
	"cjs":   "javascript",
	"ts":    "typescript",
	"tsx":   "tsx",
	"html":  "html",
	"css":   "css",
	"scss":  "scss",
	"json":  "json",
	"md":    "markdown",
	"py":    "python",
	"rb":    "ruby",
	"go":    "go",
	"java":  "java",
	"php":   "php",
	"c":     "c",
	"h":     "c",
	"cpp":   "cpp",
	"hpp":   "cpp",
	"cs":    "csharp",
	"swift": "swift",
	"kt":    "kotlin",
	"rs":    "rust",
}

var binaryExtension = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|bmp|ico|webp|mp3|mp4|mov|pdf|zip|tar|gz|exe|dll|woff|woff2|eot|ttf)$`)

// LanguageFromName maps a file name to its language tag, PlainText when unknown.
func LanguageFromName(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
	if language, ok := extensionLanguages[ext]; ok {
		return language
	}
	return PlainText
}

// IsBinaryName classifies a file as binary from its name and size alone.
func IsBinaryName(name string, size int64) bool {
	return binaryExtension.MatchString(name) || size > MaxTextFileSize
}

// IsBinaryContent sniffs the first 512 bytes for NUL bytes or a high ratio of
// non-printable characters.
func IsBinaryContent(data []byte) bool {
	if len(data) > 512 {
		data = data[:512]
	}
	if len(data) == 0 {
		return false
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return true
	}
	nonPrintable := 0
	for _, b := range data {
		if !isPrintable(b) {
			nonPrintable++
		}
	}
	return float64(nonPrintable)/float64(len(data)) > 0.3
}

// isPrintable accepts printable ASCII, common whitespace and any byte of a
// multi-byte UTF-8 sequence.
func isPrintable(b byte) bool {
	return (b >= 32 && b <= 126) || b == '\n' || b == '\r' || b == '\t' || b >= 0x80
}
