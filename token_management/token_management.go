package token_management

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/meysamhadeli/codectx/token_management/contracts"
)

const (
	averageCharsPerToken = 4    // Approximation for English text
	codeCharsPerToken    = 3.5  // Code tends to have more special characters
	newlineTokens        = 1    // Most tokenizers count a newline as 1 token
	whitespaceAdjustment = 0.85 // Adjustment factor for whitespace

	// truncationTolerance is the width of the band below the budget in which the
	// truncation search stops early.
	truncationTolerance = 100

	// corpusOverheadPerFile and corpusOverheadCap bound the formatting overhead
	// added by EstimateCorpus.
	corpusOverheadPerFile = 100
	corpusOverheadCap     = 10000
)

// TruncationMarker is appended to every truncated text.
const TruncationMarker = "\n\n[Content truncated to fit token limit]"

var codeBlockPattern = regexp.MustCompile("(?s)```.*?```")

// tokenEstimator implements contracts.ITokenEstimator with the package functions.
type tokenEstimator struct{}

// NewTokenEstimator creates the default estimator.
func NewTokenEstimator() contracts.ITokenEstimator {
	return &tokenEstimator{}
}

func (tokenEstimator) Estimate(text string) int {
	return Estimate(text)
}

func (tokenEstimator) Truncate(text string, maxTokens int) string {
	return Truncate(text, maxTokens)
}

func (tokenEstimator) MarkerTokens() int {
	return MarkerTokens()
}

// Estimate approximates the number of model tokens in text. Characters inside
// fenced code blocks cost 1/3.5 token, other characters 0.85/4 token, and every
// newline one token. A newline outside a code block is charged only as a newline.
func Estimate(text string) int {
	if text == "" {
		return 0
	}

	codeChars := 0
	codeNewlines := 0
	for _, loc := range codeBlockPattern.FindAllStringIndex(text, -1) {
		block := text[loc[0]:loc[1]]
		codeChars += utf8.RuneCountInString(block)
		codeNewlines += strings.Count(block, "\n")
	}

	newlines := strings.Count(text, "\n")
	regularChars := utf8.RuneCountInString(text) - codeChars - (newlines - codeNewlines)

	codeTokens := float64(codeChars) / codeCharsPerToken
	regularTokens := float64(regularChars) * whitespaceAdjustment / averageCharsPerToken
	lineTokens := float64(newlines * newlineTokens)

	return int(math.Ceil(codeTokens + regularTokens + lineTokens))
}

// MarkerTokens is the cost of TruncationMarker on its own. Truncate cannot honour
// a budget below this value.
func MarkerTokens() int {
	return Estimate(TruncationMarker)
}

// Truncate returns text unchanged when it fits in maxTokens. Otherwise it returns
// the longest prefix found by binary search, followed by TruncationMarker, whose
// estimate does not exceed maxTokens. The search stops early once a candidate
// lands within truncationTolerance tokens of the budget.
//
// When maxTokens is below MarkerTokens no prefix fits and the marker alone is
// returned; its estimate then exceeds maxTokens. Truncating that result again
// yields the marker unchanged.
func Truncate(text string, maxTokens int) string {
	if Estimate(text) <= maxTokens {
		return text
	}

	runes := []rune(text)
	low, high := 0, len(runes)
	best := -1

	for low <= high {
		mid := (low + high) / 2
		tokens := Estimate(string(runes[:mid]) + TruncationMarker)

		if tokens > maxTokens {
			high = mid - 1
			continue
		}
		if mid > best {
			best = mid
		}
		if tokens < maxTokens-truncationTolerance {
			low = mid + 1
			continue
		}
		break
	}

	if best < 0 {
		return TruncationMarker
	}
	return string(runes[:best]) + TruncationMarker
}

// EstimateCorpus predicts the size of a generated context before generation from
// the number of files and their combined character count: the characters are
// priced as regular text, plus a per-file formatting overhead capped at
// corpusOverheadCap.
func EstimateCorpus(fileCount int, totalChars int) int {
	tokens := int(math.Ceil(float64(totalChars) * whitespaceAdjustment / averageCharsPerToken))
	overhead := fileCount * corpusOverheadPerFile
	if overhead > corpusOverheadCap {
		overhead = corpusOverheadCap
	}
	return tokens + overhead
}

// EffectiveMaxTokens applies the 0.9 safety margin to a configured ceiling.
func EffectiveMaxTokens(maxTokens int) int {
	return maxTokens * 9 / 10
}
