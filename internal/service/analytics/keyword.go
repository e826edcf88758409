// internal/service/analytics/keyword.go

package analytics

import (
	"strings"
	"unicode"

	"sentilytics/internal/domain/analysis"
)

const minKeywordLength = 4

// TopKeyword returns the most frequent informative word across the filtered
// posts. Stop words, short words and the words of the query itself never
// qualify. On equal counts the word that reached the count first wins.
func TopKeyword(filtered []analysis.Post, query string) string {
	excluded := make(map[string]struct{})
	for _, q := range strings.FieldsFunc(strings.ToLower(query), isSpace) {
		excluded[q] = struct{}{}
	}

	counts := make(map[string]int)
	best, bestCount := notAvailable, 0

	for _, p := range filtered {
		if p.Text == "" {
			continue
		}
		for _, token := range tokenize(p.Text) {
			if len(token) < minKeywordLength {
				continue
			}
			if _, stop := stopWords[token]; stop {
				continue
			}
			if _, ok := excluded[token]; ok {
				continue
			}

			counts[token]++
			if counts[token] > bestCount {
				best, bestCount = token, counts[token]
			}
		}
	}
	return best
}

// tokenize lowercases text, drops everything that is neither an ASCII word
// character nor whitespace and splits on whitespace
func tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if isWordChar(r) || isSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.FieldsFunc(b.String(), isSpace)
}

func isWordChar(r rune) bool {
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// isSpace follows the whitespace class of ECMAScript regular expressions,
// which includes the BOM but not NEL
func isSpace(r rune) bool {
	if r == '\ufeff' {
		return true
	}
	return r != '\u0085' && unicode.IsSpace(r)
}
