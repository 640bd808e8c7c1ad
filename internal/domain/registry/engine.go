package registry

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// KeywordRule pairs a trigger keyword with the label it assigns. Rules are
// evaluated as an ordered table: when several keywords occur in the same
// text, the rule that appears earliest in the table wins, which keeps match
// precedence auditable.
type KeywordRule struct {
	Keyword string
	Label   string
}

// KeywordEngine scans text for all table keywords in a single pass.
type KeywordEngine struct {
	rules   []KeywordRule
	matcher *ahocorasick.Matcher
}

// NewKeywordEngine builds the matcher over the lowercased keywords.
func NewKeywordEngine(rules []KeywordRule) *KeywordEngine {
	patterns := make([][]byte, len(rules))
	for i, r := range rules {
		patterns[i] = []byte(strings.ToLower(r.Keyword))
	}
	return &KeywordEngine{
		rules:   rules,
		matcher: ahocorasick.NewMatcher(patterns),
	}
}

// Match returns the label of the first table entry whose keyword occurs in
// the text, or false when nothing matches.
func (e *KeywordEngine) Match(text string) (string, bool) {
	if len(e.rules) == 0 {
		return "", false
	}
	hits := e.matcher.Match([]byte(strings.ToLower(text)))
	if len(hits) == 0 {
		return "", false
	}

	best := -1
	for _, idx := range hits {
		if idx >= 0 && idx < len(e.rules) && (best < 0 || idx < best) {
			best = idx
		}
	}
	if best < 0 {
		return "", false
	}
	return e.rules[best].Label, true
}
