package sentiment

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
)

// Classifier labels free-form text. Implementations must be total: any
// input, including the empty string, yields a label.
type Classifier interface {
	Classify(text string) domain.Sentiment
}

// KeywordClassifier counts how many distinct lexicon words occur as
// case-insensitive substrings of the text. More positive words than
// negative yields Positive, the reverse Negative, ties (including none
// found) Neutral. Each lexicon word contributes at most once regardless of
// how often it repeats in the text.
type KeywordClassifier struct {
	positive []string
	negative []string
	caser    cases.Caser
}

var _ Classifier = (*KeywordClassifier)(nil)

// NewKeywordClassifier builds a classifier from the given lexicon.
func NewKeywordClassifier(lex Lexicon) *KeywordClassifier {
	caser := cases.Fold()

	return &KeywordClassifier{
		positive: foldAll(caser, lex.Positive),
		negative: foldAll(caser, lex.Negative),
		caser:    caser,
	}
}

// Classify returns the sentiment label for text.
func (c *KeywordClassifier) Classify(text string) domain.Sentiment {
	folded := c.caser.String(text)

	pos := countPresent(folded, c.positive)
	neg := countPresent(folded, c.negative)

	switch {
	case pos > neg:
		return domain.SentimentPositive
	case neg > pos:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}

func countPresent(folded string, words []string) int {
	count := 0

	for _, w := range words {
		if w != "" && strings.Contains(folded, w) {
			count++
		}
	}

	return count
}

func foldAll(caser cases.Caser, words []string) []string {
	folded := make([]string, 0, len(words))
	for _, w := range words {
		folded = append(folded, caser.String(w))
	}

	return folded
}
