// Package tagging assigns product and flavor tags to mention text by
// case-insensitive substring matching against configured vocabularies.
// There is deliberately no tokenization or stemming: "chocolatey" matches
// the flavor "chocolate", matching historical outputs.
package tagging

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
)

type vocabEntry struct {
	tag    string
	folded string
}

// Tagger matches text against a product vocabulary and a flavor vocabulary.
// Product matching is first-match-wins in configured vocabulary order, not
// by position in the text; a text mentioning two configured products is
// recorded under whichever is configured first. Flavor matching collects
// every match.
type Tagger struct {
	products []vocabEntry
	flavors  []vocabEntry
	caser    cases.Caser
}

// NewTagger builds a Tagger. Vocabulary order is preserved for the
// first-match-wins product rule; empty entries are ignored.
func NewTagger(products, flavors []string) *Tagger {
	caser := cases.Fold()

	return &Tagger{
		products: buildVocab(caser, products),
		flavors:  buildVocab(caser, flavors),
		caser:    caser,
	}
}

// Product returns the first configured product whose name occurs in text,
// or ProductOther when none does. Total: any text yields exactly one tag.
func (t *Tagger) Product(text string) string {
	folded := t.caser.String(text)

	for _, entry := range t.products {
		if strings.Contains(folded, entry.folded) {
			return entry.tag
		}
	}

	return domain.ProductOther
}

// Flavors returns every configured flavor occurring in text, in configured
// vocabulary order, without duplicates. A text matching nothing yields nil.
func (t *Tagger) Flavors(text string) []string {
	folded := t.caser.String(text)

	var matched []string

	for _, entry := range t.flavors {
		if strings.Contains(folded, entry.folded) {
			matched = append(matched, entry.tag)
		}
	}

	return matched
}

func buildVocab(caser cases.Caser, entries []string) []vocabEntry {
	vocab := make([]vocabEntry, 0, len(entries))

	seen := make(map[string]struct{}, len(entries))

	for _, e := range entries {
		folded := caser.String(e)
		if folded == "" {
			continue
		}

		if _, dup := seen[folded]; dup {
			continue
		}

		seen[folded] = struct{}{}
		vocab = append(vocab, vocabEntry{tag: e, folded: folded})
	}

	return vocab
}
