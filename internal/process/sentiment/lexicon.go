// Package sentiment classifies mention text into coarse sentiment labels.
//
// The shipped classifier is a keyword heuristic: it checks which lexicon
// words occur in the text and compares the positive and negative tallies.
// The Classifier interface keeps the capability swappable for a real model
// without touching the rest of the pipeline.
package sentiment

// Lexicon holds the positive and negative word lists used by the keyword
// classifier. One shared instance is injected everywhere sentiment is
// computed so call sites cannot drift apart.
type Lexicon struct {
	Positive []string
	Negative []string
}

// DefaultLexicon returns the stock word lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		Positive: []string{"love", "great", "awesome", "best", "delicious", "yummy", "excellent"},
		Negative: []string{"hate", "bad", "terrible", "worst", "disgusting", "awful"},
	}
}
