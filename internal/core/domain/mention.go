package domain

import "time"

// Source identifies the platform a mention was collected from.
type Source string

// Known mention sources.
const (
	SourceTwitter        Source = "twitter"
	SourceYouTubeComment Source = "youtube_comment"
)

// Sentiment is a coarse sentiment label attached to a mention.
type Sentiment string

// Sentiment labels.
const (
	SentimentPositive Sentiment = "Positive"
	SentimentNeutral  Sentiment = "Neutral"
	SentimentNegative Sentiment = "Negative"
)

// Score maps a sentiment label to a numeric value suitable for averaging:
// Positive 1.0, Neutral 0.5, Negative 0.0.
func (s Sentiment) Score() float64 {
	switch s {
	case SentimentPositive:
		return 1.0
	case SentimentNegative:
		return 0.0
	case SentimentNeutral:
		return 0.5
	default:
		return 0.5
	}
}

// Engagement counter keys. Which keys are present depends on the source.
const (
	EngagementLikes    = "likes"
	EngagementRetweets = "retweets"
	EngagementReplies  = "replies"
)

// ProductOther is the sentinel product tag for mentions that match no
// configured product name.
const ProductOther = "Other"

// Mention is one social post or comment treated as a unit of brand-demand
// signal. Product, Flavors and Sentiment are empty until the tagging and
// classification stages fill them; Timestamp is always UTC.
type Mention struct {
	Source     Source         `json:"source"`
	Text       string         `json:"text"`
	Timestamp  time.Time      `json:"timestamp"`
	Engagement map[string]int `json:"engagement,omitempty"`
	Product    string         `json:"product,omitempty"`
	Flavors    []string       `json:"flavors,omitempty"`
	Sentiment  Sentiment      `json:"sentiment,omitempty"`
}

// Date returns the day partition of the mention timestamp.
func (m Mention) Date() string {
	return DayKey(m.Timestamp)
}

// Quarter returns the quarter partition of the mention timestamp.
func (m Mention) Quarter() string {
	return QuarterKey(m.Timestamp)
}

// Year returns the year partition of the mention timestamp.
func (m Mention) Year() string {
	return YearKey(m.Timestamp)
}
