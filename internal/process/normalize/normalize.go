// Package normalize converts heterogeneous fetched records into unified
// Mention stubs. Each source has exactly one field mapping here; no other
// package knows raw field names. The normalizer is a formatting adapter:
// it never touches the network and leaves product, flavor and sentiment
// tags for later stages.
package normalize

import (
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/rs/zerolog"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
	"github.com/pulsecraft/brand-pulse/internal/platform/htmlutils"
)

// Result is the outcome of normalizing one raw batch. Skipped maps a skip
// reason to the number of records dropped for it; dropped records never
// fail the batch.
type Result struct {
	Mentions []domain.Mention
	Skipped  map[string]int
}

// SkipCount returns the total number of records dropped.
func (r Result) SkipCount() int {
	total := 0
	for _, n := range r.Skipped {
		total += n
	}

	return total
}

// Normalizer maps raw source records onto Mention stubs. An optional
// language allow-list drops records whose language hint (only tweets carry
// one) matches none of the configured languages; records without a hint
// are never language-filtered.
type Normalizer struct {
	languages []string
	logger    *zerolog.Logger
}

// New creates a Normalizer. languages entries are compared by base language
// tag, case-insensitively; an empty list admits everything.
func New(languages []string, logger *zerolog.Logger) *Normalizer {
	normalized := make([]string, 0, len(languages))

	for _, lang := range languages {
		lang = baseLanguage(lang)
		if lang == "" {
			continue
		}

		normalized = append(normalized, lang)
	}

	return &Normalizer{languages: normalized, logger: logger}
}

// Normalize converts one fetched batch into Mention stubs, preserving
// record order. Records with a missing or unparseable timestamp are
// counted and skipped.
func (n *Normalizer) Normalize(batch domain.RawBatch) Result {
	res := Result{
		Mentions: make([]domain.Mention, 0, len(batch.Records)),
		Skipped:  make(map[string]int),
	}

	for _, rec := range batch.Records {
		mention, reason := n.convert(batch.Source, rec)
		if reason != "" {
			res.Skipped[reason]++

			n.logger.Debug().
				Str(logFieldSource, string(batch.Source)).
				Str(logFieldReason, reason).
				Msg("record skipped")

			continue
		}

		res.Mentions = append(res.Mentions, mention)
	}

	if res.SkipCount() > 0 {
		n.logger.Info().
			Str(logFieldSource, string(batch.Source)).
			Int(logFieldCount, res.SkipCount()).
			Msg("records skipped during normalization")
	}

	return res
}

func (n *Normalizer) convert(source domain.Source, rec domain.RawRecord) (domain.Mention, string) {
	switch source {
	case domain.SourceTwitter:
		return n.convertTweet(rec)
	case domain.SourceYouTubeComment:
		return n.convertComment(rec)
	default:
		return domain.Mention{}, ReasonUnknownSource
	}
}

func (n *Normalizer) convertTweet(rec domain.RawRecord) (domain.Mention, string) {
	ts, reason := timestampField(rec, domain.RawFieldCreatedAt)
	if reason != "" {
		return domain.Mention{}, reason
	}

	if !n.languageAllowed(stringField(rec, domain.RawFieldLang)) {
		return domain.Mention{}, ReasonLanguage
	}

	return domain.Mention{
		Source:    domain.SourceTwitter,
		Text:      stringField(rec, domain.RawFieldText),
		Timestamp: ts,
		Engagement: map[string]int{
			domain.EngagementLikes:    intField(rec, domain.RawFieldLikeCount),
			domain.EngagementRetweets: intField(rec, domain.RawFieldRetweetCount),
			domain.EngagementReplies:  intField(rec, domain.RawFieldReplyCount),
		},
	}, ""
}

func (n *Normalizer) convertComment(rec domain.RawRecord) (domain.Mention, string) {
	ts, reason := timestampField(rec, domain.RawFieldPublishedAt)
	if reason != "" {
		return domain.Mention{}, reason
	}

	return domain.Mention{
		Source:    domain.SourceYouTubeComment,
		Text:      htmlutils.CommentText(stringField(rec, domain.RawFieldComment)),
		Timestamp: ts,
		Engagement: map[string]int{
			domain.EngagementLikes: intField(rec, domain.RawFieldLikeCount),
		},
	}, ""
}

func (n *Normalizer) languageAllowed(lang string) bool {
	if len(n.languages) == 0 {
		return true
	}

	lang = baseLanguage(lang)
	if lang == "" || lang == "und" {
		return true
	}

	for _, allowed := range n.languages {
		if lang == allowed {
			return true
		}
	}

	return false
}

// baseLanguage reduces a language hint to its lower-cased base tag,
// e.g. "en-GB" to "en".
func baseLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if idx := strings.IndexByte(lang, '-'); idx >= 0 {
		lang = lang[:idx]
	}

	return lang
}

func stringField(rec domain.RawRecord, key string) string {
	if v, ok := rec[key].(string); ok {
		return v
	}

	return ""
}

// timestampField parses the named field tolerantly and returns it in UTC.
func timestampField(rec domain.RawRecord, key string) (time.Time, string) {
	v, ok := rec[key]
	if !ok || v == nil {
		return time.Time{}, ReasonMissingTimestamp
	}

	switch t := v.(type) {
	case time.Time:
		if t.IsZero() {
			return time.Time{}, ReasonMissingTimestamp
		}

		return t.UTC(), ""
	case string:
		if strings.TrimSpace(t) == "" {
			return time.Time{}, ReasonMissingTimestamp
		}

		parsed, err := dateparse.ParseAny(t)
		if err != nil {
			return time.Time{}, ReasonBadTimestamp
		}

		return parsed.UTC(), ""
	default:
		return time.Time{}, ReasonBadTimestamp
	}
}

// intField reads a numeric counter, defaulting malformed or negative
// values to zero.
func intField(rec domain.RawRecord, key string) int {
	var n int

	switch v := rec[key].(type) {
	case int:
		n = v
	case int32:
		n = int(v)
	case int64:
		n = int(v)
	case float64:
		n = int(v)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0
		}

		n = parsed
	default:
		return 0
	}

	if n < 0 {
		return 0
	}

	return n
}
