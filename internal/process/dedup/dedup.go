// Package dedup removes exact duplicate mentions from a batch. Overlapping
// fetch pages and videos surfacing twice in search results produce the same
// post more than once; counting it twice would skew every aggregate
// downstream. Matching is exact on (source, text, timestamp); near
// duplicates are kept, first occurrence wins.
package dedup

import (
	"github.com/rs/zerolog"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
)

const (
	logKeySource = "source"
	logKeyText   = "text"
)

type mentionKey struct {
	source domain.Source
	text   string
	unix   int64
}

// Result holds the deduplicated mentions and how many were dropped.
type Result struct {
	Mentions     []domain.Mention
	DroppedCount int
}

// Mentions drops exact duplicates, preserving input order and keeping the
// first occurrence. A nil logger disables drop logging.
func Mentions(mentions []domain.Mention, logger *zerolog.Logger) Result {
	result := Result{
		Mentions: make([]domain.Mention, 0, len(mentions)),
	}

	seen := make(map[mentionKey]struct{}, len(mentions))

	for _, m := range mentions {
		key := mentionKey{
			source: m.Source,
			text:   m.Text,
			unix:   m.Timestamp.UnixNano(),
		}

		if _, dup := seen[key]; dup {
			result.DroppedCount++

			if logger != nil {
				logger.Debug().
					Str(logKeySource, string(m.Source)).
					Str(logKeyText, truncateForLog(m.Text)).
					Msg("dropping duplicate mention")
			}

			continue
		}

		seen[key] = struct{}{}
		result.Mentions = append(result.Mentions, m)
	}

	return result
}

const logTextLimit = 80

func truncateForLog(text string) string {
	if len(text) <= logTextLimit {
		return text
	}

	return text[:logTextLimit] + "..."
}
