// Package aggregate rolls enriched mentions up into calendar-bucketed
// counts. Every function here is a pure grouping over its input: the same
// multiset of mentions yields the same buckets regardless of order, and
// only buckets with at least one mention are materialized; callers needing
// continuous series zero-fill themselves.
package aggregate

import (
	"sort"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
)

type bucketKey struct {
	period  string
	product string
}

type flavorKey struct {
	period  string
	product string
	flavor  string
}

// CountByPeriod groups mentions by (period, product) at the given
// granularity. Results are sorted by period, then product.
func CountByPeriod(mentions []domain.Mention, g domain.Granularity) []domain.AggregateBucket {
	counts := make(map[bucketKey]int)

	for _, m := range mentions {
		counts[bucketKey{period: domain.PeriodKey(g, m.Timestamp), product: m.Product}]++
	}

	buckets := make([]domain.AggregateBucket, 0, len(counts))

	for key, count := range counts {
		buckets = append(buckets, domain.AggregateBucket{
			Period:  key.period,
			Product: key.product,
			Count:   count,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Period != buckets[j].Period {
			return buckets[i].Period < buckets[j].Period
		}

		return buckets[i].Product < buckets[j].Product
	})

	return buckets
}

// FlavorBreakdown flattens each mention's flavor set into (period, product,
// flavor) triples and counts them: a mention tagged with N flavors
// contributes once to each of its N triples, not a split fraction. Results
// are sorted by period, product, then flavor.
func FlavorBreakdown(mentions []domain.Mention, g domain.Granularity) []domain.FlavorBucket {
	counts := make(map[flavorKey]int)

	for _, m := range mentions {
		period := domain.PeriodKey(g, m.Timestamp)

		for _, flavor := range m.Flavors {
			counts[flavorKey{period: period, product: m.Product, flavor: flavor}]++
		}
	}

	buckets := make([]domain.FlavorBucket, 0, len(counts))

	for key, count := range counts {
		buckets = append(buckets, domain.FlavorBucket{
			Period:  key.period,
			Product: key.product,
			Flavor:  key.flavor,
			Count:   count,
		})
	}

	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Period != buckets[j].Period {
			return buckets[i].Period < buckets[j].Period
		}

		if buckets[i].Product != buckets[j].Product {
			return buckets[i].Product < buckets[j].Product
		}

		return buckets[i].Flavor < buckets[j].Flavor
	})

	return buckets
}

// CountByHour profiles batch volume by hour of day (UTC), for the intraday
// chart. Hours without mentions are omitted.
func CountByHour(mentions []domain.Mention) []domain.HourBucket {
	var slots [24]int

	for _, m := range mentions {
		slots[m.Timestamp.UTC().Hour()]++
	}

	buckets := make([]domain.HourBucket, 0, len(slots))

	for hour, count := range slots {
		if count == 0 {
			continue
		}

		buckets = append(buckets, domain.HourBucket{Hour: hour, Count: count})
	}

	return buckets
}

// SentimentBreakdown tallies sentiment labels and the mean sentiment score
// across the batch.
func SentimentBreakdown(mentions []domain.Mention) domain.SentimentSummary {
	summary := domain.SentimentSummary{MentionCount: len(mentions)}

	if len(mentions) == 0 {
		return summary
	}

	var total float64

	for _, m := range mentions {
		total += m.Sentiment.Score()

		switch m.Sentiment {
		case domain.SentimentPositive:
			summary.Positive++
		case domain.SentimentNegative:
			summary.Negative++
		case domain.SentimentNeutral:
			summary.Neutral++
		}
	}

	summary.AverageScore = total / float64(len(mentions))

	return summary
}
