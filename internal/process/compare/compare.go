// Package compare computes period-over-period deltas from aggregated
// buckets: the two most recent periods side by side, and full multi-year
// trajectories per product.
package compare

import (
	"errors"
	"sort"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
)

// ErrInsufficientData signals that fewer than two distinct periods were
// present, so no comparison exists. Callers report this state as-is instead
// of fabricating a zero previous period.
var ErrInsufficientData = errors.New("insufficient data for period comparison")

// Compare builds a comparison of the two most recent distinct periods found
// in buckets, by calendar order rather than data order. Products present in
// either period get a row; the missing side defaults to 0. ChangePct
// divides by max(previous, 1), the historical zero-denominator clamp kept
// for output compatibility.
func Compare(buckets []domain.AggregateBucket, g domain.Granularity) (domain.ComparisonTable, error) {
	periods := distinctPeriods(buckets)
	if len(periods) < 2 {
		return domain.ComparisonTable{}, ErrInsufficientData
	}

	current := periods[len(periods)-1]
	previous := periods[len(periods)-2]

	currentCounts := productCounts(buckets, current)
	previousCounts := productCounts(buckets, previous)

	products := make([]string, 0, len(currentCounts)+len(previousCounts))

	for product := range currentCounts {
		products = append(products, product)
	}

	for product := range previousCounts {
		if _, ok := currentCounts[product]; !ok {
			products = append(products, product)
		}
	}

	sort.Strings(products)

	rows := make([]domain.ComparisonRow, 0, len(products))

	for _, product := range products {
		cur := currentCounts[product]
		prev := previousCounts[product]
		change := cur - prev

		denominator := prev
		if denominator < 1 {
			denominator = 1
		}

		rows = append(rows, domain.ComparisonRow{
			Product:   product,
			Current:   cur,
			Previous:  prev,
			Change:    change,
			ChangePct: float64(change) / float64(denominator) * 100,
		})
	}

	return domain.ComparisonTable{
		Granularity:    g,
		CurrentPeriod:  current,
		PreviousPeriod: previous,
		Rows:           rows,
	}, nil
}

// Trajectories expands year-granularity buckets into one series per
// product, zero-filling every observed year so multi-point views stay
// continuous. Products and points are ordered.
func Trajectories(yearBuckets []domain.AggregateBucket) []domain.Trajectory {
	years := distinctPeriods(yearBuckets)
	if len(years) == 0 {
		return []domain.Trajectory{}
	}

	counts := make(map[string]map[string]int)

	for _, b := range yearBuckets {
		if counts[b.Product] == nil {
			counts[b.Product] = make(map[string]int, len(years))
		}

		counts[b.Product][b.Period] += b.Count
	}

	products := make([]string, 0, len(counts))
	for product := range counts {
		products = append(products, product)
	}

	sort.Strings(products)

	trajectories := make([]domain.Trajectory, 0, len(products))

	for _, product := range products {
		points := make([]domain.TrajectoryPoint, 0, len(years))

		for _, year := range years {
			points = append(points, domain.TrajectoryPoint{Year: year, Count: counts[product][year]})
		}

		trajectories = append(trajectories, domain.Trajectory{Product: product, Points: points})
	}

	return trajectories
}

func distinctPeriods(buckets []domain.AggregateBucket) []string {
	seen := make(map[string]struct{})

	for _, b := range buckets {
		seen[b.Period] = struct{}{}
	}

	periods := make([]string, 0, len(seen))
	for period := range seen {
		periods = append(periods, period)
	}

	// Period keys sort chronologically as strings within one granularity.
	sort.Strings(periods)

	return periods
}

func productCounts(buckets []domain.AggregateBucket, period string) map[string]int {
	counts := make(map[string]int)

	for _, b := range buckets {
		if b.Period == period {
			counts[b.Product] += b.Count
		}
	}

	return counts
}
