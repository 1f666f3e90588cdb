package domain

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// Granularity selects the calendar bucket size used for aggregation.
type Granularity string

// Supported bucket granularities.
const (
	GranularityDay     Granularity = "day"
	GranularityQuarter Granularity = "quarter"
	GranularityYear    Granularity = "year"
)

// ErrUnknownGranularity is returned when a granularity string is not one of
// day, quarter or year.
var ErrUnknownGranularity = errors.New("unknown granularity")

// ParseGranularity validates a granularity string from an external caller.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityDay, GranularityQuarter, GranularityYear:
		return Granularity(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownGranularity, s)
	}
}

// DayKey returns the day bucket key, e.g. "2024-03-15".
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// QuarterKey returns the quarter bucket key, e.g. "2024-Q1".
func QuarterKey(t time.Time) string {
	u := t.UTC()
	return fmt.Sprintf("%d-Q%d", u.Year(), (int(u.Month())-1)/3+1)
}

// YearKey returns the year bucket key, e.g. "2024".
func YearKey(t time.Time) string {
	return strconv.Itoa(t.UTC().Year())
}

// PeriodKey returns the bucket key of t at the given granularity. Within one
// granularity the keys sort chronologically as plain strings.
func PeriodKey(g Granularity, t time.Time) string {
	switch g {
	case GranularityQuarter:
		return QuarterKey(t)
	case GranularityYear:
		return YearKey(t)
	case GranularityDay:
		return DayKey(t)
	default:
		return DayKey(t)
	}
}

// AggregateBucket is the mention count of one (period, product) pair.
// Only buckets with at least one mention are materialized.
type AggregateBucket struct {
	Period  string `json:"period"`
	Product string `json:"product"`
	Count   int    `json:"count"`
}

// FlavorBucket is the mention count of one (period, product, flavor) triple.
// A mention tagged with N flavors contributes once to each of its N triples.
type FlavorBucket struct {
	Period  string `json:"period"`
	Product string `json:"product"`
	Flavor  string `json:"flavor"`
	Count   int    `json:"count"`
}

// ComparisonRow holds one product's mention counts for the two most recent
// periods. ChangePct divides by max(Previous, 1); the clamp keeps a
// zero-mention previous period from dividing by zero and is kept for
// compatibility with historical outputs, not as a general percentage rule.
type ComparisonRow struct {
	Product   string  `json:"product"`
	Current   int     `json:"current"`
	Previous  int     `json:"previous"`
	Change    int     `json:"change"`
	ChangePct float64 `json:"change_pct"`
}

// ComparisonTable compares the two most recent periods found in the data.
type ComparisonTable struct {
	Granularity    Granularity     `json:"granularity"`
	CurrentPeriod  string          `json:"current_period"`
	PreviousPeriod string          `json:"previous_period"`
	Rows           []ComparisonRow `json:"rows"`
}

// HourBucket is the mention count of one hour-of-day slot (0-23) across a
// batch, backing the intraday volume profile.
type HourBucket struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// SentimentSummary counts sentiment labels across a batch. AverageScore is
// the mean mention score (Positive 1.0, Neutral 0.5, Negative 0.0) and is 0
// when MentionCount is 0.
type SentimentSummary struct {
	Positive     int     `json:"positive"`
	Neutral      int     `json:"neutral"`
	Negative     int     `json:"negative"`
	MentionCount int     `json:"mention_count"`
	AverageScore float64 `json:"average_score"`
}

// TrajectoryPoint is one year's mention count for a product.
type TrajectoryPoint struct {
	Year  string `json:"year"`
	Count int    `json:"count"`
}

// Trajectory is a product's mention counts across all observed years,
// ordered chronologically.
type Trajectory struct {
	Product string            `json:"product"`
	Points  []TrajectoryPoint `json:"points"`
}
