package aggregate

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
)

func enriched(product string, flavors []string, sentiment domain.Sentiment, ts time.Time) domain.Mention {
	return domain.Mention{
		Source:    domain.SourceTwitter,
		Text:      "text",
		Timestamp: ts,
		Product:   product,
		Flavors:   flavors,
		Sentiment: sentiment,
	}
}

func TestCountByPeriod(t *testing.T) {
	q1 := time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)
	q2 := time.Date(2024, time.May, 3, 18, 0, 0, 0, time.UTC)

	mentions := []domain.Mention{
		enriched("KitKat", nil, domain.SentimentPositive, q1),
		enriched("KitKat", nil, domain.SentimentNeutral, q1.Add(time.Hour)),
		enriched("Milo", nil, domain.SentimentNeutral, q1),
		enriched("KitKat", nil, domain.SentimentNegative, q2),
	}

	got := CountByPeriod(mentions, domain.GranularityQuarter)

	expected := []domain.AggregateBucket{
		{Period: "2024-Q1", Product: "KitKat", Count: 2},
		{Period: "2024-Q1", Product: "Milo", Count: 1},
		{Period: "2024-Q2", Product: "KitKat", Count: 1},
	}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("CountByPeriod = %+v, expected %+v", got, expected)
	}
}

func TestCountByPeriod_OrderIndependent(t *testing.T) {
	ts := time.Date(2024, time.February, 10, 9, 0, 0, 0, time.UTC)

	mentions := []domain.Mention{
		enriched("KitKat", nil, domain.SentimentPositive, ts),
		enriched("Milo", nil, domain.SentimentNeutral, ts.AddDate(0, 3, 0)),
		enriched("Other", nil, domain.SentimentNegative, ts.AddDate(0, 6, 0)),
		enriched("KitKat", nil, domain.SentimentNeutral, ts),
	}

	reversed := make([]domain.Mention, len(mentions))
	for i, m := range mentions {
		reversed[len(mentions)-1-i] = m
	}

	for _, g := range []domain.Granularity{domain.GranularityDay, domain.GranularityQuarter, domain.GranularityYear} {
		if !reflect.DeepEqual(CountByPeriod(mentions, g), CountByPeriod(reversed, g)) {
			t.Errorf("granularity %q: bucket counts depend on input order", g)
		}
	}
}

func TestCountByPeriod_NoZeroFill(t *testing.T) {
	mentions := []domain.Mention{
		enriched("KitKat", nil, domain.SentimentNeutral, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)),
		enriched("KitKat", nil, domain.SentimentNeutral, time.Date(2024, time.July, 1, 0, 0, 0, 0, time.UTC)),
	}

	got := CountByPeriod(mentions, domain.GranularityQuarter)

	if len(got) != 2 {
		t.Fatalf("expected 2 buckets, got %d: %+v", len(got), got)
	}

	for _, b := range got {
		if b.Period == "2024-Q2" {
			t.Error("empty quarter must not be materialized")
		}
	}
}

func TestCountByPeriod_EmptyInput(t *testing.T) {
	got := CountByPeriod(nil, domain.GranularityDay)

	if got == nil || len(got) != 0 {
		t.Errorf("empty input must yield an empty, non-nil slice, got %v", got)
	}
}

func TestFlavorBreakdown_FanOut(t *testing.T) {
	ts := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	mentions := []domain.Mention{
		enriched("KitKat", []string{"chocolate", "mint"}, domain.SentimentPositive, ts),
		enriched("KitKat", []string{"chocolate"}, domain.SentimentNeutral, ts),
		enriched("Milo", nil, domain.SentimentNeutral, ts),
	}

	got := FlavorBreakdown(mentions, domain.GranularityQuarter)

	expected := []domain.FlavorBucket{
		{Period: "2024-Q1", Product: "KitKat", Flavor: "chocolate", Count: 2},
		{Period: "2024-Q1", Product: "KitKat", Flavor: "mint", Count: 1},
	}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("FlavorBreakdown = %+v, expected %+v", got, expected)
	}

	total := 0
	for _, b := range got {
		total += b.Count
	}

	if total != 3 {
		t.Errorf("two-flavor mention must contribute one count per flavor, total = %d", total)
	}
}

func TestCountByHour(t *testing.T) {
	mentions := []domain.Mention{
		enriched("KitKat", nil, domain.SentimentNeutral, time.Date(2024, time.March, 1, 9, 15, 0, 0, time.UTC)),
		enriched("KitKat", nil, domain.SentimentNeutral, time.Date(2024, time.March, 2, 9, 45, 0, 0, time.UTC)),
		enriched("Milo", nil, domain.SentimentNeutral, time.Date(2024, time.March, 1, 23, 0, 0, 0, time.UTC)),
	}

	got := CountByHour(mentions)

	expected := []domain.HourBucket{
		{Hour: 9, Count: 2},
		{Hour: 23, Count: 1},
	}

	if !reflect.DeepEqual(got, expected) {
		t.Errorf("CountByHour = %+v, expected %+v", got, expected)
	}
}

func TestSentimentBreakdown(t *testing.T) {
	ts := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

	mentions := []domain.Mention{
		enriched("KitKat", nil, domain.SentimentPositive, ts),
		enriched("KitKat", nil, domain.SentimentNegative, ts),
		enriched("Milo", nil, domain.SentimentNeutral, ts),
		enriched("Milo", nil, domain.SentimentPositive, ts),
	}

	got := SentimentBreakdown(mentions)

	if got.Positive != 2 || got.Neutral != 1 || got.Negative != 1 {
		t.Errorf("label counts = %d/%d/%d", got.Positive, got.Neutral, got.Negative)
	}

	if got.MentionCount != 4 {
		t.Errorf("MentionCount = %d", got.MentionCount)
	}

	if math.Abs(got.AverageScore-0.625) > 1e-9 {
		t.Errorf("AverageScore = %f, expected 0.625", got.AverageScore)
	}
}

func TestSentimentBreakdown_Empty(t *testing.T) {
	got := SentimentBreakdown(nil)

	if got.MentionCount != 0 || got.AverageScore != 0 {
		t.Errorf("empty breakdown = %+v", got)
	}
}
