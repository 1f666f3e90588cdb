// Package pipeline turns per-source raw batches into a Snapshot: normalize,
// dedup, tag, classify, then aggregate and compare. A run never fails;
// skipped records and insufficient-data comparisons are states of the
// snapshot, not errors.
package pipeline

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
	"github.com/pulsecraft/brand-pulse/internal/platform/observability"
	"github.com/pulsecraft/brand-pulse/internal/process/aggregate"
	"github.com/pulsecraft/brand-pulse/internal/process/compare"
	"github.com/pulsecraft/brand-pulse/internal/process/dedup"
	"github.com/pulsecraft/brand-pulse/internal/process/engagement"
	"github.com/pulsecraft/brand-pulse/internal/process/normalize"
	"github.com/pulsecraft/brand-pulse/internal/process/sentiment"
	"github.com/pulsecraft/brand-pulse/internal/process/tagging"
)

type Pipeline struct {
	normalizer   *normalize.Normalizer
	tagger       *tagging.Tagger
	classifier   sentiment.Classifier
	dedupEnabled bool
	logger       *zerolog.Logger
}

func New(normalizer *normalize.Normalizer, tagger *tagging.Tagger, classifier sentiment.Classifier, dedupEnabled bool, logger *zerolog.Logger) *Pipeline {
	return &Pipeline{
		normalizer:   normalizer,
		tagger:       tagger,
		classifier:   classifier,
		dedupEnabled: dedupEnabled,
		logger:       logger,
	}
}

// Run builds a snapshot from the given batches. Identical batches produce an
// identical snapshot apart from the run ID and generation stamp.
func (p *Pipeline) Run(batches []domain.RawBatch, window domain.Window) *Snapshot {
	start := time.Now()
	runID := uuid.New().String()
	logger := p.logger.With().Str(LogFieldRunID, runID).Logger()

	snap := &Snapshot{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Window:      window,
		Sources:     make(map[string]SourceStats, len(batches)),
	}

	mentions, videos := p.collect(snap, batches)

	if p.dedupEnabled {
		res := dedup.Mentions(mentions, &logger)
		observability.MentionsDeduplicated.Add(float64(res.DroppedCount))

		snap.DuplicatesDropped = res.DroppedCount
		mentions = res.Mentions
	}

	p.enrich(mentions)

	if mentions == nil {
		mentions = []domain.Mention{}
	}

	snap.Mentions = mentions

	p.summarize(logger, snap, mentions, videos)

	logger.Info().
		Int(LogFieldCount, len(mentions)).
		Int("duplicates", snap.DuplicatesDropped).
		Dur("duration", time.Since(start)).
		Msg("pipeline run finished")

	observability.PipelineRunDurationSeconds.Observe(time.Since(start).Seconds())
	observability.PipelineRuns.WithLabelValues(StatusOK).Inc()
	observability.PipelineLastSuccessTimestamp.SetToCurrentTime()

	return snap
}

// collect normalizes every batch and records per-source stats. Batches keep
// their order so identical input yields identical mention order.
func (p *Pipeline) collect(snap *Snapshot, batches []domain.RawBatch) ([]domain.Mention, []domain.Video) {
	var (
		mentions []domain.Mention
		videos   []domain.Video
	)

	for _, batch := range batches {
		res := p.normalizer.Normalize(batch)
		src := string(batch.Source)

		snap.Sources[src] = SourceStats{
			Fetched:  len(batch.Records),
			Mentions: len(res.Mentions),
			Skipped:  res.Skipped,
		}

		observability.MentionsIngested.WithLabelValues(src).Add(float64(len(res.Mentions)))

		for reason, n := range res.Skipped {
			observability.MentionsSkipped.WithLabelValues(src, reason).Add(float64(n))
		}

		mentions = append(mentions, res.Mentions...)
		videos = append(videos, batch.Videos...)
	}

	return mentions, videos
}

// enrich assigns product, flavors and sentiment in place. Both stages are
// total: every mention comes out tagged and labeled.
func (p *Pipeline) enrich(mentions []domain.Mention) {
	for i := range mentions {
		mentions[i].Product = p.tagger.Product(mentions[i].Text)
		mentions[i].Flavors = p.tagger.Flavors(mentions[i].Text)
		mentions[i].Sentiment = p.classifier.Classify(mentions[i].Text)
	}
}

func (p *Pipeline) summarize(logger zerolog.Logger, snap *Snapshot, mentions []domain.Mention, videos []domain.Video) {
	snap.Aggregates = map[domain.Granularity][]domain.AggregateBucket{
		domain.GranularityDay:     aggregate.CountByPeriod(mentions, domain.GranularityDay),
		domain.GranularityQuarter: aggregate.CountByPeriod(mentions, domain.GranularityQuarter),
		domain.GranularityYear:    aggregate.CountByPeriod(mentions, domain.GranularityYear),
	}

	snap.Flavors = map[domain.Granularity][]domain.FlavorBucket{
		domain.GranularityDay:     aggregate.FlavorBreakdown(mentions, domain.GranularityDay),
		domain.GranularityQuarter: aggregate.FlavorBreakdown(mentions, domain.GranularityQuarter),
		domain.GranularityYear:    aggregate.FlavorBreakdown(mentions, domain.GranularityYear),
	}

	snap.HourlyVolume = aggregate.CountByHour(mentions)
	snap.Sentiment = aggregate.SentimentBreakdown(mentions)
	snap.Engagement = engagement.Summarize(videos)

	snap.QuarterlyComparison = comparisonFor(logger, snap.Aggregates[domain.GranularityQuarter], domain.GranularityQuarter)
	snap.YearlyComparison = comparisonFor(logger, snap.Aggregates[domain.GranularityYear], domain.GranularityYear)
	snap.Trajectories = compare.Trajectories(snap.Aggregates[domain.GranularityYear])

	p.exportSnapshotMetrics(snap, mentions)
}

func comparisonFor(logger zerolog.Logger, buckets []domain.AggregateBucket, g domain.Granularity) ComparisonResult {
	table, err := compare.Compare(buckets, g)
	if err != nil {
		if errors.Is(err, compare.ErrInsufficientData) {
			logger.Debug().Str(LogFieldGranularity, string(g)).Msg("not enough distinct periods to compare")
		} else {
			logger.Warn().Err(err).Str(LogFieldGranularity, string(g)).Msg("period comparison failed")
		}

		return ComparisonResult{Status: ComparisonInsufficientData}
	}

	return ComparisonResult{Status: ComparisonOK, Table: &table}
}

func (p *Pipeline) exportSnapshotMetrics(snap *Snapshot, mentions []domain.Mention) {
	perSource := make(map[string]int, len(snap.Sources))
	for _, m := range mentions {
		perSource[string(m.Source)]++
	}

	for src := range snap.Sources {
		observability.SnapshotMentions.WithLabelValues(src).Set(float64(perSource[src]))
	}

	observability.SnapshotSentiment.WithLabelValues(string(domain.SentimentPositive)).Set(float64(snap.Sentiment.Positive))
	observability.SnapshotSentiment.WithLabelValues(string(domain.SentimentNeutral)).Set(float64(snap.Sentiment.Neutral))
	observability.SnapshotSentiment.WithLabelValues(string(domain.SentimentNegative)).Set(float64(snap.Sentiment.Negative))
}
