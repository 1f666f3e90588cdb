package api

import (
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
	"github.com/pulsecraft/brand-pulse/internal/process/engagement"
	"github.com/pulsecraft/brand-pulse/internal/process/pipeline"
)

type errorResponse struct {
	Error string `json:"error"`
}

type refreshResponse struct {
	Status string `json:"status"`
}

// summaryResponse is the KPI block of the latest run.
type summaryResponse struct {
	RunID             string                          `json:"run_id"`
	GeneratedAt       time.Time                       `json:"generated_at"`
	Window            domain.Window                   `json:"window"`
	Sources           map[string]pipeline.SourceStats `json:"sources"`
	DuplicatesDropped int                             `json:"duplicates_dropped"`
	MentionCount      int                             `json:"mention_count"`
	Sentiment         domain.SentimentSummary         `json:"sentiment"`
	Engagement        engagement.VideoSummary         `json:"engagement"`
}

type mentionsResponse struct {
	Total    int              `json:"total"`
	Mentions []domain.Mention `json:"mentions"`
}

type aggregatesResponse struct {
	Granularity domain.Granularity       `json:"granularity"`
	Buckets     []domain.AggregateBucket `json:"buckets"`
}

type flavorsResponse struct {
	Granularity domain.Granularity    `json:"granularity"`
	Buckets     []domain.FlavorBucket `json:"buckets"`
}

type trendsResponse struct {
	Trajectories []domain.Trajectory `json:"trajectories"`
}

type hourlyVolumeResponse struct {
	Hours []domain.HourBucket `json:"hours"`
}

// latest returns the current snapshot or answers 503 when no run has
// completed yet.
func (s *Server) latest(c *gin.Context) (*pipeline.Snapshot, bool) {
	snap := s.holder.Get()
	if snap == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "no snapshot yet"})
		return nil, false
	}

	return snap, true
}

func (s *Server) granularity(c *gin.Context) (domain.Granularity, bool) {
	raw := c.DefaultQuery(paramGranularity, string(domain.GranularityQuarter))

	granularity, err := domain.ParseGranularity(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return "", false
	}

	return granularity, true
}

func (s *Server) getSummary(c *gin.Context) {
	snap, ok := s.latest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, summaryResponse{
		RunID:             snap.RunID,
		GeneratedAt:       snap.GeneratedAt,
		Window:            snap.Window,
		Sources:           snap.Sources,
		DuplicatesDropped: snap.DuplicatesDropped,
		MentionCount:      len(snap.Mentions),
		Sentiment:         snap.Sentiment,
		Engagement:        snap.Engagement,
	})
}

func (s *Server) getMentions(c *gin.Context) {
	snap, ok := s.latest(c)
	if !ok {
		return
	}

	limit := defaultMentionLimit

	if raw := c.Query(paramLimit); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "limit must be a positive integer"})
			return
		}

		limit = parsed
	}

	source := c.Query(paramSource)
	product := c.Query(paramProduct)
	sentiment := c.Query(paramSentiment)

	filtered := make([]domain.Mention, 0, len(snap.Mentions))

	for _, m := range snap.Mentions {
		if source != "" && string(m.Source) != source {
			continue
		}

		if product != "" && m.Product != product {
			continue
		}

		if sentiment != "" && string(m.Sentiment) != sentiment {
			continue
		}

		filtered = append(filtered, m)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].Timestamp.After(filtered[j].Timestamp)
	})

	total := len(filtered)
	if total > limit {
		filtered = filtered[:limit]
	}

	c.JSON(http.StatusOK, mentionsResponse{
		Total:    total,
		Mentions: filtered,
	})
}

func (s *Server) getAggregates(c *gin.Context) {
	snap, ok := s.latest(c)
	if !ok {
		return
	}

	granularity, ok := s.granularity(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, aggregatesResponse{
		Granularity: granularity,
		Buckets:     snap.AggregatesFor(granularity),
	})
}

func (s *Server) getFlavors(c *gin.Context) {
	snap, ok := s.latest(c)
	if !ok {
		return
	}

	granularity, ok := s.granularity(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, flavorsResponse{
		Granularity: granularity,
		Buckets:     snap.FlavorsFor(granularity),
	})
}

func (s *Server) getComparison(c *gin.Context) {
	snap, ok := s.latest(c)
	if !ok {
		return
	}

	granularity, ok := s.granularity(c)
	if !ok {
		return
	}

	switch granularity {
	case domain.GranularityQuarter:
		c.JSON(http.StatusOK, snap.QuarterlyComparison)
	case domain.GranularityYear:
		c.JSON(http.StatusOK, snap.YearlyComparison)
	default:
		c.JSON(http.StatusBadRequest, errorResponse{Error: "comparison granularity must be quarter or year"})
	}
}

func (s *Server) getYearlyTrends(c *gin.Context) {
	snap, ok := s.latest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, trendsResponse{Trajectories: snap.Trajectories})
}

func (s *Server) getHourlyVolume(c *gin.Context) {
	snap, ok := s.latest(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, hourlyVolumeResponse{Hours: snap.HourlyVolume})
}

func (s *Server) postRefresh(c *gin.Context) {
	select {
	case s.trigger <- struct{}{}:
		c.JSON(http.StatusAccepted, refreshResponse{Status: "refresh scheduled"})
	default:
		c.JSON(http.StatusAccepted, refreshResponse{Status: "refresh already pending"})
	}
}
