package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
	"github.com/pulsecraft/brand-pulse/internal/process/pipeline"
	"github.com/pulsecraft/brand-pulse/internal/snapshot"
)

func testServer(snap *pipeline.Snapshot, trigger chan struct{}) *Server {
	logger := zerolog.Nop()
	holder := snapshot.NewHolder()

	if snap != nil {
		holder.Set(snap)
	}

	return NewServer(0, holder, trigger, &logger)
}

func testSnapshot() *pipeline.Snapshot {
	return &pipeline.Snapshot{
		RunID:             "run-1",
		GeneratedAt:       time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
		DuplicatesDropped: 1,
		Sources: map[string]pipeline.SourceStats{
			string(domain.SourceTwitter): {Fetched: 3, Mentions: 3},
		},
		Mentions: []domain.Mention{
			{
				Source:    domain.SourceTwitter,
				Text:      "old kitkat",
				Timestamp: time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC),
				Product:   "KitKat",
				Sentiment: domain.SentimentPositive,
			},
			{
				Source:    domain.SourceYouTubeComment,
				Text:      "new milo",
				Timestamp: time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC),
				Product:   "Milo",
				Sentiment: domain.SentimentNegative,
			},
			{
				Source:    domain.SourceTwitter,
				Text:      "mid kitkat",
				Timestamp: time.Date(2025, 5, 10, 9, 0, 0, 0, time.UTC),
				Product:   "KitKat",
				Sentiment: domain.SentimentNeutral,
			},
		},
		Aggregates: map[domain.Granularity][]domain.AggregateBucket{
			domain.GranularityDay: {
				{Period: "2025-04-01", Product: "KitKat", Count: 1},
			},
			domain.GranularityQuarter: {
				{Period: "2025-Q2", Product: "KitKat", Count: 2},
				{Period: "2025-Q2", Product: "Milo", Count: 1},
			},
			domain.GranularityYear: {
				{Period: "2025", Product: "KitKat", Count: 2},
			},
		},
		Flavors: map[domain.Granularity][]domain.FlavorBucket{
			domain.GranularityQuarter: {
				{Period: "2025-Q2", Product: "KitKat", Flavor: "chocolate", Count: 1},
			},
		},
		QuarterlyComparison: pipeline.ComparisonResult{
			Status: pipeline.ComparisonOK,
			Table: &domain.ComparisonTable{
				Granularity:    domain.GranularityQuarter,
				CurrentPeriod:  "2025-Q2",
				PreviousPeriod: "2025-Q1",
				Rows: []domain.ComparisonRow{
					{Product: "KitKat", Current: 2, Previous: 1, Change: 1, ChangePct: 100},
				},
			},
		},
		YearlyComparison: pipeline.ComparisonResult{Status: pipeline.ComparisonInsufficientData},
		Trajectories: []domain.Trajectory{
			{Product: "KitKat", Points: []domain.TrajectoryPoint{{Year: "2025", Count: 2}}},
		},
		Sentiment: domain.SentimentSummary{
			Positive: 1, Neutral: 1, Negative: 1, MentionCount: 3, AverageScore: 0.5,
		},
		HourlyVolume: []domain.HourBucket{{Hour: 8, Count: 1}, {Hour: 9, Count: 1}},
	}
}

func doRequest(router *gin.Engine, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v (body %s)", err, w.Body.String())
	}

	return out
}

func TestGetSummary_NoSnapshot(t *testing.T) {
	router := testServer(nil, nil).Router()

	w := doRequest(router, http.MethodGet, "/api/v1/summary")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}

	resp := decode[errorResponse](t, w)
	if resp.Error != "no snapshot yet" {
		t.Errorf("error = %q, want %q", resp.Error, "no snapshot yet")
	}
}

func TestGetSummary(t *testing.T) {
	router := testServer(testSnapshot(), nil).Router()

	w := doRequest(router, http.MethodGet, "/api/v1/summary")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decode[summaryResponse](t, w)

	if resp.RunID != "run-1" {
		t.Errorf("run_id = %q, want %q", resp.RunID, "run-1")
	}

	if resp.MentionCount != 3 {
		t.Errorf("mention_count = %d, want 3", resp.MentionCount)
	}

	if resp.DuplicatesDropped != 1 {
		t.Errorf("duplicates_dropped = %d, want 1", resp.DuplicatesDropped)
	}

	if resp.Sentiment.AverageScore != 0.5 {
		t.Errorf("sentiment.average_score = %v, want 0.5", resp.Sentiment.AverageScore)
	}

	if resp.Sources[string(domain.SourceTwitter)].Fetched != 3 {
		t.Errorf("sources.twitter.fetched = %d, want 3", resp.Sources[string(domain.SourceTwitter)].Fetched)
	}
}

func TestGetMentions_NewestFirst(t *testing.T) {
	router := testServer(testSnapshot(), nil).Router()

	w := doRequest(router, http.MethodGet, "/api/v1/mentions")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decode[mentionsResponse](t, w)

	if resp.Total != 3 {
		t.Fatalf("total = %d, want 3", resp.Total)
	}

	want := []string{"new milo", "mid kitkat", "old kitkat"}
	for i, text := range want {
		if resp.Mentions[i].Text != text {
			t.Errorf("mentions[%d].Text = %q, want %q", i, resp.Mentions[i].Text, text)
		}
	}
}

func TestGetMentions_FiltersAndLimit(t *testing.T) {
	router := testServer(testSnapshot(), nil).Router()

	w := doRequest(router, http.MethodGet, "/api/v1/mentions?source=twitter&product=KitKat&limit=1")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decode[mentionsResponse](t, w)

	if resp.Total != 2 {
		t.Errorf("total = %d, want 2 (limit applies after counting)", resp.Total)
	}

	if len(resp.Mentions) != 1 {
		t.Fatalf("len(mentions) = %d, want 1", len(resp.Mentions))
	}

	if resp.Mentions[0].Text != "mid kitkat" {
		t.Errorf("mentions[0].Text = %q, want %q (newest matching)", resp.Mentions[0].Text, "mid kitkat")
	}

	w = doRequest(router, http.MethodGet, "/api/v1/mentions?sentiment=Negative")
	resp = decode[mentionsResponse](t, w)

	if resp.Total != 1 || resp.Mentions[0].Product != "Milo" {
		t.Errorf("sentiment filter: total = %d, mentions = %+v", resp.Total, resp.Mentions)
	}
}

func TestGetMentions_BadLimit(t *testing.T) {
	router := testServer(testSnapshot(), nil).Router()

	for _, raw := range []string{"abc", "0", "-5"} {
		w := doRequest(router, http.MethodGet, "/api/v1/mentions?limit="+raw)
		if w.Code != http.StatusBadRequest {
			t.Errorf("limit=%q: status = %d, want %d", raw, w.Code, http.StatusBadRequest)
		}
	}
}

func TestGetAggregates(t *testing.T) {
	router := testServer(testSnapshot(), nil).Router()

	// Default granularity is quarter.
	w := doRequest(router, http.MethodGet, "/api/v1/aggregates")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decode[aggregatesResponse](t, w)

	if resp.Granularity != domain.GranularityQuarter {
		t.Errorf("granularity = %q, want %q", resp.Granularity, domain.GranularityQuarter)
	}

	if len(resp.Buckets) != 2 {
		t.Errorf("len(buckets) = %d, want 2", len(resp.Buckets))
	}

	w = doRequest(router, http.MethodGet, "/api/v1/aggregates?granularity=day")
	resp = decode[aggregatesResponse](t, w)

	if len(resp.Buckets) != 1 || resp.Buckets[0].Period != "2025-04-01" {
		t.Errorf("day buckets = %+v", resp.Buckets)
	}

	w = doRequest(router, http.MethodGet, "/api/v1/aggregates?granularity=month")
	if w.Code != http.StatusBadRequest {
		t.Errorf("granularity=month: status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetFlavors(t *testing.T) {
	router := testServer(testSnapshot(), nil).Router()

	w := doRequest(router, http.MethodGet, "/api/v1/flavors?granularity=quarter")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decode[flavorsResponse](t, w)

	if len(resp.Buckets) != 1 || resp.Buckets[0].Flavor != "chocolate" {
		t.Errorf("flavor buckets = %+v", resp.Buckets)
	}
}

func TestGetComparison(t *testing.T) {
	router := testServer(testSnapshot(), nil).Router()

	w := doRequest(router, http.MethodGet, "/api/v1/comparison")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decode[pipeline.ComparisonResult](t, w)

	if resp.Status != pipeline.ComparisonOK {
		t.Errorf("status = %q, want %q", resp.Status, pipeline.ComparisonOK)
	}

	if resp.Table == nil || resp.Table.CurrentPeriod != "2025-Q2" {
		t.Errorf("table = %+v", resp.Table)
	}

	// Single observed year: still HTTP 200, the payload carries the state.
	w = doRequest(router, http.MethodGet, "/api/v1/comparison?granularity=year")
	if w.Code != http.StatusOK {
		t.Fatalf("year status = %d, want %d", w.Code, http.StatusOK)
	}

	resp = decode[pipeline.ComparisonResult](t, w)

	if resp.Status != pipeline.ComparisonInsufficientData {
		t.Errorf("year status = %q, want %q", resp.Status, pipeline.ComparisonInsufficientData)
	}

	if resp.Table != nil {
		t.Errorf("year table = %+v, want nil", resp.Table)
	}

	w = doRequest(router, http.MethodGet, "/api/v1/comparison?granularity=day")
	if w.Code != http.StatusBadRequest {
		t.Errorf("granularity=day: status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGetYearlyTrends(t *testing.T) {
	router := testServer(testSnapshot(), nil).Router()

	w := doRequest(router, http.MethodGet, "/api/v1/trends/yearly")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decode[trendsResponse](t, w)

	if len(resp.Trajectories) != 1 || resp.Trajectories[0].Product != "KitKat" {
		t.Errorf("trajectories = %+v", resp.Trajectories)
	}
}

func TestGetHourlyVolume(t *testing.T) {
	router := testServer(testSnapshot(), nil).Router()

	w := doRequest(router, http.MethodGet, "/api/v1/volume/hourly")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	resp := decode[hourlyVolumeResponse](t, w)

	if len(resp.Hours) != 2 || resp.Hours[0].Hour != 8 {
		t.Errorf("hours = %+v", resp.Hours)
	}
}

func TestPostRefresh(t *testing.T) {
	trigger := make(chan struct{}, 1)
	router := testServer(nil, trigger).Router()

	w := doRequest(router, http.MethodPost, "/api/v1/refresh")
	if w.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusAccepted)
	}

	resp := decode[refreshResponse](t, w)
	if resp.Status != "refresh scheduled" {
		t.Errorf("status = %q, want %q", resp.Status, "refresh scheduled")
	}

	// The buffered trigger still holds the first request.
	w = doRequest(router, http.MethodPost, "/api/v1/refresh")
	resp = decode[refreshResponse](t, w)

	if resp.Status != "refresh already pending" {
		t.Errorf("status = %q, want %q", resp.Status, "refresh already pending")
	}

	select {
	case <-trigger:
	default:
		t.Error("trigger channel should hold the refresh request")
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	router := testServer(nil, nil).Router()
	router.GET("/boom", func(*gin.Context) {
		panic("boom")
	})

	w := doRequest(router, http.MethodGet, "/boom")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}

	resp := decode[errorResponse](t, w)
	if resp.Error != "internal error" {
		t.Errorf("error = %q, want %q", resp.Error, "internal error")
	}
}
