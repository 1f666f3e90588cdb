package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
)

const (
	youtubeDefaultBaseURL = "https://www.googleapis.com/youtube/v3"
	youtubeDefaultTimeout = 30 * time.Second
	youtubeDefaultRPS     = 2 // Data API quota is 10k units/day, keep polling gentle

	youtubeDefaultComments = 20

	youtubeSearchPath   = "/search"
	youtubeVideosPath   = "/videos"
	youtubeCommentsPath = "/commentThreads"

	youtubeParamKey = "key"
)

var (
	errYouTubeNotConfigured    = errors.New("youtube api key not configured")
	errYouTubeUnexpectedStatus = errors.New("youtube unexpected status")
)

// YouTubeConfig holds configuration for the YouTube fetcher.
type YouTubeConfig struct {
	APIKey           string
	BaseURL          string
	Brand            string
	Products         []string
	MaxResults       int
	CommentsPerVideo int
	Timeout          time.Duration
	RequestsPerSec   float64
}

// YouTubeFetcher collects recent brand videos, their statistics and their
// top-level comments through the YouTube Data API v3.
type YouTubeFetcher struct {
	baseURL          string
	apiKey           string
	query            string
	maxResults       int
	commentsPerVideo int
	httpClient       *http.Client
	rateLimiter      *rate.Limiter
	enabled          bool
}

// NewYouTubeFetcher creates a YouTube fetcher instance.
func NewYouTubeFetcher(cfg YouTubeConfig) *YouTubeFetcher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = youtubeDefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = youtubeDefaultTimeout
	}

	rps := cfg.RequestsPerSec
	if rps <= 0 {
		rps = youtubeDefaultRPS
	}

	commentsPerVideo := cfg.CommentsPerVideo
	if commentsPerVideo <= 0 {
		commentsPerVideo = youtubeDefaultComments
	}

	return &YouTubeFetcher{
		baseURL:          strings.TrimRight(baseURL, "/"),
		apiKey:           cfg.APIKey,
		query:            buildYouTubeQuery(cfg.Brand, cfg.Products),
		maxResults:       cfg.MaxResults,
		commentsPerVideo: commentsPerVideo,
		httpClient:       &http.Client{Timeout: timeout},
		rateLimiter:      rate.NewLimiter(rate.Limit(rps), 1),
		enabled:          cfg.APIKey != "",
	}
}

// Source implements Fetcher.
func (f *YouTubeFetcher) Source() domain.Source {
	return domain.SourceYouTubeComment
}

// Fetch searches for brand videos published inside the window, then loads
// each video's statistics and up to CommentsPerVideo top-level comments.
// Videos with comments disabled are kept without comments.
func (f *YouTubeFetcher) Fetch(ctx context.Context, window domain.Window) (domain.RawBatch, error) {
	if !f.enabled {
		return domain.RawBatch{}, errYouTubeNotConfigured
	}

	ids, err := f.searchVideos(ctx, window)
	if err != nil {
		return domain.RawBatch{}, err
	}

	batch := domain.RawBatch{
		Source:    domain.SourceYouTubeComment,
		FetchedAt: time.Now().UTC(),
	}

	for _, id := range ids {
		video, found, err := f.videoStats(ctx, id)
		if err != nil {
			return domain.RawBatch{}, err
		}

		if !found {
			continue
		}

		batch.Videos = append(batch.Videos, video)

		comments, err := f.videoComments(ctx, id)
		if err != nil {
			// Comments disabled or restricted; the video still counts.
			continue
		}

		batch.Records = append(batch.Records, comments...)
	}

	return batch, nil
}

func (f *YouTubeFetcher) searchVideos(ctx context.Context, window domain.Window) ([]string, error) {
	params := url.Values{}
	params.Set("part", "id,snippet")
	params.Set("q", f.query)
	params.Set("type", "video")
	params.Set("order", "date")
	params.Set("maxResults", strconv.Itoa(f.maxResults))

	if !window.Start.IsZero() {
		params.Set("publishedAfter", window.Start.UTC().Format(time.RFC3339))
	}

	if !window.End.IsZero() {
		params.Set("publishedBefore", window.End.UTC().Format(time.RFC3339))
	}

	var resp youtubeSearchResponse
	if err := f.getJSON(ctx, youtubeSearchPath, params, &resp); err != nil {
		return nil, fmt.Errorf("youtube search: %w", err)
	}

	ids := make([]string, 0, len(resp.Items))

	for _, item := range resp.Items {
		if item.ID.VideoID == "" {
			continue
		}

		ids = append(ids, item.ID.VideoID)
	}

	return ids, nil
}

func (f *YouTubeFetcher) videoStats(ctx context.Context, videoID string) (domain.Video, bool, error) {
	params := url.Values{}
	params.Set("part", "statistics,snippet")
	params.Set("id", videoID)

	var resp youtubeVideosResponse
	if err := f.getJSON(ctx, youtubeVideosPath, params, &resp); err != nil {
		return domain.Video{}, false, fmt.Errorf("youtube videos: %w", err)
	}

	if len(resp.Items) == 0 {
		return domain.Video{}, false, nil
	}

	item := resp.Items[0]

	return domain.Video{
		VideoID:      videoID,
		Title:        item.Snippet.Title,
		PublishedAt:  item.Snippet.PublishedAt,
		ViewCount:    statCount(item.Statistics.ViewCount),
		LikeCount:    statCount(item.Statistics.LikeCount),
		CommentCount: statCount(item.Statistics.CommentCount),
	}, true, nil
}

func (f *YouTubeFetcher) videoComments(ctx context.Context, videoID string) ([]domain.RawRecord, error) {
	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("videoId", videoID)
	params.Set("maxResults", strconv.Itoa(f.commentsPerVideo))

	var resp youtubeCommentsResponse
	if err := f.getJSON(ctx, youtubeCommentsPath, params, &resp); err != nil {
		return nil, fmt.Errorf("youtube comments: %w", err)
	}

	records := make([]domain.RawRecord, 0, len(resp.Items))

	for _, item := range resp.Items {
		snippet := item.Snippet.TopLevelComment.Snippet
		records = append(records, domain.RawRecord{
			domain.RawFieldVideoID:     videoID,
			domain.RawFieldComment:     snippet.TextDisplay,
			domain.RawFieldLikeCount:   snippet.LikeCount,
			domain.RawFieldPublishedAt: snippet.PublishedAt,
		})
	}

	return records, nil
}

func (f *YouTubeFetcher) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	if err := f.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	params.Set(youtubeParamKey, f.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %d", errYouTubeUnexpectedStatus, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parse response: %w", err)
	}

	return nil
}

// statCount parses the string counters the videos endpoint returns; missing
// or mangled values count as zero.
func statCount(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}

	return n
}

func buildYouTubeQuery(brand string, products []string) string {
	if len(products) == 0 {
		return brand
	}

	return brand + " " + strings.Join(products, " ")
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"` //nolint:tagliatelle // YouTube Data API uses camelCase
		} `json:"id"`
	} `json:"items"`
}

type youtubeVideosResponse struct {
	Items []struct {
		Snippet struct {
			Title       string `json:"title"`
			PublishedAt string `json:"publishedAt"` //nolint:tagliatelle // YouTube Data API uses camelCase
		} `json:"snippet"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`    //nolint:tagliatelle // YouTube Data API uses camelCase
			LikeCount    string `json:"likeCount"`    //nolint:tagliatelle // YouTube Data API uses camelCase
			CommentCount string `json:"commentCount"` //nolint:tagliatelle // YouTube Data API uses camelCase
		} `json:"statistics"`
	} `json:"items"`
}

type youtubeCommentsResponse struct {
	Items []struct {
		Snippet struct {
			TopLevelComment struct {
				Snippet struct {
					TextDisplay string `json:"textDisplay"` //nolint:tagliatelle // YouTube Data API uses camelCase
					LikeCount   int    `json:"likeCount"`   //nolint:tagliatelle // YouTube Data API uses camelCase
					PublishedAt string `json:"publishedAt"` //nolint:tagliatelle // YouTube Data API uses camelCase
				} `json:"snippet"`
			} `json:"topLevelComment"` //nolint:tagliatelle // YouTube Data API uses camelCase
		} `json:"snippet"`
	} `json:"items"`
}
