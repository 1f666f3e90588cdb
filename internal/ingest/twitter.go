package ingest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	twitter "github.com/g8rswimmer/go-twitter/v2"

	"github.com/pulsecraft/brand-pulse/internal/core/domain"
)

const (
	twitterHost           = "https://api.twitter.com"
	twitterDefaultTimeout = 30 * time.Second

	// Recent search rejects an end_time closer than about ten seconds to
	// now; windows ending nearer than this leave it unset and take the API
	// default.
	twitterEndTimeSlack = time.Minute
)

var errTwitterNotConfigured = errors.New("twitter bearer token not configured")

// bearerAuthorizer satisfies the go-twitter Authorizer interface with a
// static app-only bearer token.
type bearerAuthorizer struct {
	token string
}

func (a bearerAuthorizer) Add(req *http.Request) {
	req.Header.Add("Authorization", "Bearer "+a.token)
}

// TwitterConfig holds configuration for the Twitter fetcher.
type TwitterConfig struct {
	BearerToken string
	Brand       string
	Products    []string
	MaxResults  int
	Timeout     time.Duration
}

// TwitterFetcher collects recent tweets that mention the brand together
// with at least one tracked product.
type TwitterFetcher struct {
	client     *twitter.Client
	query      string
	maxResults int
	enabled    bool
}

// NewTwitterFetcher creates a Twitter fetcher instance.
func NewTwitterFetcher(cfg TwitterConfig) *TwitterFetcher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = twitterDefaultTimeout
	}

	return &TwitterFetcher{
		client: &twitter.Client{
			Authorizer: bearerAuthorizer{token: cfg.BearerToken},
			Client:     &http.Client{Timeout: timeout},
			Host:       twitterHost,
		},
		query:      buildTwitterQuery(cfg.Brand, cfg.Products),
		maxResults: cfg.MaxResults,
		enabled:    cfg.BearerToken != "",
	}
}

// Source implements Fetcher.
func (f *TwitterFetcher) Source() domain.Source {
	return domain.SourceTwitter
}

// Fetch runs one recent-search query for the window and maps the returned
// tweets to raw records.
func (f *TwitterFetcher) Fetch(ctx context.Context, window domain.Window) (domain.RawBatch, error) {
	if !f.enabled {
		return domain.RawBatch{}, errTwitterNotConfigured
	}

	opts := twitter.TweetRecentSearchOpts{
		MaxResults: f.maxResults,
		TweetFields: []twitter.TweetField{
			twitter.TweetFieldCreatedAt,
			twitter.TweetFieldPublicMetrics,
			twitter.TweetFieldLanguage,
		},
	}

	if !window.Start.IsZero() {
		opts.StartTime = window.Start.UTC()
	}

	if !window.End.IsZero() && time.Since(window.End) > twitterEndTimeSlack {
		opts.EndTime = window.End.UTC()
	}

	rsp, err := f.client.TweetRecentSearch(ctx, f.query, opts)
	if err != nil {
		return domain.RawBatch{}, fmt.Errorf("twitter recent search: %w", err)
	}

	batch := domain.RawBatch{
		Source:    domain.SourceTwitter,
		FetchedAt: time.Now().UTC(),
	}

	if rsp == nil || rsp.Raw == nil {
		return batch, nil
	}

	for _, tweet := range rsp.Raw.Tweets {
		if tweet == nil {
			continue
		}

		record := domain.RawRecord{
			domain.RawFieldText:      tweet.Text,
			domain.RawFieldCreatedAt: tweet.CreatedAt,
			domain.RawFieldLang:      tweet.Language,
		}

		if tweet.PublicMetrics != nil {
			record[domain.RawFieldLikeCount] = tweet.PublicMetrics.Likes
			record[domain.RawFieldRetweetCount] = tweet.PublicMetrics.Retweets
			record[domain.RawFieldReplyCount] = tweet.PublicMetrics.Replies
		}

		batch.Records = append(batch.Records, record)
	}

	return batch, nil
}

// buildTwitterQuery combines the brand with the product vocabulary as
// `Brand (P1 OR P2 OR ...)`. Without products the brand alone is the query.
func buildTwitterQuery(brand string, products []string) string {
	if len(products) == 0 {
		return brand
	}

	return fmt.Sprintf("%s (%s)", brand, strings.Join(products, " OR "))
}
