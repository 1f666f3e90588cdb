package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Refresh cadence bounds; the platform APIs rate-limit aggressively below
// ten seconds and data is too stale above five minutes.
const (
	MinRefreshInterval = 10 * time.Second
	MaxRefreshInterval = 300 * time.Second
)

// Platform API bounds on page sizes.
const (
	minTwitterResults = 10
	maxTwitterResults = 100
	minYouTubeResults = 1
	maxYouTubeResults = 50
)

type Config struct {
	AppEnv     string `env:"APP_ENV" envDefault:"local"`
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
	APIPort    int    `env:"API_PORT" envDefault:"8080"`
	HealthPort int    `env:"HEALTH_PORT" envDefault:"9090"`

	Brand    string   `env:"BRAND" envDefault:"Nestle"`
	Products []string `env:"PRODUCTS" envSeparator:"," envDefault:"KitKat,Maggi,Nescafe"`
	Flavors  []string `env:"FLAVORS" envSeparator:"," envDefault:"chocolate,vanilla,strawberry,caramel,mint,hazelnut"`

	PositiveWords []string `env:"POSITIVE_WORDS" envSeparator:"," envDefault:"love,great,awesome,best,delicious,yummy,excellent"`
	NegativeWords []string `env:"NEGATIVE_WORDS" envSeparator:"," envDefault:"hate,bad,terrible,worst,disgusting,awful"`

	// Languages is the allow-list for records carrying a language hint;
	// empty admits everything.
	Languages []string `env:"LANGUAGES" envSeparator:","`

	WindowDays      int           `env:"WINDOW_DAYS" envDefault:"7"`
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"60s"`
	DedupEnabled    bool          `env:"DEDUP_ENABLED" envDefault:"true"`

	TwitterBearerToken string `env:"TWITTER_BEARER_TOKEN"`
	TwitterMaxResults  int    `env:"TWITTER_MAX_RESULTS" envDefault:"100"`

	YouTubeAPIKey     string        `env:"YOUTUBE_API_KEY"`
	YouTubeBaseURL    string        `env:"YOUTUBE_BASE_URL" envDefault:"https://www.googleapis.com/youtube/v3"`
	YouTubeMaxResults int           `env:"YOUTUBE_MAX_RESULTS" envDefault:"50"`
	YouTubeTimeout    time.Duration `env:"YOUTUBE_TIMEOUT" envDefault:"30s"`
	YouTubeRPS        float64       `env:"YOUTUBE_RPS" envDefault:"2"`
	CommentsPerVideo  int           `env:"COMMENTS_PER_VIDEO" envDefault:"20"`

	// Circuit breaker for the fetch registry: consecutive failures before a
	// source is skipped, and how long it stays skipped.
	FetchFailureThreshold int           `env:"FETCH_FAILURE_THRESHOLD" envDefault:"3"`
	FetchCooldown         time.Duration `env:"FETCH_COOLDOWN" envDefault:"5m"`
}

func Load() (*Config, error) {
	_ = godotenv.Load() //nolint:errcheck // .env file is optional, error is expected when not present

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment config: %w", err)
	}

	applyBounds(cfg)

	return cfg, nil
}

func applyBounds(cfg *Config) {
	clampRefreshInterval(cfg)
	clampTwitterMaxResults(cfg)
	clampYouTubeMaxResults(cfg)
}

func clampRefreshInterval(cfg *Config) {
	if cfg.RefreshInterval < MinRefreshInterval {
		cfg.RefreshInterval = MinRefreshInterval
	}

	if cfg.RefreshInterval > MaxRefreshInterval {
		cfg.RefreshInterval = MaxRefreshInterval
	}
}

func clampTwitterMaxResults(cfg *Config) {
	if cfg.TwitterMaxResults < minTwitterResults {
		cfg.TwitterMaxResults = minTwitterResults
	}

	if cfg.TwitterMaxResults > maxTwitterResults {
		cfg.TwitterMaxResults = maxTwitterResults
	}
}

func clampYouTubeMaxResults(cfg *Config) {
	if cfg.YouTubeMaxResults < minYouTubeResults {
		cfg.YouTubeMaxResults = minYouTubeResults
	}

	if cfg.YouTubeMaxResults > maxYouTubeResults {
		cfg.YouTubeMaxResults = maxYouTubeResults
	}
}
