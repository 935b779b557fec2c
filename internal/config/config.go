package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv       string `env:"APP_ENV" default:"development"`
	LogLevel     string `env:"LOG_LEVEL" default:"info"`
	LogFormat    string `env:"LOG_FORMAT" default:"text"`
	AuditLogPath string `env:"AUDIT_LOG_PATH" default:"log.txt"`
	MetricsAddr  string `env:"METRICS_ADDR" default:":8080"`

	RedditClientID     string `env:"REDDIT_CLIENT_ID"`
	RedditClientSecret string `env:"REDDIT_CLIENT_SECRET"`
	RedditUsername     string `env:"REDDIT_USERNAME"`
	RedditPassword     string `env:"REDDIT_PASSWORD"`
	RedditUserAgent    string `env:"REDDIT_USER_AGENT" default:"ballotbot/1.0"`

	Subreddit string `env:"SUBREDDIT"`
	PostFlair string `env:"POST_FLAIR" default:"Meta"`
	// TargetPostID pins the vote post directly, skipping the flair search.
	TargetPostID string `env:"TARGET_POST_ID"`

	// ValidVotes is the comma-separated vote option set for the active
	// variant, e.g. "yes,no" or "yes,no,indifferent".
	ValidVotes   string    `env:"VALID_VOTES" default:"yes,no,indifferent"`
	CutoffDate   time.Time `env:"CUTOFF_DATE" default:"2025-04-20T00:00:00Z"`
	CommentDepth int       `env:"COMMENT_DEPTH" default:"50"`
	PostDepth    int       `env:"POST_DEPTH" default:"15"`

	PollInterval  time.Duration `env:"POLL_INTERVAL" default:"5s"`
	UserStorePath string        `env:"USER_STORE_PATH" default:"known_users.json"`
}

// VoteOptions returns the accepted vote choices, normalized to lower case.
func (c *Config) VoteOptions() []string {
	parts := strings.Split(c.ValidVotes, ",")
	options := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			options = append(options, p)
		}
	}
	return options
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	required := map[string]string{
		"REDDIT_CLIENT_ID":     cfg.RedditClientID,
		"REDDIT_CLIENT_SECRET": cfg.RedditClientSecret,
		"REDDIT_USERNAME":      cfg.RedditUsername,
		"REDDIT_PASSWORD":      cfg.RedditPassword,
		"SUBREDDIT":            cfg.Subreddit,
	}
	for name, value := range required {
		if value == "" {
			return fmt.Errorf("%s is required", name)
		}
	}

	if len(cfg.VoteOptions()) == 0 {
		return fmt.Errorf("VALID_VOTES must name at least one option")
	}
	if cfg.CutoffDate.IsZero() {
		return fmt.Errorf("CUTOFF_DATE is required")
	}
	if cfg.CommentDepth <= 0 || cfg.PostDepth <= 0 {
		return fmt.Errorf("COMMENT_DEPTH and POST_DEPTH must be positive")
	}
	if cfg.PollInterval <= 0 {
		return fmt.Errorf("POLL_INTERVAL must be positive")
	}

	return nil
}
