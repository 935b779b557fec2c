package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/CalvinTheRed/BallotBot/internal/admin"
	"github.com/CalvinTheRed/BallotBot/internal/ballot"
	"github.com/CalvinTheRed/BallotBot/internal/config"
	"github.com/CalvinTheRed/BallotBot/internal/domain"
	"github.com/CalvinTheRed/BallotBot/internal/eligibility"
	"github.com/CalvinTheRed/BallotBot/internal/logging"
	"github.com/CalvinTheRed/BallotBot/internal/platform/retry"
	"github.com/CalvinTheRed/BallotBot/internal/reddit"
	"github.com/CalvinTheRed/BallotBot/internal/server"
	"github.com/CalvinTheRed/BallotBot/internal/store"
)

const commentBuffer = 64

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func setupLogging(cfg *config.Config) func() error {
	closeLog, err := logging.Init(cfg.LogLevel, cfg.LogFormat, cfg.AuditLogPath)
	if err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	slog.SetDefault(slog.Default().With("run_id", uuid.NewString()[:8]))
	return closeLog
}

// resolveTargetPost pins the vote post, either from config or by searching
// for the newest post carrying the configured flair. Rate limits back off
// before retrying; a missing post is permanent because retrying the same
// search seconds later cannot make it appear. Anything else retries normally.
func resolveTargetPost(ctx context.Context, cfg *config.Config, forum *reddit.Client) (string, error) {
	if cfg.TargetPostID != "" {
		return cfg.TargetPostID, nil
	}

	policy := retry.Policy{
		MaxAttempts:      5,
		InitialBackoff:   2 * time.Second,
		RateLimitBackoff: time.Minute,
		OnRetry: func(attempt int, err error, backoff time.Duration) {
			slog.Warn("Vote post lookup failed, retrying", "attempt", attempt, "backoff", backoff, "error", err)
		},
	}
	classify := func(err error) retry.Action {
		switch {
		case errors.Is(err, reddit.ErrRateLimited):
			return retry.After
		case errors.Is(err, reddit.ErrNotFound):
			return retry.Stop
		default:
			return retry.Retry
		}
	}

	post, err := retry.Do(ctx, policy, classify, func() (*domain.Post, error) {
		return forum.FindPostByFlair(ctx, cfg.PostFlair)
	})
	if err != nil {
		return "", err
	}
	slog.Info("Vote post resolved", "post_id", post.ID, "title", post.Title)
	return post.ID, nil
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()
	closeLog := setupLogging(cfg)
	defer func() { _ = closeLog() }()
	slog.Info("BallotBot starting", "env", cfg.AppEnv, "subreddit", cfg.Subreddit)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Shutdown signal received")
		cancel()
	}()

	forum := reddit.NewClient(reddit.Config{
		Credentials: reddit.Credentials{
			ClientID:     cfg.RedditClientID,
			ClientSecret: cfg.RedditClientSecret,
			Username:     cfg.RedditUsername,
			Password:     cfg.RedditPassword,
		},
		UserAgent:    cfg.RedditUserAgent,
		Subreddit:    cfg.Subreddit,
		PollInterval: cfg.PollInterval,
	}, clock)

	if err := forum.EnsureAuth(ctx); err != nil {
		slog.Error("Failed to authenticate with Reddit", "error", err)
		os.Exit(1)
	}

	postID, err := resolveTargetPost(ctx, cfg, forum)
	if err != nil {
		slog.Error("Failed to resolve vote post", "error", err)
		os.Exit(1)
	}

	userStore := store.NewFileStore(cfg.UserStorePath)
	resolver := eligibility.NewResolver(userStore, forum, eligibility.Config{
		Subreddit:    cfg.Subreddit,
		Cutoff:       cfg.CutoffDate,
		CommentDepth: cfg.CommentDepth,
		PostDepth:    cfg.PostDepth,
	})
	ledger := ballot.NewLedger(userStore)
	pipeline := ballot.NewPipeline(ballot.PipelineConfig{
		PostID:    postID,
		Subreddit: cfg.Subreddit,
		Cutoff:    cfg.CutoffDate,
		Options:   cfg.VoteOptions(),
	}, resolver, ledger, forum, forum)

	srv := server.New(cfg.MetricsAddr, forum.EnsureAuth)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Observability server failed", "error", err)
		}
	}()

	comments := make(chan domain.Comment, commentBuffer)
	go func() {
		if err := forum.StreamNewComments(ctx, comments); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Comment stream failed", "error", err)
		}
		close(comments)
	}()

	console := admin.NewConsole(userStore, forum, cancel)
	go console.Run(ctx, os.Stdin)

	pipeline.Run(ctx, comments)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Observability server shutdown error", "error", err)
	}
	slog.Info("BallotBot stopped")
}
