package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REDDIT_CLIENT_ID", "id")
	t.Setenv("REDDIT_CLIENT_SECRET", "secret")
	t.Setenv("REDDIT_USERNAME", "vote_bot")
	t.Setenv("REDDIT_PASSWORD", "hunter2")
	t.Setenv("SUBREDDIT", "dndhomebrew")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "Meta", cfg.PostFlair)
	assert.Equal(t, []string{"yes", "no", "indifferent"}, cfg.VoteOptions())
	assert.Equal(t, time.Date(2025, 4, 20, 0, 0, 0, 0, time.UTC), cfg.CutoffDate)
	assert.Equal(t, 50, cfg.CommentDepth)
	assert.Equal(t, 15, cfg.PostDepth)
	assert.Equal(t, 5*time.Second, cfg.PollInterval)
	assert.Equal(t, "known_users.json", cfg.UserStorePath)
	assert.Equal(t, "log.txt", cfg.AuditLogPath)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SUBREDDIT", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUBREDDIT")
}

func TestLoad_TwoOptionVariant(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VALID_VOTES", "yes,no")
	t.Setenv("COMMENT_DEPTH", "100")
	t.Setenv("POST_DEPTH", "100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"yes", "no"}, cfg.VoteOptions())
	assert.Equal(t, 100, cfg.CommentDepth)
	assert.Equal(t, 100, cfg.PostDepth)
}

func TestVoteOptions_NormalizesEntries(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VALID_VOTES", " YES , no ,, Indifferent ")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"yes", "no", "indifferent"}, cfg.VoteOptions())
}

func TestLoad_RejectsEmptyVoteSet(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("VALID_VOTES", " , ")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VALID_VOTES")
}

func TestLoad_RejectsNonPositiveDepths(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("COMMENT_DEPTH", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "COMMENT_DEPTH")
}
