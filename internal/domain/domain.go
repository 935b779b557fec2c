package domain

import (
	"context"
	"slices"
	"time"
)

// --- Model types ---

// UserData is the persisted user aggregate: cached eligibility verdicts plus
// every recorded vote. Usernames are stored normalized to lower case. A name
// is never present in both Whitelist and Blacklist at the same time.
type UserData struct {
	Whitelist []string          `json:"whitelist"`
	Blacklist []string          `json:"blacklist"`
	Votes     map[string]string `json:"votes"`
}

// NewUserData returns an empty aggregate with all containers initialized.
func NewUserData() UserData {
	return UserData{
		Whitelist: []string{},
		Blacklist: []string{},
		Votes:     map[string]string{},
	}
}

// Whitelisted reports whether name has a cached eligible verdict.
func (d UserData) Whitelisted(name string) bool {
	return slices.Contains(d.Whitelist, name)
}

// Blacklisted reports whether name has a cached ineligible verdict.
func (d UserData) Blacklisted(name string) bool {
	return slices.Contains(d.Blacklist, name)
}

// AddToWhitelist records an eligible verdict for name, dropping any cached
// ineligible verdict so the two sets stay disjoint.
func (d *UserData) AddToWhitelist(name string) {
	d.Blacklist = slices.DeleteFunc(d.Blacklist, func(n string) bool { return n == name })
	if !d.Whitelisted(name) {
		d.Whitelist = append(d.Whitelist, name)
	}
}

// AddToBlacklist records an ineligible verdict for name, dropping any cached
// eligible verdict so the two sets stay disjoint.
func (d *UserData) AddToBlacklist(name string) {
	d.Whitelist = slices.DeleteFunc(d.Whitelist, func(n string) bool { return n == name })
	if !d.Blacklisted(name) {
		d.Blacklist = append(d.Blacklist, name)
	}
}

// Comment is a single comment as delivered by the forum client.
type Comment struct {
	ID        string // fullname, e.g. "t1_abc123"
	Author    string // empty when the account was deleted
	Body      string
	PostID    string // fullname of the parent submission
	CreatedAt time.Time
}

// Post is a submission located by the flair search.
type Post struct {
	ID    string // fullname, e.g. "t3_abc123"
	Title string
	URL   string
}

// ActivityKind selects which slice of a user's history to fetch.
type ActivityKind string

const (
	KindComments    ActivityKind = "comments"
	KindSubmissions ActivityKind = "submitted"
)

// ActivityItem is one entry of a user's history, reduced to the two fields
// eligibility cares about.
type ActivityItem struct {
	Subreddit string
	CreatedAt time.Time
}

// Outcome is the terminal state of the moderation pipeline for one comment.
type Outcome string

const (
	OutcomeNotEligible  Outcome = "not_eligible"
	OutcomeInvalidVote  Outcome = "invalid_vote"
	OutcomeVoteRecorded Outcome = "vote_recorded"
)

// --- Interfaces ---

// ActivitySource fetches up to limit entries of a user's recent history,
// newest first.
type ActivitySource interface {
	UserActivity(ctx context.Context, username string, kind ActivityKind, limit int) ([]ActivityItem, error)
}

// CommentModerator removes comments from public view.
type CommentModerator interface {
	RemoveComment(ctx context.Context, commentID string) error
}

// Notifier delivers private messages to users.
type Notifier interface {
	SendPrivateMessage(ctx context.Context, recipient, subject, body string) error
}

// CommentStream pushes new subreddit comments into out as they arrive,
// blocking until ctx is done.
type CommentStream interface {
	StreamNewComments(ctx context.Context, out chan<- Comment) error
}

// PostFinder locates the newest submission carrying a flair.
type PostFinder interface {
	FindPostByFlair(ctx context.Context, flair string) (*Post, error)
}

// ForumClient is the full forum surface the bot consumes.
type ForumClient interface {
	PostFinder
	CommentStream
	CommentModerator
	Notifier
	ActivitySource
}
