// Package metrics defines the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics
var (
	// CommentsProcessed counts comments on the vote post by terminal outcome.
	CommentsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ballot_comments_processed_total",
			Help: "Comments processed on the vote post by outcome",
		},
		[]string{"outcome"},
	)

	// VotesRecorded counts recorded votes by choice. Re-votes count again.
	VotesRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ballot_votes_recorded_total",
			Help: "Votes recorded by choice (re-votes counted again)",
		},
		[]string{"choice"},
	)

	// RemovalErrors counts failed comment removals.
	RemovalErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "ballot_removal_errors_total",
			Help: "Comment removals that failed",
		},
	)

	// NotificationsSent counts private messages by delivery status.
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ballot_notifications_total",
			Help: "Private messages sent by status (sent/error)",
		},
		[]string{"status"},
	)
)

// Eligibility metrics
var (
	// EligibilityChecks counts classifications by verdict and how the verdict
	// was reached (cached, comment, submission, no_history, unverified,
	// breaker_open, admin).
	EligibilityChecks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_checks_total",
			Help: "Eligibility classifications by verdict and source",
		},
		[]string{"verdict", "source"},
	)

	// ActivityLookupErrors counts failed user history lookups.
	ActivityLookupErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "eligibility_activity_lookup_errors_total",
			Help: "User history lookups that failed",
		},
	)

	// BreakerStateChanges tracks circuit breaker transitions on the activity
	// lookup path.
	BreakerStateChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "eligibility_breaker_state_changes_total",
			Help: "Activity lookup circuit breaker state transitions",
		},
		[]string{"state"},
	)
)

// Store metrics
var (
	// StoreSaves counts successful full rewrites of the user store file.
	StoreSaves = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_saves_total",
			Help: "Successful user store writes",
		},
	)

	// StoreSaveErrors counts failed user store writes.
	StoreSaveErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_save_errors_total",
			Help: "User store writes that failed",
		},
	)

	// StoreLoadErrors counts unreadable or corrupt store files encountered on
	// load. Each one means the store was reset to empty.
	StoreLoadErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "store_load_errors_total",
			Help: "User store loads that fell back to an empty store",
		},
	)
)

// Forum client metrics
var (
	// RedditRequests counts API calls by endpoint and status class.
	RedditRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reddit_requests_total",
			Help: "Reddit API requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)
)
