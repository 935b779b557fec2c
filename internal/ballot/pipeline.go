package ballot

import (
	"context"
	"log/slog"
	"time"

	"github.com/CalvinTheRed/BallotBot/internal/domain"
	"github.com/CalvinTheRed/BallotBot/internal/metrics"
	"github.com/CalvinTheRed/BallotBot/internal/platform/correlation"
)

// Classifier decides whether a comment author may vote.
type Classifier interface {
	Classify(ctx context.Context, username string) bool
}

// PipelineConfig ties the pipeline to one vote post and one vote variant.
type PipelineConfig struct {
	PostID    string // fullname of the designated vote post
	Subreddit string
	Cutoff    time.Time
	Options   []string // accepted vote choices, already lower-case
}

// Pipeline drives the per-comment state machine: every comment on the vote
// post is removed from public view, and depending on the author's
// eligibility and the comment text a vote is recorded. The store is the only
// visible record of the vote.
type Pipeline struct {
	cfg      PipelineConfig
	resolver Classifier
	ledger   *Ledger
	mod      domain.CommentModerator
	notifier domain.Notifier
}

// NewPipeline creates a moderation pipeline.
func NewPipeline(cfg PipelineConfig, resolver Classifier, ledger *Ledger, mod domain.CommentModerator, notifier domain.Notifier) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		resolver: resolver,
		ledger:   ledger,
		mod:      mod,
		notifier: notifier,
	}
}

// Run consumes the live comment channel until ctx is done or the channel
// closes. Comments on other posts are skipped untouched. Per-comment
// failures are logged and never abort the loop.
func (p *Pipeline) Run(ctx context.Context, comments <-chan domain.Comment) {
	slog.Info("Moderation pipeline started", "post_id", p.cfg.PostID)
	for {
		select {
		case <-ctx.Done():
			slog.Info("Moderation pipeline stopped")
			return
		case c, ok := <-comments:
			if !ok {
				slog.Info("Comment stream closed, pipeline stopping")
				return
			}
			if c.PostID != p.cfg.PostID {
				continue
			}
			cctx := correlation.WithID(ctx, correlation.NewID())
			outcome := p.ProcessComment(cctx, c)
			metrics.CommentsProcessed.WithLabelValues(string(outcome)).Inc()
		}
	}
}

// ProcessComment runs the one-step state machine for a single comment. The
// branches are evaluated in strict priority order: eligibility first, then
// vote validity. Every branch removes the comment.
func (p *Pipeline) ProcessComment(ctx context.Context, c domain.Comment) domain.Outcome {
	if !p.resolver.Classify(ctx, c.Author) {
		p.remove(ctx, c)
		slog.InfoContext(ctx, "Removed comment from ineligible user", "user", c.Author)
		p.notify(ctx, c.Author, removedSubject, ineligibleBody(p.cfg.Subreddit, p.cfg.Cutoff))
		return domain.OutcomeNotEligible
	}

	choice, ok := ParseVote(c.Body, p.cfg.Options)
	if !ok {
		p.remove(ctx, c)
		slog.InfoContext(ctx, "Removed invalid vote comment", "user", c.Author, "body", choice)
		p.notify(ctx, c.Author, removedSubject, invalidVoteBody(p.cfg.Options))
		return domain.OutcomeInvalidVote
	}

	p.remove(ctx, c)
	p.ledger.Record(c.Author, choice)
	p.notify(ctx, c.Author, recordedSubject, recordedBody(choice))
	return domain.OutcomeVoteRecorded
}

func (p *Pipeline) remove(ctx context.Context, c domain.Comment) {
	if err := p.mod.RemoveComment(ctx, c.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to remove comment", "comment", c.ID, "error", err)
		metrics.RemovalErrors.Inc()
	}
}

func (p *Pipeline) notify(ctx context.Context, recipient, subject, body string) {
	if recipient == "" {
		return
	}
	if err := p.notifier.SendPrivateMessage(ctx, recipient, subject, body); err != nil {
		slog.ErrorContext(ctx, "Failed to notify user", "user", recipient, "error", err)
		metrics.NotificationsSent.WithLabelValues("error").Inc()
		return
	}
	metrics.NotificationsSent.WithLabelValues("sent").Inc()
}
