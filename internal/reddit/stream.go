package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/CalvinTheRed/BallotBot/internal/domain"
)

const (
	fetchLimit = 100
	// maxSeen bounds the dedup set. Fullnames are evicted oldest-first once
	// the bound is hit; old entries are long outside the fetch window by then.
	maxSeen = 1000

	deletedAuthor = "[deleted]"
)

// StreamNewComments polls the subreddit's newest comments and pushes unseen
// ones into out, oldest first. Comments that already existed when the stream
// started are skipped, so a restart picks up from "new" only. Blocks until
// ctx is done; poll failures are logged and the next tick tries again.
func (c *Client) StreamNewComments(ctx context.Context, out chan<- domain.Comment) error {
	seen := make(map[string]struct{})
	var order []string
	first := true

	ticker := c.clock.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	slog.Info("Comment stream started", "subreddit", c.cfg.Subreddit, "poll_interval", c.cfg.PollInterval)
	for {
		comments, err := c.fetchNewComments(ctx)
		if err != nil {
			slog.Warn("Comment poll failed", "error", err)
		} else {
			// The listing is newest-first; deliver oldest-first.
			for i := len(comments) - 1; i >= 0; i-- {
				cm := comments[i]
				if _, ok := seen[cm.ID]; ok {
					continue
				}
				seen[cm.ID] = struct{}{}
				order = append(order, cm.ID)
				if len(order) > maxSeen {
					delete(seen, order[0])
					order = order[1:]
				}
				if first {
					continue
				}
				select {
				case out <- cm:
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			first = false
		}

		select {
		case <-ticker.Chan():
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (c *Client) fetchNewComments(ctx context.Context) ([]domain.Comment, error) {
	path := fmt.Sprintf("/r/%s/comments?limit=%d&sort=new", url.PathEscape(c.cfg.Subreddit), fetchLimit)

	var l listing
	if err := c.do(ctx, http.MethodGet, "comments_new", path, nil, &l); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		var d commentData
		if err := json.Unmarshal(child.Data, &d); err != nil {
			return nil, fmt.Errorf("reddit: decode comment: %w", err)
		}
		author := d.Author
		if author == deletedAuthor {
			author = ""
		}
		comments = append(comments, domain.Comment{
			ID:        d.Name,
			Author:    author,
			Body:      d.Body,
			PostID:    d.LinkID,
			CreatedAt: fromEpoch(d.CreatedUTC),
		})
	}
	return comments, nil
}
