package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/CalvinTheRed/BallotBot/internal/domain"
)

// listing is the generic Reddit listing envelope.
type listing struct {
	Data struct {
		Children []struct {
			Kind string          `json:"kind"`
			Data json.RawMessage `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type commentData struct {
	Name       string  `json:"name"`
	Author     string  `json:"author"`
	Body       string  `json:"body"`
	LinkID     string  `json:"link_id"`
	Subreddit  string  `json:"subreddit"`
	CreatedUTC float64 `json:"created_utc"`
}

type postData struct {
	Name       string  `json:"name"`
	Title      string  `json:"title"`
	Permalink  string  `json:"permalink"`
	Subreddit  string  `json:"subreddit"`
	CreatedUTC float64 `json:"created_utc"`
}

func fromEpoch(sec float64) time.Time {
	return time.Unix(int64(sec), 0).UTC()
}

// UserActivity returns up to limit entries of a user's history, newest
// first. kind selects comments or submissions.
func (c *Client) UserActivity(ctx context.Context, username string, kind domain.ActivityKind, limit int) ([]domain.ActivityItem, error) {
	path := fmt.Sprintf("/user/%s/%s?limit=%d&sort=new", url.PathEscape(username), kind, limit)

	var l listing
	if err := c.do(ctx, http.MethodGet, "user_activity", path, nil, &l); err != nil {
		return nil, err
	}

	items := make([]domain.ActivityItem, 0, len(l.Data.Children))
	for _, child := range l.Data.Children {
		// Comments and submissions share the two fields we need.
		var d commentData
		if err := json.Unmarshal(child.Data, &d); err != nil {
			return nil, fmt.Errorf("reddit: decode activity item: %w", err)
		}
		items = append(items, domain.ActivityItem{
			Subreddit: d.Subreddit,
			CreatedAt: fromEpoch(d.CreatedUTC),
		})
	}
	return items, nil
}

// FindPostByFlair returns the newest submission in the subreddit carrying
// the given flair, or ErrNotFound when the search comes back empty.
func (c *Client) FindPostByFlair(ctx context.Context, flair string) (*domain.Post, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("flair:%q", flair))
	q.Set("sort", "new")
	q.Set("restrict_sr", "1")
	q.Set("limit", "1")
	path := fmt.Sprintf("/r/%s/search?%s", url.PathEscape(c.cfg.Subreddit), q.Encode())

	var l listing
	if err := c.do(ctx, http.MethodGet, "search", path, nil, &l); err != nil {
		return nil, err
	}
	if len(l.Data.Children) == 0 {
		return nil, ErrNotFound
	}

	var d postData
	if err := json.Unmarshal(l.Data.Children[0].Data, &d); err != nil {
		return nil, fmt.Errorf("reddit: decode post: %w", err)
	}
	return &domain.Post{
		ID:    d.Name,
		Title: d.Title,
		URL:   "https://www.reddit.com" + d.Permalink,
	}, nil
}
