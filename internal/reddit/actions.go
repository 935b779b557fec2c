package reddit

import (
	"context"
	"net/http"
	"net/url"
)

// RemoveComment removes a comment from public view as a moderator action.
func (c *Client) RemoveComment(ctx context.Context, commentID string) error {
	form := url.Values{}
	form.Set("id", commentID)
	form.Set("spam", "false")
	return c.do(ctx, http.MethodPost, "remove", "/api/remove", form, nil)
}

// SendPrivateMessage delivers a private message to a user.
func (c *Client) SendPrivateMessage(ctx context.Context, recipient, subject, body string) error {
	form := url.Values{}
	form.Set("to", recipient)
	form.Set("subject", subject)
	form.Set("text", body)
	return c.do(ctx, http.MethodPost, "compose", "/api/compose", form, nil)
}
