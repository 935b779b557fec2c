// Package admin implements the line-oriented administrative console.
//
// It runs concurrently with the moderation pipeline and mutates the user
// store through the same guard, so a manual override and a live
// classification can never lose each other's update.
package admin

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/CalvinTheRed/BallotBot/internal/domain"
	"github.com/CalvinTheRed/BallotBot/internal/metrics"
	"github.com/CalvinTheRed/BallotBot/internal/store"
)

const (
	approvedSubject = "You Have Been Approved to Vote"
	approvedBody    = "A moderator has manually approved your account for the community vote. " +
		"You may now cast your vote by commenting on the vote post."
)

// Console reads commands from a line-oriented input. Supported commands:
//
//	whitelist <username>   approve a user, overriding any cached blacklisting
//	exit                   terminate the bot
type Console struct {
	store    *store.FileStore
	notifier domain.Notifier
	quit     func()
}

// NewConsole creates a console. quit is invoked when the exit command is
// read.
func NewConsole(s *store.FileStore, notifier domain.Notifier, quit func()) *Console {
	return &Console{store: s, notifier: notifier, quit: quit}
}

// Run blocks reading commands from in until the exit command or EOF.
func (c *Console) Run(ctx context.Context, in io.Reader) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)

		switch fields[0] {
		case "whitelist":
			if len(fields) != 2 {
				slog.Warn("Usage: whitelist <username>")
				continue
			}
			c.whitelist(ctx, fields[1])
		case "exit":
			slog.Info("Exit command received")
			c.quit()
			return
		default:
			slog.Warn("Unknown admin command", "input", line)
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Error("Admin console input failed", "error", err)
	}
}

func (c *Console) whitelist(ctx context.Context, username string) {
	name := strings.ToLower(username)
	c.store.Update(func(data *domain.UserData) bool {
		data.AddToWhitelist(name)
		return true
	})
	slog.Info("User added to whitelist by admin", "user", name)
	metrics.EligibilityChecks.WithLabelValues("whitelist", "admin").Inc()

	if err := c.notifier.SendPrivateMessage(ctx, name, approvedSubject, approvedBody); err != nil {
		slog.Error("Failed to notify approved user", "user", name, "error", err)
	}
}
