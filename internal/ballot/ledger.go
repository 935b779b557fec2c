package ballot

import (
	"log/slog"
	"strings"

	"github.com/CalvinTheRed/BallotBot/internal/domain"
	"github.com/CalvinTheRed/BallotBot/internal/metrics"
	"github.com/CalvinTheRed/BallotBot/internal/store"
)

// Ledger records vote choices in the user store. A user re-voting simply
// overwrites their previous choice; no history is kept.
type Ledger struct {
	store *store.FileStore
}

// NewLedger creates a ledger backed by the given store.
func NewLedger(s *store.FileStore) *Ledger {
	return &Ledger{store: s}
}

// Record persists choice as username's vote, replacing any prior vote. The
// choice must already be validated with ParseVote.
func (l *Ledger) Record(username, choice string) {
	name := strings.ToLower(username)
	l.store.Update(func(data *domain.UserData) bool {
		data.Votes[name] = choice
		return true
	})
	metrics.VotesRecorded.WithLabelValues(choice).Inc()
	slog.Info("Recorded vote", "user", name, "choice", choice)
}
