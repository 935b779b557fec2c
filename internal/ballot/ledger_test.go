package ballot

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CalvinTheRed/BallotBot/internal/store"
)

func TestLedger_LastWriteWins(t *testing.T) {
	s := store.NewFileStore(filepath.Join(t.TempDir(), "known_users.json"))
	l := NewLedger(s)

	l.Record("alice", "yes")
	l.Record("alice", "no")

	assert.Equal(t, "no", s.Load().Votes["alice"])
}

func TestLedger_NormalizesUsername(t *testing.T) {
	s := store.NewFileStore(filepath.Join(t.TempDir(), "known_users.json"))
	l := NewLedger(s)

	l.Record("Alice", "yes")
	l.Record("ALICE", "indifferent")

	votes := s.Load().Votes
	assert.Len(t, votes, 1)
	assert.Equal(t, "indifferent", votes["alice"])
}
