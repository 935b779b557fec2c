package admin

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalvinTheRed/BallotBot/internal/domain"
	"github.com/CalvinTheRed/BallotBot/internal/store"
)

type message struct {
	recipient string
	subject   string
}

type fakeNotifier struct {
	messages []message
}

func (f *fakeNotifier) SendPrivateMessage(_ context.Context, recipient, subject, _ string) error {
	f.messages = append(f.messages, message{recipient, subject})
	return nil
}

func newConsole(t *testing.T) (*Console, *store.FileStore, *fakeNotifier, *bool) {
	t.Helper()
	s := store.NewFileStore(filepath.Join(t.TempDir(), "known_users.json"))
	notifier := &fakeNotifier{}
	quit := false
	c := NewConsole(s, notifier, func() { quit = true })
	return c, s, notifier, &quit
}

func TestConsole_WhitelistCommand(t *testing.T) {
	c, s, notifier, _ := newConsole(t)

	c.Run(context.Background(), strings.NewReader("whitelist SomeUser\n"))

	data := s.Load()
	assert.True(t, data.Whitelisted("someuser"))
	require.Len(t, notifier.messages, 1)
	assert.Equal(t, "someuser", notifier.messages[0].recipient)
	assert.Equal(t, approvedSubject, notifier.messages[0].subject)
}

func TestConsole_WhitelistOverridesBlacklist(t *testing.T) {
	c, s, _, _ := newConsole(t)
	s.Update(func(data *domain.UserData) bool {
		data.AddToBlacklist("someuser")
		return true
	})

	c.Run(context.Background(), strings.NewReader("whitelist someuser\n"))

	data := s.Load()
	assert.True(t, data.Whitelisted("someuser"))
	assert.False(t, data.Blacklisted("someuser"))
}

func TestConsole_ExitStopsReading(t *testing.T) {
	c, s, _, quit := newConsole(t)

	c.Run(context.Background(), strings.NewReader("exit\nwhitelist someuser\n"))

	assert.True(t, *quit)
	assert.False(t, s.Load().Whitelisted("someuser"))
}

func TestConsole_IgnoresUnknownAndMalformed(t *testing.T) {
	c, s, notifier, quit := newConsole(t)

	input := "\nbogus command\nwhitelist\nwhitelist too many args\n"
	c.Run(context.Background(), strings.NewReader(input))

	assert.False(t, *quit)
	assert.Empty(t, notifier.messages)
	data := s.Load()
	assert.Empty(t, data.Whitelist)
}
