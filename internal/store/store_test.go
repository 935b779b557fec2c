package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CalvinTheRed/BallotBot/internal/domain"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "known_users.json"))
}

func TestLoad_MissingFile(t *testing.T) {
	s := tempStore(t)

	data := s.Load()

	assert.Empty(t, data.Whitelist)
	assert.Empty(t, data.Blacklist)
	assert.Empty(t, data.Votes)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_users.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	s := NewFileStore(path)

	data := s.Load()

	assert.Empty(t, data.Whitelist)
	assert.Empty(t, data.Blacklist)
	assert.Empty(t, data.Votes)
}

func TestLoad_MissingContainersInitialized(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_users.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"whitelist":["alice"]}`), 0o644))
	s := NewFileStore(path)

	data := s.Load()

	assert.True(t, data.Whitelisted("alice"))
	assert.NotNil(t, data.Blacklist)
	assert.NotNil(t, data.Votes)
}

func TestUpdate_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_users.json")
	s := NewFileStore(path)

	s.Update(func(data *domain.UserData) bool {
		data.AddToWhitelist("alice")
		data.AddToBlacklist("bob")
		data.Votes["alice"] = "yes"
		return true
	})

	// A fresh store instance must see exactly the persisted state.
	reloaded := NewFileStore(path).Load()
	assert.Equal(t, []string{"alice"}, reloaded.Whitelist)
	assert.Equal(t, []string{"bob"}, reloaded.Blacklist)
	assert.Equal(t, map[string]string{"alice": "yes"}, reloaded.Votes)
}

func TestUpdate_NoMutationWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "known_users.json")
	s := NewFileStore(path)

	s.Update(func(data *domain.UserData) bool {
		return false
	})

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestUpdate_SaveFailureDiscardsResult(t *testing.T) {
	dir := t.TempDir()
	// The store path is a directory, so every save fails.
	s := NewFileStore(dir)

	s.Update(func(data *domain.UserData) bool {
		data.AddToWhitelist("alice")
		return true
	})

	// Nothing persisted, next transaction starts empty again.
	assert.False(t, s.Load().Whitelisted("alice"))
}

func TestUpdate_ConcurrentNoLostUpdates(t *testing.T) {
	s := tempStore(t)

	const voters = 50
	var wg sync.WaitGroup
	for i := range voters {
		wg.Add(1)
		go func() {
			defer wg.Done()
			name := fmt.Sprintf("user%02d", i)
			s.Update(func(data *domain.UserData) bool {
				data.AddToWhitelist(name)
				data.Votes[name] = "yes"
				return true
			})
		}()
	}
	wg.Wait()

	data := s.Load()
	assert.Len(t, data.Whitelist, voters)
	assert.Len(t, data.Votes, voters)
}
