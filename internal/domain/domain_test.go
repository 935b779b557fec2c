package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddToWhitelist_RemovesBlacklistEntry(t *testing.T) {
	data := NewUserData()
	data.AddToBlacklist("alice")
	data.AddToWhitelist("alice")

	assert.True(t, data.Whitelisted("alice"))
	assert.False(t, data.Blacklisted("alice"))
}

func TestAddToBlacklist_RemovesWhitelistEntry(t *testing.T) {
	data := NewUserData()
	data.AddToWhitelist("alice")
	data.AddToBlacklist("alice")

	assert.True(t, data.Blacklisted("alice"))
	assert.False(t, data.Whitelisted("alice"))
}

func TestAddToWhitelist_Idempotent(t *testing.T) {
	data := NewUserData()
	data.AddToWhitelist("alice")
	data.AddToWhitelist("alice")

	assert.Len(t, data.Whitelist, 1)
}

func TestAddToBlacklist_Idempotent(t *testing.T) {
	data := NewUserData()
	data.AddToBlacklist("bob")
	data.AddToBlacklist("bob")

	assert.Len(t, data.Blacklist, 1)
}

func TestPredicates_CallableOnReturnedValue(t *testing.T) {
	assert.False(t, NewUserData().Whitelisted("alice"))
	assert.False(t, NewUserData().Blacklisted("alice"))
}

func TestNewUserData_EmptyContainers(t *testing.T) {
	data := NewUserData()

	assert.NotNil(t, data.Whitelist)
	assert.NotNil(t, data.Blacklist)
	assert.NotNil(t, data.Votes)
	assert.Empty(t, data.Whitelist)
	assert.Empty(t, data.Blacklist)
	assert.Empty(t, data.Votes)
}
