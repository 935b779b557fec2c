package ballot

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var threeOptions = []string{"yes", "no", "indifferent"}

func TestParseVote_Normalizes(t *testing.T) {
	choice, ok := ParseVote(" YES ", threeOptions)
	assert.True(t, ok)
	assert.Equal(t, "yes", choice)
}

func TestParseVote_AllOptions(t *testing.T) {
	for _, option := range threeOptions {
		choice, ok := ParseVote(option, threeOptions)
		assert.True(t, ok)
		assert.Equal(t, option, choice)
	}
}

func TestParseVote_RejectsUnknown(t *testing.T) {
	_, ok := ParseVote("maybe", threeOptions)
	assert.False(t, ok)
}

func TestParseVote_RejectsEmbeddedOption(t *testing.T) {
	// The whole body must be the vote, not merely contain it.
	_, ok := ParseVote("yes please", threeOptions)
	assert.False(t, ok)
}

func TestParseVote_TwoOptionVariant(t *testing.T) {
	twoOptions := []string{"yes", "no"}

	_, ok := ParseVote("indifferent", twoOptions)
	assert.False(t, ok)

	choice, ok := ParseVote("no", twoOptions)
	assert.True(t, ok)
	assert.Equal(t, "no", choice)
}

func TestOptionList(t *testing.T) {
	assert.Equal(t, `"yes", "no", or "indifferent"`, OptionList(threeOptions))
	assert.Equal(t, `"yes" or "no"`, OptionList([]string{"yes", "no"}))
	assert.Equal(t, `"yes"`, OptionList([]string{"yes"}))
	assert.Equal(t, "", OptionList(nil))
}
