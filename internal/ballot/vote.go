package ballot

import (
	"slices"
	"strings"
)

// ParseVote normalizes a raw comment body (trim, lower-case) and reports
// whether the result is one of the accepted vote options.
func ParseVote(raw string, options []string) (string, bool) {
	choice := strings.ToLower(strings.TrimSpace(raw))
	return choice, slices.Contains(options, choice)
}

// OptionList renders the accepted options for user-facing messages,
// e.g. `"yes", "no", or "indifferent"`.
func OptionList(options []string) string {
	quoted := make([]string, len(options))
	for i, o := range options {
		quoted[i] = `"` + o + `"`
	}
	switch len(quoted) {
	case 0:
		return ""
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
	}
}
