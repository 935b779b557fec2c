package ballot

import (
	"fmt"
	"time"
)

const (
	removedSubject  = "Your Vote Was Removed"
	recordedSubject = "Vote Recorded"
)

func ineligibleBody(subreddit string, cutoff time.Time) string {
	return fmt.Sprintf(
		"Your comment was removed because your account hasn't participated in r/%s prior to %s. "+
			"If this is a mistake, please [message the moderators](https://www.reddit.com/message/compose?to=/r/%s) "+
			"with a link to a post or comment you made in the subreddit before the cutoff date.",
		subreddit, cutoff.Format("January 2, 2006"), subreddit,
	)
}

func invalidVoteBody(options []string) string {
	return fmt.Sprintf("Only %s are valid responses in this community vote.", OptionList(options))
}

func recordedBody(choice string) string {
	return fmt.Sprintf(
		"Thanks for voting! Your response (%s) has been recorded. "+
			"You may change your response at any time before the vote ends by re-commenting with your new response.",
		choice,
	)
}
