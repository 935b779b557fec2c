// Package ballot implements the vote itself: parsing comment bodies into
// choices, recording them in the ledger, and the moderation pipeline that
// drives removals and notifications for every comment on the vote post.
package ballot
