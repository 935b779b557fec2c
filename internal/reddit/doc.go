// Package reddit implements the forum client: OAuth authentication, the
// live comment stream, moderator removals, private messages, the flair
// search, and user history listings. The rest of the bot only sees the
// interfaces in the domain package.
package reddit
