// Package repositories provides the local persistence layer.
//
// Local state is a small set of JSON documents in a SQLite key/value table
// ([StateRepository]); the typed repositories ([CollectionRepository],
// [RecentQueryRepository], [SessionRepository]) serialize domain values into
// it. Local storage is a downstream mirror of in-memory state, never a source
// of truth except at cold start.
package repositories
