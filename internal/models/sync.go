package models

import (
	"strings"
	"time"
)

// Profile is the user profile embedded in the remote document.
type Profile struct {
	Username  string `json:"username,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Location  string `json:"location,omitempty"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

// SyncDocument is the whole-document payload exchanged with the remote
// per-user store. Writes are full replacements, last writer wins; Revision and
// ClientID exist so a stale overwrite can at least be detected and logged.
type SyncDocument struct {
	Collections CollectionSet `json:"collections"`
	Profile     *Profile      `json:"profile,omitempty"`
	Revision    int64         `json:"revision"`
	ClientID    string        `json:"clientId,omitempty"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Identity is an opaque reference to an authenticated principal.
type Identity struct {
	UserID string    `json:"userId"`
	Email  string    `json:"email,omitempty"`
	Expiry time.Time `json:"expiry,omitempty"`
}

// RecentQueryLimit bounds the persisted search history.
const RecentQueryLimit = 5

// RecentQueries is a bounded, most-recent-first, de-duplicated list of prior
// search strings.
type RecentQueries []string

// Push prepends query, removing any exact prior occurrence and truncating to
// [RecentQueryLimit]. Empty or whitespace-only queries are ignored.
func (r RecentQueries) Push(query string) RecentQueries {
	if strings.TrimSpace(query) == "" {
		return r
	}

	out := make(RecentQueries, 0, len(r)+1)
	out = append(out, query)
	for _, q := range r {
		if q != query {
			out = append(out, q)
		}
	}

	if len(out) > RecentQueryLimit {
		out = out[:RecentQueryLimit]
	}
	return out
}
