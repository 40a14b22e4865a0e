package repositories

import (
	"database/sql"
)

// SessionRepository caches the ID token so a session can be restored at
// startup without an interactive sign-in.
type SessionRepository struct {
	state *StateRepository
}

// NewSessionRepository creates a SessionRepository with the given database connection
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{state: NewStateRepository(db)}
}

// Token returns the cached ID token, or empty when none is stored.
func (r *SessionRepository) Token() (string, error) {
	value, _, err := r.state.Get(KeySessionToken)
	return value, err
}

// SaveToken caches the ID token after a successful sign-in.
func (r *SessionRepository) SaveToken(token string) error {
	return r.state.Set(KeySessionToken, token)
}

// ClearToken removes the cached token on sign-out.
func (r *SessionRepository) ClearToken() error {
	return r.state.Delete(KeySessionToken)
}
