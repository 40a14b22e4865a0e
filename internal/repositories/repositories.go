package repositories

import (
	"database/sql"
	"fmt"
	"time"
)

// State keys. The legacy collections key predates the v2 schema and is read
// as a fallback only when the current key is absent.
const (
	KeyCollections       = "collections_v2"
	KeyLegacyCollections = "dance_mgr_v11"
	KeyRecentQueries     = "recent_queries"
	KeySessionToken      = "session_token"
)

// StateRepository reads and writes JSON documents in the app_state table.
type StateRepository struct {
	db *sql.DB
}

// NewStateRepository creates a StateRepository with the given database connection
func NewStateRepository(db *sql.DB) *StateRepository {
	return &StateRepository{db: db}
}

// Get retrieves the value stored under key. The second return value reports
// whether the key exists.
func (r *StateRepository) Get(key string) (string, bool, error) {
	var value string
	err := r.db.QueryRow("SELECT value FROM app_state WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read state %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, replacing any prior value.
func (r *StateRepository) Set(key, value string) error {
	query := `
		INSERT INTO app_state (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	if _, err := r.db.Exec(query, key, value, time.Now()); err != nil {
		return fmt.Errorf("failed to write state %q: %w", key, err)
	}
	return nil
}

// Delete removes the value stored under key. No-op if absent.
func (r *StateRepository) Delete(key string) error {
	if _, err := r.db.Exec("DELETE FROM app_state WHERE key = ?", key); err != nil {
		return fmt.Errorf("failed to delete state %q: %w", key, err)
	}
	return nil
}
