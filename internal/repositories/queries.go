package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/stepx/internal/models"
)

// RecentQueryRepository persists the bounded search history.
type RecentQueryRepository struct {
	state *StateRepository
}

// NewRecentQueryRepository creates a RecentQueryRepository with the given database connection
func NewRecentQueryRepository(db *sql.DB) *RecentQueryRepository {
	return &RecentQueryRepository{state: NewStateRepository(db)}
}

// Load reads the persisted query history; absent state yields an empty list.
func (r *RecentQueryRepository) Load() (models.RecentQueries, error) {
	value, ok, err := r.state.Get(KeyRecentQueries)
	if err != nil {
		return nil, err
	}
	if !ok {
		return models.RecentQueries{}, nil
	}

	var queries models.RecentQueries
	if err := json.Unmarshal([]byte(value), &queries); err != nil {
		return nil, fmt.Errorf("failed to parse stored queries: %w", err)
	}

	if len(queries) > models.RecentQueryLimit {
		queries = queries[:models.RecentQueryLimit]
	}
	return queries, nil
}

// Record pushes query onto the history and persists it. The push happens
// regardless of whether the search that prompted it later succeeds.
func (r *RecentQueryRepository) Record(query string) (models.RecentQueries, error) {
	queries, err := r.Load()
	if err != nil {
		return nil, err
	}

	queries = queries.Push(query)

	data, err := json.Marshal(queries)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal queries: %w", err)
	}

	if err := r.state.Set(KeyRecentQueries, string(data)); err != nil {
		return nil, err
	}
	return queries, nil
}
