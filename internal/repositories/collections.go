package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/desertthunder/stepx/internal/models"
)

// CollectionRepository persists the full CollectionSet as one JSON document.
//
// Every save serializes the entire set; there are no partial updates, matching
// the remote store's whole-document semantics.
type CollectionRepository struct {
	state *StateRepository
}

// NewCollectionRepository creates a CollectionRepository with the given database connection
func NewCollectionRepository(db *sql.DB) *CollectionRepository {
	return &CollectionRepository{state: NewStateRepository(db)}
}

// Load reads the persisted CollectionSet.
//
// The legacy pre-v2 key is consulted only when the current key is absent. A
// cold start with neither key yields the default set. Every loaded record is
// normalized and missing default collections are re-seeded.
func (r *CollectionRepository) Load() (models.CollectionSet, error) {
	value, ok, err := r.state.Get(KeyCollections)
	if err != nil {
		return nil, err
	}

	if !ok {
		value, ok, err = r.state.Get(KeyLegacyCollections)
		if err != nil {
			return nil, err
		}
	}

	if !ok {
		return models.NewCollectionSet(), nil
	}

	var set models.CollectionSet
	if err := json.Unmarshal([]byte(value), &set); err != nil {
		return nil, fmt.Errorf("failed to parse stored collections: %w", err)
	}

	return set.Normalized().WithDefaults(), nil
}

// Save serializes the entire CollectionSet under the current key.
func (r *CollectionRepository) Save(set models.CollectionSet) error {
	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("failed to marshal collections: %w", err)
	}

	return r.state.Set(KeyCollections, string(data))
}
