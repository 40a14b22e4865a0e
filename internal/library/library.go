// package library implements the in-memory collection store.
//
// The Store is the single mutable source of truth for the session's
// collections. Local storage and the remote document are downstream mirrors:
// every mutation fans out to registered save hooks, and hook failures are
// logged without rolling back the already-applied mutation.
package library

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/shared"
)

// SaveFunc receives a snapshot of the full CollectionSet after a mutation.
type SaveFunc func(models.CollectionSet) error

// Store holds the session's collections and fans mutations out to mirrors.
type Store struct {
	mu     sync.Mutex
	set    models.CollectionSet
	hooks  []SaveFunc
	logger *log.Logger
}

// NewStore creates a Store seeded with the given set (normalized, defaults
// re-seeded). A nil set yields the three default collections.
func NewStore(set models.CollectionSet, logger *log.Logger) *Store {
	if set == nil {
		set = models.NewCollectionSet()
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Store{
		set:    set.Normalized().WithDefaults(),
		logger: logger,
	}
}

// OnSave registers a persistence hook, called with a snapshot after every mutation.
func (s *Store) OnSave(fn SaveFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hooks = append(s.hooks, fn)
}

// Snapshot returns a deep copy of the current CollectionSet.
func (s *Store) Snapshot() models.CollectionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Clone()
}

// Names returns all collection names, sorted.
func (s *Store) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.set.Names()
}

// Get returns the named collection's dances and whether the collection exists.
func (s *Store) Get(name string) ([]models.Dance, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dances, ok := s.set[models.FoldName(name)]
	if !ok {
		return nil, false
	}
	out := make([]models.Dance, len(dances))
	copy(out, dances)
	return out, true
}

// Add inserts a dance into the named collection. The record is normalized on
// the way in. Adding an ID already present is a no-op and reports false.
func (s *Store) Add(dance models.Dance, name string) (bool, error) {
	folded := models.FoldName(name)
	dance = models.Normalize(dance)

	s.mu.Lock()
	dances, ok := s.set[folded]
	if !ok {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: %q", shared.ErrCollectionNotFound, folded)
	}

	for _, d := range dances {
		if d.ID == dance.ID {
			s.mu.Unlock()
			return false, nil
		}
	}

	s.set[folded] = append(dances, dance)
	snapshot := s.set.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	return true, nil
}

// Remove deletes the dance with the given ID from the named collection.
// Reports false without error when the dance is absent.
func (s *Store) Remove(danceID, name string) (bool, error) {
	folded := models.FoldName(name)

	s.mu.Lock()
	dances, ok := s.set[folded]
	if !ok {
		s.mu.Unlock()
		return false, fmt.Errorf("%w: %q", shared.ErrCollectionNotFound, folded)
	}

	idx := -1
	for i, d := range dances {
		if d.ID == danceID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return false, nil
	}

	s.set[folded] = append(dances[:idx], dances[idx+1:]...)
	snapshot := s.set.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	return true, nil
}

// Create adds an empty collection under the lowercased, trimmed name.
// A name colliding with an existing collection is rejected.
func (s *Store) Create(name string) error {
	folded := models.FoldName(name)
	if folded == "" {
		return fmt.Errorf("%w: collection name required", shared.ErrInvalidInput)
	}

	s.mu.Lock()
	if _, ok := s.set[folded]; ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", shared.ErrCollectionExists, folded)
	}

	s.set[folded] = []models.Dance{}
	snapshot := s.set.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	return nil
}

// Delete removes a user-created collection. The default collections cannot be
// deleted. Interactive confirmation is the caller's concern.
func (s *Store) Delete(name string) error {
	folded := models.FoldName(name)
	for _, def := range models.DefaultCollectionNames {
		if folded == def {
			return fmt.Errorf("%w: %q is a default collection", shared.ErrInvalidInput, folded)
		}
	}

	s.mu.Lock()
	if _, ok := s.set[folded]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", shared.ErrCollectionNotFound, folded)
	}

	delete(s.set, folded)
	snapshot := s.set.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
	return nil
}

// Adopt replaces the whole set, normalizing every record. Used when a remote
// document is pulled at sign-in; the prior in-memory state is discarded.
func (s *Store) Adopt(set models.CollectionSet) {
	if set == nil {
		set = models.NewCollectionSet()
	}

	s.mu.Lock()
	s.set = set.Normalized().WithDefaults()
	snapshot := s.set.Clone()
	s.mu.Unlock()

	s.persist(snapshot)
}

// persist fans the snapshot out to all registered hooks. Failures are logged
// and surfaced nowhere else; the in-memory mutation stands.
func (s *Store) persist(snapshot models.CollectionSet) {
	s.mu.Lock()
	hooks := append([]SaveFunc(nil), s.hooks...)
	s.mu.Unlock()

	for _, fn := range hooks {
		if err := fn(snapshot); err != nil {
			s.logger.Warn("collection persistence failed", "err", err)
		}
	}
}
