package library

import (
	"errors"
	"testing"

	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/shared"
)

func TestStore(t *testing.T) {
	dance := models.Dance{ID: "d1", Title: "Cowboy Charleston"}

	t.Run("seeds defaults from a nil set", func(t *testing.T) {
		store := NewStore(nil, nil)

		names := store.Names()
		if len(names) != len(models.DefaultCollectionNames) {
			t.Fatalf("expected %d collections, got %d", len(models.DefaultCollectionNames), len(names))
		}
	})

	t.Run("add normalizes and dedupes by id", func(t *testing.T) {
		store := NewStore(nil, nil)

		added, err := store.Add(dance, "Dances I Know")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !added {
			t.Error("expected first add to report true")
		}

		added, err = store.Add(dance, "dances i know")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if added {
			t.Error("expected duplicate add to report false")
		}

		dances, ok := store.Get("dances i know")
		if !ok || len(dances) != 1 {
			t.Fatalf("expected 1 dance, got %d (ok=%v)", len(dances), ok)
		}
		if dances[0].SongTitle != models.UnknownSong {
			t.Errorf("expected normalized song title, got %q", dances[0].SongTitle)
		}
	})

	t.Run("add to missing collection fails", func(t *testing.T) {
		store := NewStore(nil, nil)

		if _, err := store.Add(dance, "nope"); !errors.Is(err, shared.ErrCollectionNotFound) {
			t.Errorf("expected ErrCollectionNotFound, got %v", err)
		}
	})

	t.Run("remove reports absence without error", func(t *testing.T) {
		store := NewStore(nil, nil)
		if _, err := store.Add(dance, "dances i know"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		removed, err := store.Remove("d1", "dances i know")
		if err != nil || !removed {
			t.Fatalf("expected removal, got removed=%v err=%v", removed, err)
		}

		removed, err = store.Remove("d1", "dances i know")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if removed {
			t.Error("expected second removal to report false")
		}
	})

	t.Run("create rejects case-insensitive duplicates", func(t *testing.T) {
		store := NewStore(nil, nil)

		if err := store.Create("Friday Night"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Create("  FRIDAY NIGHT "); !errors.Is(err, shared.ErrCollectionExists) {
			t.Errorf("expected ErrCollectionExists, got %v", err)
		}
		if err := store.Create("   "); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for blank name, got %v", err)
		}
	})

	t.Run("delete protects defaults", func(t *testing.T) {
		store := NewStore(nil, nil)

		if err := store.Delete("dances i know"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput for default collection, got %v", err)
		}
		if err := store.Delete("ghost"); !errors.Is(err, shared.ErrCollectionNotFound) {
			t.Errorf("expected ErrCollectionNotFound, got %v", err)
		}

		if err := store.Create("friday night"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := store.Delete("friday night"); err != nil {
			t.Errorf("unexpected error deleting user collection: %v", err)
		}
	})

	t.Run("adopt replaces state and re-seeds defaults", func(t *testing.T) {
		store := NewStore(nil, nil)
		if _, err := store.Add(dance, "dances i know"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		store.Adopt(models.CollectionSet{"Remote Picks": {{ID: "d9"}}})

		if _, ok := store.Get("dances i know"); !ok {
			t.Error("expected default collection after adopt")
		}
		dances, ok := store.Get("remote picks")
		if !ok || len(dances) != 1 {
			t.Fatalf("expected adopted collection with 1 dance, got %d (ok=%v)", len(dances), ok)
		}
		if dances[0].Title != models.UntitledDance {
			t.Errorf("expected adopted dance normalized, got title %q", dances[0].Title)
		}
		if got, _ := store.Get("dances i know"); len(got) != 0 {
			t.Errorf("expected prior local state discarded, got %d dances", len(got))
		}
	})

	t.Run("hooks receive snapshots and errors do not roll back", func(t *testing.T) {
		store := NewStore(nil, nil)

		var calls int
		store.OnSave(func(set models.CollectionSet) error {
			calls++
			return errors.New("disk full")
		})

		if _, err := store.Add(dance, "dances i know"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 1 {
			t.Fatalf("expected 1 hook call, got %d", calls)
		}
		if dances, _ := store.Get("dances i know"); len(dances) != 1 {
			t.Error("expected mutation to stand despite hook failure")
		}

		// duplicate add must not fire hooks
		if _, err := store.Add(dance, "dances i know"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 1 {
			t.Fatalf("expected no hook call on no-op add, got %d", calls)
		}
	})
}
