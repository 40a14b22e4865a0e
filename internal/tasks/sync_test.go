package tasks

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/stepx/internal/library"
	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/shared"
	mock "github.com/desertthunder/stepx/internal/testing"
)

func TestSessionManager(t *testing.T) {
	ctx := context.Background()

	t.Run("starts signed out", func(t *testing.T) {
		profile := &mock.MockProfile{}
		store := library.NewStore(nil, quietLogger())
		m := NewSessionManager(profile, store, quietLogger())

		if m.State() != StateSignedOut {
			t.Errorf("expected signed out, got %v", m.State())
		}
		if err := m.Push(ctx, nil); !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Errorf("expected ErrNotAuthenticated, got %v", err)
		}
	})

	t.Run("sign-in adopts the remote document", func(t *testing.T) {
		profile := &mock.MockProfile{
			Doc: &models.SyncDocument{
				Collections: models.CollectionSet{
					"remote picks": {{ID: "r1", Title: "Remote Dance"}},
				},
				Revision: 7,
			},
		}
		store := library.NewStore(nil, quietLogger())
		if _, err := store.Add(models.Dance{ID: "local1", Title: "Local Dance"}, "dances i know"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		m := NewSessionManager(profile, store, quietLogger())
		if err := m.SignIn(ctx, "a@example.com", "pw"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if m.State() != StateSignedIn {
			t.Fatalf("expected signed in, got %v", m.State())
		}
		if _, ok := store.Get("remote picks"); !ok {
			t.Error("expected remote collection adopted")
		}
		if dances, _ := store.Get("dances i know"); len(dances) != 0 {
			t.Error("expected local state discarded on adopt")
		}
	})

	t.Run("sign-in seeds a missing document from local state", func(t *testing.T) {
		profile := &mock.MockProfile{}
		store := library.NewStore(nil, quietLogger())
		if _, err := store.Add(models.Dance{ID: "local1", Title: "Local Dance"}, "dances i know"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		m := NewSessionManager(profile, store, quietLogger())
		if err := m.SignIn(ctx, "a@example.com", "pw"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		m.Wait()

		if profile.Doc == nil {
			t.Fatal("expected seeded document")
		}
		if profile.Doc.Revision != 1 {
			t.Errorf("expected revision 1, got %d", profile.Doc.Revision)
		}
		if !profile.Doc.Collections.Contains("dances i know", "local1") {
			t.Error("expected local dance in seeded document")
		}
	})

	t.Run("mutations while signed in push the document", func(t *testing.T) {
		profile := &mock.MockProfile{
			Doc: &models.SyncDocument{Collections: models.NewCollectionSet(), Revision: 2},
		}
		store := library.NewStore(nil, quietLogger())
		m := NewSessionManager(profile, store, quietLogger())

		if err := m.SignIn(ctx, "a@example.com", "pw"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := store.Add(models.Dance{ID: "d1", Title: "New Dance"}, "dances i know"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		m.Wait()

		if profile.Puts != 1 {
			t.Fatalf("expected 1 push, got %d", profile.Puts)
		}
		if profile.Doc.Revision != 3 {
			t.Errorf("expected revision 3, got %d", profile.Doc.Revision)
		}
		if !profile.Doc.Collections.Contains("dances i know", "d1") {
			t.Error("expected mutation in pushed document")
		}
	})

	t.Run("push failures leave local state standing", func(t *testing.T) {
		profile := &mock.MockProfile{
			Doc:    &models.SyncDocument{Collections: models.NewCollectionSet(), Revision: 1},
			PutErr: shared.ErrAPIRequest,
		}
		store := library.NewStore(nil, quietLogger())
		m := NewSessionManager(profile, store, quietLogger())

		if err := m.SignIn(ctx, "a@example.com", "pw"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := store.Add(models.Dance{ID: "d1"}, "dances i know"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		m.Wait()

		if dances, _ := store.Get("dances i know"); len(dances) != 1 {
			t.Error("expected local mutation to stand after failed push")
		}
	})

	t.Run("sign-out keeps local collections", func(t *testing.T) {
		profile := &mock.MockProfile{
			Doc: &models.SyncDocument{
				Collections: models.CollectionSet{"dances i know": {{ID: "r1"}}},
				Revision:    1,
			},
		}
		store := library.NewStore(nil, quietLogger())
		m := NewSessionManager(profile, store, quietLogger())

		if err := m.SignIn(ctx, "a@example.com", "pw"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		m.SignOut()

		if m.State() != StateSignedOut {
			t.Errorf("expected signed out, got %v", m.State())
		}
		if dances, _ := store.Get("dances i know"); len(dances) != 1 {
			t.Error("expected collections retained after sign-out")
		}
	})

	t.Run("update profile requires a session", func(t *testing.T) {
		profile := &mock.MockProfile{}
		store := library.NewStore(nil, quietLogger())
		m := NewSessionManager(profile, store, quietLogger())

		err := m.UpdateProfile(ctx, models.Profile{Username: "stepper"})
		if !errors.Is(err, shared.ErrNotAuthenticated) {
			t.Fatalf("expected ErrNotAuthenticated, got %v", err)
		}

		if err := m.SignIn(ctx, "a@example.com", "pw"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		m.Wait()
		if err := m.UpdateProfile(ctx, models.Profile{Username: "stepper"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := m.Profile(); got == nil || got.Username != "stepper" {
			t.Errorf("unexpected profile: %+v", got)
		}
		if profile.Doc == nil || profile.Doc.Profile == nil || profile.Doc.Profile.Username != "stepper" {
			t.Error("expected profile in pushed document")
		}
	})
}
