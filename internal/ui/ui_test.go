package ui

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/stepx/internal/library"
	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/shared"
	"github.com/desertthunder/stepx/internal/tasks"
	mock "github.com/desertthunder/stepx/internal/testing"
)

func pressKey(m *Model, runes string) {
	_, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(runes)})
}

func testModel(t *testing.T) *Model {
	t.Helper()

	logger := shared.NewLogger(io.Discard)
	engine := tasks.NewDanceEngine(&mock.MockCatalog{}, logger)
	store := library.NewStore(nil, logger)
	session := tasks.NewSessionManager(&mock.MockProfile{}, store, logger)

	return NewModel(context.Background(), engine, store, session, nil)
}

func TestModelDiscardsStaleResults(t *testing.T) {
	m := testModel(t)
	m.generation = 2

	t.Run("stale search results are dropped", func(t *testing.T) {
		stale := searchResultsMsg{generation: 1, dances: []models.Dance{{ID: "old"}}}
		if _, _ = m.Update(stale); len(m.results) != 0 {
			t.Errorf("expected stale results discarded, got %d", len(m.results))
		}

		current := searchResultsMsg{generation: 2, dances: []models.Dance{{ID: "new"}}}
		if _, _ = m.Update(current); len(m.results) != 1 {
			t.Errorf("expected current results applied, got %d", len(m.results))
		}
	})

	t.Run("stale snapshots are dropped", func(t *testing.T) {
		stale := danceSnapshotMsg{generation: 1, snapshot: tasks.DanceSnapshot{Dance: models.Dance{ID: "old"}}}
		if _, _ = m.Update(stale); m.detail.ID == "old" {
			t.Error("expected stale snapshot discarded")
		}
	})

	t.Run("closed stream marks steps loaded", func(t *testing.T) {
		m.stepsLoaded = false
		if _, _ = m.Update(danceSnapshotMsg{generation: 2, closed: true}); !m.stepsLoaded {
			t.Error("expected steps loaded after stream close")
		}
	})
}

func TestRenderSearchOutcomes(t *testing.T) {
	m := testModel(t)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	t.Run("prompts before any search", func(t *testing.T) {
		if !strings.Contains(m.View(), "Type a title") {
			t.Error("expected the initial prompt")
		}
	})

	t.Run("reports when a search matches nothing", func(t *testing.T) {
		m.searchInput.SetValue("tush push")
		if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd == nil {
			t.Fatal("expected a search command")
		}
		_, _ = m.Update(searchResultsMsg{generation: m.generation})

		view := m.View()
		if !strings.Contains(view, `No dances found for "tush push"`) {
			t.Errorf("expected a no-results notice, got:\n%s", view)
		}
		if strings.Contains(view, "Type a title") {
			t.Error("expected the initial prompt replaced after a completed search")
		}
	})

	t.Run("notice clears once results arrive", func(t *testing.T) {
		dances := []models.Dance{models.Normalize(models.Dance{ID: "d1", Title: "Tush Push"})}
		_, _ = m.Update(searchResultsMsg{generation: m.generation, dances: dances})

		if strings.Contains(m.View(), "No dances found") {
			t.Error("expected the notice gone once results exist")
		}
	})
}

func TestCollectionDetailDelete(t *testing.T) {
	m := testModel(t)
	_, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	if err := m.store.Create("practice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.collectionName = "practice"
	m.refreshCollectionDetail()
	m.view = CollectionDetailView

	t.Run("d asks for confirmation", func(t *testing.T) {
		pressKey(m, "d")
		if m.confirmDelete != "practice" {
			t.Fatalf("expected confirmation for %q, got %q", "practice", m.confirmDelete)
		}
		if !strings.Contains(m.View(), `Delete "practice"?`) {
			t.Error("expected the confirmation prompt rendered")
		}
	})

	t.Run("n keeps the collection and the view", func(t *testing.T) {
		pressKey(m, "n")
		if m.confirmDelete != "" {
			t.Error("expected confirmation cleared")
		}
		if m.view != CollectionDetailView {
			t.Errorf("expected detail view kept, got %d", m.view)
		}
		if _, ok := m.store.Get("practice"); !ok {
			t.Error("expected collection kept after declining")
		}
	})

	t.Run("y deletes and returns to the collections list", func(t *testing.T) {
		pressKey(m, "d")
		pressKey(m, "y")
		if m.view != CollectionsView {
			t.Errorf("expected collections view after delete, got %d", m.view)
		}
		if _, ok := m.store.Get("practice"); ok {
			t.Error("expected collection deleted")
		}
	})

	t.Run("default collections survive the prompt", func(t *testing.T) {
		m.collectionName = "dances i know"
		m.view = CollectionDetailView
		pressKey(m, "d")
		pressKey(m, "y")
		if _, ok := m.store.Get("dances i know"); !ok {
			t.Error("expected default collection kept")
		}
		if m.view != CollectionDetailView {
			t.Errorf("expected detail view kept after refused delete, got %d", m.view)
		}
	})
}

func TestRenderDanceDetail(t *testing.T) {
	m := testModel(t)
	m.detail = models.Normalize(models.Dance{ID: "d1", Title: "Tush Push"})
	m.view = DanceDetailView

	t.Run("shows loading before the stream concludes", func(t *testing.T) {
		m.stepsLoaded = false
		if !strings.Contains(m.View(), "loading steps...") {
			t.Error("expected loading indicator")
		}
	})

	t.Run("shows not available after an empty conclusion", func(t *testing.T) {
		m.stepsLoaded = true
		if !strings.Contains(m.View(), "step sheet not available") {
			t.Error("expected unavailable message")
		}
	})

	t.Run("shows rows once present", func(t *testing.T) {
		m.detail.StepSheet = []models.StepRow{{Text: "Heel touches"}}
		if !strings.Contains(m.View(), "Heel touches") {
			t.Error("expected step row rendered")
		}
	})
}
