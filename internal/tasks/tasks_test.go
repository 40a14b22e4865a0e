package tasks

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/shared"
	mock "github.com/desertthunder/stepx/internal/testing"
)

func quietLogger() *log.Logger {
	return shared.NewLogger(io.Discard)
}

func TestDanceEngineSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("returns catalog results", func(t *testing.T) {
		catalog := &mock.MockCatalog{
			SearchFunc: func(ctx context.Context, query string) ([]models.Dance, error) {
				return []models.Dance{{ID: "d1", Title: "Tush Push"}}, nil
			},
		}
		engine := NewDanceEngine(catalog, quietLogger())

		dances, err := engine.Search(ctx, nil, "tush")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(dances) != 1 || dances[0].ID != "d1" {
			t.Errorf("unexpected results: %+v", dances)
		}
	})

	t.Run("propagates catalog errors", func(t *testing.T) {
		catalog := &mock.MockCatalog{
			SearchFunc: func(ctx context.Context, query string) ([]models.Dance, error) {
				return nil, shared.ErrAPIRequest
			},
		}
		engine := NewDanceEngine(catalog, quietLogger())

		if _, err := engine.Search(ctx, nil, "tush"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})

	t.Run("fails without a catalog", func(t *testing.T) {
		engine := NewDanceEngine(nil, quietLogger())
		if _, err := engine.Search(ctx, nil, "tush"); !errors.Is(err, shared.ErrServiceUnavailable) {
			t.Errorf("expected ErrServiceUnavailable, got %v", err)
		}
	})
}

func TestDanceEngineLoadFull(t *testing.T) {
	ctx := context.Background()
	basic := models.Dance{ID: "d1", Title: "Tush Push", Counts: 40}

	t.Run("merges detail and attaches steps", func(t *testing.T) {
		var stepKey string
		catalog := &mock.MockCatalog{
			GetByIDFunc: func(ctx context.Context, id string) (*models.Dance, error) {
				return &models.Dance{ID: id, SongTitle: "Chattahoochee", StepSheetID: "sheet-9"}, nil
			},
			GetStepSheetFunc: func(ctx context.Context, id string) ([]models.StepRow, error) {
				stepKey = id
				return []models.StepRow{{Text: "Heel touches"}}, nil
			},
		}
		engine := NewDanceEngine(catalog, quietLogger())

		snapshots := make(chan DanceSnapshot, 3)
		merged, err := engine.LoadFull(ctx, snapshots, basic)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if merged.SongTitle != "Chattahoochee" {
			t.Errorf("expected detail song title, got %q", merged.SongTitle)
		}
		if merged.Counts != 40 {
			t.Errorf("expected search record counts preserved, got %d", merged.Counts)
		}
		if len(merged.StepSheet) != 1 {
			t.Errorf("expected 1 step row, got %d", len(merged.StepSheet))
		}
		if stepKey != "sheet-9" {
			t.Errorf("expected step fetch keyed by detail sheet ID, got %q", stepKey)
		}

		var stages []DanceSnapshot
		for snap := range snapshots {
			stages = append(stages, snap)
		}
		if len(stages) != 3 {
			t.Fatalf("expected 3 snapshots, got %d", len(stages))
		}
		if stages[0].StepsLoaded || !stages[2].StepsLoaded {
			t.Error("expected only the final snapshot to report steps loaded")
		}
	})

	t.Run("detail failure keeps the search record", func(t *testing.T) {
		catalog := &mock.MockCatalog{
			GetByIDFunc: func(ctx context.Context, id string) (*models.Dance, error) {
				return nil, shared.ErrDanceNotFound
			},
			GetStepSheetFunc: func(ctx context.Context, id string) ([]models.StepRow, error) {
				return []models.StepRow{}, nil
			},
		}
		engine := NewDanceEngine(catalog, quietLogger())

		merged, err := engine.LoadFull(ctx, nil, basic)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if merged.Title != "Tush Push" || merged.Counts != 40 {
			t.Errorf("expected search record preserved, got %+v", merged)
		}
	})

	t.Run("step fetch falls back to the dance ID", func(t *testing.T) {
		var stepKey string
		catalog := &mock.MockCatalog{
			GetStepSheetFunc: func(ctx context.Context, id string) ([]models.StepRow, error) {
				stepKey = id
				return nil, shared.ErrDanceNotFound
			},
		}
		engine := NewDanceEngine(catalog, quietLogger())

		merged, err := engine.LoadFull(ctx, nil, basic)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if stepKey != "d1" {
			t.Errorf("expected fallback to dance ID, got %q", stepKey)
		}
		if len(merged.StepSheet) != 0 {
			t.Errorf("expected no steps after failed fetch, got %d", len(merged.StepSheet))
		}
	})
}

func TestMergeDetail(t *testing.T) {
	basic := models.Normalize(models.Dance{ID: "d1", Title: "Tush Push", Counts: 40, SongArtist: "Alan Jackson"})

	t.Run("placeholder detail fields never win", func(t *testing.T) {
		merged := mergeDetail(basic, models.Dance{ID: "d1"})

		if merged.Title != "Tush Push" {
			t.Errorf("expected title preserved, got %q", merged.Title)
		}
		if merged.SongArtist != "Alan Jackson" {
			t.Errorf("expected artist preserved, got %q", merged.SongArtist)
		}
		if merged.Counts != 40 {
			t.Errorf("expected counts preserved, got %d", merged.Counts)
		}
	})

	t.Run("explicit zero counts overwrite", func(t *testing.T) {
		detail := models.Dance{ID: "d1", Counts: 0, CountsKnown: true, WallCount: 0, WallsKnown: true}
		merged := mergeDetail(basic, detail)

		if merged.Counts != 0 {
			t.Errorf("expected explicit zero counts applied, got %d", merged.Counts)
		}
		if merged.WallCount != 0 {
			t.Errorf("expected explicit zero walls applied, got %d", merged.WallCount)
		}
	})

	t.Run("real detail fields overwrite", func(t *testing.T) {
		detail := models.Dance{ID: "d1", DifficultyLevel: "Improver", WallCount: 2, StepSheetURL: "https://example.com"}
		merged := mergeDetail(basic, detail)

		if merged.DifficultyLevel != "Improver" {
			t.Errorf("expected detail level, got %q", merged.DifficultyLevel)
		}
		if merged.WallCount != 2 {
			t.Errorf("expected detail walls, got %d", merged.WallCount)
		}
		if merged.StepSheetURL != "https://example.com" {
			t.Errorf("expected detail URL, got %q", merged.StepSheetURL)
		}
	})
}
