package tasks

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/stepx/internal/models"
	mock "github.com/desertthunder/stepx/internal/testing"
)

func TestDanceEngineExport(t *testing.T) {
	ctx := context.Background()
	set := models.CollectionSet{
		"dances i know": {
			{ID: "d1", Title: "Tush Push", StepSheetID: "sheet-1"},
			{ID: "d2", Title: "Cowboy Charleston"},
		},
	}

	t.Run("writes JSON that imports back", func(t *testing.T) {
		engine := NewDanceEngine(&mock.MockCatalog{}, quietLogger())
		path := filepath.Join(t.TempDir(), "export.json")

		result, err := engine.Export(ctx, nil, set, ExportOpts{Format: "json", Path: path})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Dances != 2 || result.Collections != 1 {
			t.Errorf("unexpected counts: %+v", result)
		}

		imported, err := engine.Import(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !imported.Contains("dances i know", "d1") {
			t.Error("expected exported dance in import")
		}
		if _, ok := imported["dances i want to know"]; !ok {
			t.Error("expected defaults re-seeded on import")
		}
	})

	t.Run("fetches missing step sheets when asked", func(t *testing.T) {
		var keys []string
		catalog := &mock.MockCatalog{
			GetStepSheetFunc: func(ctx context.Context, id string) ([]models.StepRow, error) {
				keys = append(keys, id)
				return []models.StepRow{{Text: "Heel touches"}}, nil
			},
		}
		engine := NewDanceEngine(catalog, quietLogger())
		path := filepath.Join(t.TempDir(), "export.json")

		result, err := engine.Export(ctx, nil, set, ExportOpts{
			Format:       "json",
			Path:         path,
			IncludeSteps: true,
			NumWorkers:   1,
			RateLimit:    1000,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.SheetsFetched != 2 {
			t.Errorf("expected 2 sheets fetched, got %d", result.SheetsFetched)
		}
		if len(keys) != 2 {
			t.Fatalf("expected 2 fetches, got %d", len(keys))
		}

		// the caller's set must not be mutated
		if len(set["dances i know"][0].StepSheet) != 0 {
			t.Error("expected input set untouched")
		}

		content := mock.MustReadFile(t, path)
		if !strings.Contains(content, "Heel touches") {
			t.Error("expected fetched steps in export")
		}
	})

	t.Run("rejects unknown formats", func(t *testing.T) {
		engine := NewDanceEngine(&mock.MockCatalog{}, quietLogger())

		if _, err := engine.Export(ctx, nil, set, ExportOpts{Format: "yaml"}); err == nil {
			t.Error("expected error for unsupported format")
		}
	})
}
