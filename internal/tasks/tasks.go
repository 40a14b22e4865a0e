package tasks

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/services"
	"github.com/desertthunder/stepx/internal/shared"
)

// DanceSnapshot is one stage of a staged detail load. The same dance is
// delivered up to three times: the search record, the record merged with the
// extended detail, and finally the record with its step sheet attached.
type DanceSnapshot struct {
	Dance models.Dance

	// StepsLoaded reports that the step sheet fetch concluded. A concluded
	// fetch with an empty StepSheet means no sheet exists for this dance.
	StepsLoaded bool
}

// DanceEngine orchestrates catalog operations for the CLI and UI layers.
type DanceEngine struct {
	catalog services.Catalog
	logger  *log.Logger
}

// NewDanceEngine creates a DanceEngine backed by the given catalog.
func NewDanceEngine(catalog services.Catalog, logger *log.Logger) *DanceEngine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &DanceEngine{catalog: catalog, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *DanceEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Search queries the catalog. A blank query returns no results and no error.
func (e *DanceEngine) Search(ctx context.Context, progress chan<- ProgressUpdate, query string) ([]models.Dance, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, searchingUpdate(query, e.catalog.Name()))

	dances, err := e.catalog.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	e.sendProgress(progress, searchResultsUpdate(query, dances))
	return dances, nil
}

// LoadFull fetches the extended detail and step sheet for a search record,
// streaming each stage over snapshots. The channel is closed before return so
// consumers can range over it; passing nil skips streaming entirely.
//
// Detail and step-sheet failures are not fatal. A failed detail fetch keeps
// the search record as-is, a failed step fetch leaves the step sheet empty.
// The fully merged record is also returned.
func (e *DanceEngine) LoadFull(ctx context.Context, snapshots chan<- DanceSnapshot, basic models.Dance) (models.Dance, error) {
	if snapshots != nil {
		defer close(snapshots)
	}
	if e.catalog == nil {
		return basic, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	merged := models.Normalize(basic)
	if err := e.sendSnapshot(ctx, snapshots, DanceSnapshot{Dance: merged}); err != nil {
		return merged, err
	}

	detail, err := e.catalog.GetByID(ctx, merged.ID)
	if err != nil {
		e.logger.Warn("detail fetch failed, keeping search record", "id", merged.ID, "err", err)
	} else {
		merged = mergeDetail(merged, *detail)
		if err := e.sendSnapshot(ctx, snapshots, DanceSnapshot{Dance: merged}); err != nil {
			return merged, err
		}
	}

	rows, err := e.catalog.GetStepSheet(ctx, stepSheetKey(merged, basic))
	if err != nil {
		e.logger.Warn("step sheet fetch failed", "id", merged.ID, "err", err)
	} else {
		merged.StepSheet = rows
	}

	if err := e.sendSnapshot(ctx, snapshots, DanceSnapshot{Dance: merged, StepsLoaded: true}); err != nil {
		return merged, err
	}
	return merged, nil
}

// sendSnapshot delivers a snapshot, blocking until the consumer accepts it or
// the context is canceled. Snapshots carry state the consumer must not miss,
// so unlike progress updates they are never dropped.
func (e *DanceEngine) sendSnapshot(ctx context.Context, snapshots chan<- DanceSnapshot, snap DanceSnapshot) error {
	if snapshots == nil {
		return nil
	}
	select {
	case snapshots <- snap:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

/// stepSheetKey picks the identifier for the step sheet fetch: the detail
// record's step sheet ID, then the search record's, then the dance ID itself.
func stepSheetKey(merged, basic models.Dance) string {
	if merged.StepSheetID != "" {
		return merged.StepSheetID
	}
	if basic.StepSheetID != "" {
		return basic.StepSheetID
	}
	return merged.ID
}

// mergeDetail overlays the detail record onto the search record. Normalization
// already replaced absent fields with placeholders, so a detail field only
// wins when it carries a real value. The numeric fields also win when the
// payload carried them explicitly, so a real zero can overwrite.
func mergeDetail(basic, detail models.Dance) models.Dance {
	detail = models.Normalize(detail)
	merged := basic

	if detail.Title != models.UntitledDance {
		merged.Title = detail.Title
	}
	if detail.DifficultyLevel != models.UnknownLevel {
		merged.DifficultyLevel = detail.DifficultyLevel
	}
	if detail.Counts > 0 || detail.CountsKnown {
		merged.Counts = detail.Counts
	}
	if detail.WallCount > 0 || detail.WallsKnown {
		merged.WallCount = detail.WallCount
	}
	if detail.SongTitle != models.UnknownSong {
		merged.SongTitle = detail.SongTitle
	}
	if detail.SongArtist != models.UnknownArtist {
		merged.SongArtist = detail.SongArtist
	}
	if detail.StepSheetID != "" {
		merged.StepSheetID = detail.StepSheetID
	}
	if detail.StepSheetURL != "" {
		merged.StepSheetURL = detail.StepSheetURL
	}
	if len(detail.StepSheet) > 0 {
		merged.StepSheet = detail.StepSheet
	}
	return merged
}
