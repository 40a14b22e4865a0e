// Normalization boundary between raw catalog payloads and canonical records.
//
// The catalog duck-types several concepts under two possible field names; each
// is coalesced here exactly once, in documented preference order, instead of
// scattering fallbacks through consumers.
package services

import (
	"fmt"

	"github.com/desertthunder/stepx/internal/models"
)

// NormalizeDance converts a raw catalog record into a canonical [models.Dance].
//
// Total: never fails. A nil record yields the explicit error sentinel so a
// malformed payload degrades to a renderable placeholder rather than a fault.
// Field preference order: counts ⟵ counts, count; walls ⟵ walls, wallCount;
// step-sheet link ⟵ originalStepSheetUrl, stepSheetUrl, stepsheet.
func NormalizeDance(raw *RawDance) models.Dance {
	if raw == nil {
		return models.ErrorDance()
	}

	dance := models.Dance{
		ID:              raw.ID,
		Title:           raw.Title,
		DifficultyLevel: raw.DifficultyLevel,
		Counts:          coalesceCount(raw.Counts, raw.Count),
		CountsKnown:     raw.Counts != nil || raw.Count != nil,
		WallCount:       coalesceCount(raw.Walls, raw.WallCount),
		WallsKnown:      raw.Walls != nil || raw.WallCount != nil,
		StepSheetID:     raw.StepSheetID,
		StepSheetURL:    firstNonEmpty(raw.OriginalStepSheetURL, raw.StepSheetURL, raw.StepSheet),
	}

	if len(raw.DanceSongs) > 0 && raw.DanceSongs[0].Song != nil {
		dance.SongTitle = raw.DanceSongs[0].Song.Title
		dance.SongArtist = raw.DanceSongs[0].Song.Artist
	}

	return models.Normalize(dance)
}

// NormalizeStepRow coalesces a raw step-sheet row's synonym fields.
// heading ⟵ heading, title; text ⟵ text, description, instruction.
func NormalizeStepRow(raw RawStepRow) models.StepRow {
	return models.StepRow{
		Heading: firstNonEmpty(raw.Heading, raw.Title),
		Text:    firstNonEmpty(raw.Text, raw.Description, raw.Instruction),
		Counts:  countsLabel(raw.Counts),
		Note:    raw.Note,
	}
}

// coalesceCount takes the first present value, clamped to non-negative.
// A first-choice field that is present always wins, even when zero.
func coalesceCount(values ...*float64) int {
	for _, v := range values {
		if v == nil {
			continue
		}
		if *v < 0 {
			return 0
		}
		return int(*v)
	}
	return 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// countsLabel renders a step row's counts field, which the catalog serves as
// either a number or a string.
func countsLabel(v any) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case float64:
		return fmt.Sprintf("%g", c)
	default:
		return fmt.Sprint(c)
	}
}
