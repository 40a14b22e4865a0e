package models

import (
	"fmt"
	"regexp"
	"strings"
)

// Placeholder values substituted for absent fields during normalization.
const (
	UntitledDance   = "Untitled"
	UnknownSong     = "Unknown Song"
	UnknownArtist   = "Unknown Artist"
	UnknownLevel    = "Unknown"
	ErrorDanceID    = "error"
	ErrorDanceTitle = "Error"
)

// Tier is one of the fixed difficulty classifications used for display coloring.
type Tier string

const (
	TierAbsolute     Tier = "absolute"
	TierBeginner     Tier = "beginner"
	TierImprover     Tier = "improver"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
	TierUnknown      Tier = "unknown"
)

// tierOrder is the documented match order; the first substring hit wins, so
// "Intermediate / Advanced" classifies as intermediate.
var tierOrder = []Tier{TierAbsolute, TierBeginner, TierImprover, TierIntermediate, TierAdvanced}

// TierFor maps a free-text difficulty classification to a [Tier] by ordered
// case-insensitive substring match. Unmatched input maps to [TierUnknown].
func TierFor(difficulty string) Tier {
	lowered := strings.ToLower(difficulty)
	for _, tier := range tierOrder {
		if strings.Contains(lowered, string(tier)) {
			return tier
		}
	}
	return TierUnknown
}

// Dance represents one catalog entry as displayed to the user.
type Dance struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	DifficultyLevel string    `json:"difficultyLevel"`
	Counts          int       `json:"counts"`
	WallCount       int       `json:"wallCount"`
	SongTitle       string    `json:"songTitle"`
	SongArtist      string    `json:"songArtist"`
	StepSheetID     string    `json:"stepSheetId,omitempty"`
	StepSheetURL    string    `json:"originalStepSheetUrl,omitempty"`
	StepSheet       []StepRow `json:"stepSheetContent,omitempty"`

	// CountsKnown and WallsKnown record whether the source payload carried
	// the numeric field at all, so a later merge can honor an explicit zero.
	// They only matter in flight and are never persisted.
	CountsKnown bool `json:"-"`
	WallsKnown  bool `json:"-"`
}

// StepRow is one row of a step sheet. All fields are optional; a row may be a
// section heading, an instruction line, a note, or any combination.
type StepRow struct {
	Heading string `json:"heading,omitempty"`
	Text    string `json:"text,omitempty"`
	Counts  string `json:"counts,omitempty"`
	Note    string `json:"note,omitempty"`
}

// Tier returns the difficulty tier for this dance.
func (d Dance) Tier() Tier {
	return TierFor(d.DifficultyLevel)
}

// Summary returns the "level • counts • walls" line shown under a dance title.
func (d Dance) Summary() string {
	return fmt.Sprintf("%s • %d counts • %d walls", strings.ToLower(d.DifficultyLevel), d.Counts, d.WallCount)
}

// trailingAnnotation matches a bracketed suffix tag like "Waltz (L)".
var trailingAnnotation = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// CleanTitle trims a title and strips one trailing parenthetical annotation.
// An absent title yields the [UntitledDance] placeholder.
func CleanTitle(title string) string {
	cleaned := strings.TrimSpace(trailingAnnotation.ReplaceAllString(title, ""))
	if cleaned == "" {
		return UntitledDance
	}
	return cleaned
}

// ErrorDance returns the sentinel record produced when a source payload is
// absent or malformed beyond recovery.
func ErrorDance() Dance {
	return Normalize(Dance{ID: ErrorDanceID, Title: ErrorDanceTitle})
}

// Normalize defaults every field of a canonical-shape Dance so downstream
// consumers never observe an absent required field. It is idempotent.
func Normalize(d Dance) Dance {
	if d.ID == "" {
		d.ID = ErrorDanceID
	}
	d.Title = CleanTitle(d.Title)
	if d.DifficultyLevel == "" {
		d.DifficultyLevel = UnknownLevel
	}
	if d.Counts < 0 {
		d.Counts = 0
	}
	if d.WallCount < 0 {
		d.WallCount = 0
	}
	if d.SongTitle == "" {
		d.SongTitle = UnknownSong
	}
	if d.SongArtist == "" {
		d.SongArtist = UnknownArtist
	}
	return d
}
