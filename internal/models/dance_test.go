package models

import (
	"reflect"
	"testing"
)

func TestCleanTitle(t *testing.T) {
	cases := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain title unchanged", "Tush Push", "Tush Push"},
		{"strips trailing annotation", "Waltz (L)", "Waltz"},
		{"strips only one annotation", "Waltz (fr) (L)", "Waltz (fr)"},
		{"keeps interior parenthetical", "Boot (Scootin) Boogie", "Boot (Scootin) Boogie"},
		{"trims whitespace", "  Cowboy Charleston  ", "Cowboy Charleston"},
		{"empty becomes placeholder", "", UntitledDance},
		{"annotation-only becomes placeholder", "(P)", UntitledDance},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CleanTitle(tc.input); got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestTierFor(t *testing.T) {
	cases := []struct {
		input    string
		expected Tier
	}{
		{"Absolute Beginner", TierAbsolute},
		{"Beginner", TierBeginner},
		{"High Improver", TierImprover},
		{"Intermediate", TierIntermediate},
		{"Intermediate / Advanced", TierIntermediate},
		{"Advanced", TierAdvanced},
		{"Phrased", TierUnknown},
		{"", TierUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			if got := TierFor(tc.input); got != tc.expected {
				t.Errorf("TierFor(%q) = %v, expected %v", tc.input, got, tc.expected)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("defaults every absent field", func(t *testing.T) {
		d := Normalize(Dance{})

		if d.ID != ErrorDanceID {
			t.Errorf("expected error ID, got %q", d.ID)
		}
		if d.Title != UntitledDance {
			t.Errorf("expected placeholder title, got %q", d.Title)
		}
		if d.DifficultyLevel != UnknownLevel {
			t.Errorf("expected unknown level, got %q", d.DifficultyLevel)
		}
		if d.SongTitle != UnknownSong || d.SongArtist != UnknownArtist {
			t.Errorf("expected song placeholders, got %q / %q", d.SongTitle, d.SongArtist)
		}
	})

	t.Run("clamps negative counts", func(t *testing.T) {
		d := Normalize(Dance{ID: "d-1", Counts: -4, WallCount: -2})

		if d.Counts != 0 || d.WallCount != 0 {
			t.Errorf("expected counts clamped to zero, got %d / %d", d.Counts, d.WallCount)
		}
	})

	t.Run("is idempotent", func(t *testing.T) {
		first := Normalize(Dance{Title: "Waltz (L)", SongTitle: "Some Song"})
		second := Normalize(first)

		if first.Title != "Waltz" {
			t.Fatalf("expected cleaned title, got %q", first.Title)
		}
		if !reflect.DeepEqual(first, second) {
			t.Errorf("expected normalization to be idempotent, got %+v then %+v", first, second)
		}
	})

	t.Run("preserves populated fields", func(t *testing.T) {
		d := Normalize(Dance{
			ID:              "d-1",
			Title:           "Tush Push",
			DifficultyLevel: "Beginner",
			Counts:          32,
			WallCount:       4,
			SongTitle:       "Chattahoochee",
			SongArtist:      "Alan Jackson",
		})

		if d.Title != "Tush Push" || d.DifficultyLevel != "Beginner" || d.Counts != 32 {
			t.Errorf("expected fields preserved, got %+v", d)
		}
	})
}

func TestRecentQueries(t *testing.T) {
	t.Run("Push prepends newest", func(t *testing.T) {
		queries := RecentQueries{}.Push("waltz").Push("cha cha")

		if len(queries) != 2 || queries[0] != "cha cha" || queries[1] != "waltz" {
			t.Errorf("expected most-recent-first, got %v", queries)
		}
	})

	t.Run("Push moves duplicates to the front", func(t *testing.T) {
		queries := RecentQueries{"cha cha", "waltz"}.Push("waltz")

		if len(queries) != 2 || queries[0] != "waltz" || queries[1] != "cha cha" {
			t.Errorf("expected duplicate moved to front, got %v", queries)
		}
	})

	t.Run("Push ignores blank queries", func(t *testing.T) {
		queries := RecentQueries{"waltz"}.Push("   ")

		if len(queries) != 1 || queries[0] != "waltz" {
			t.Errorf("expected blank push ignored, got %v", queries)
		}
	})

	t.Run("Push truncates to the limit", func(t *testing.T) {
		var queries RecentQueries
		for _, q := range []string{"a", "b", "c", "d", "e", "f"} {
			queries = queries.Push(q)
		}

		if len(queries) != RecentQueryLimit {
			t.Fatalf("expected %d queries, got %d", RecentQueryLimit, len(queries))
		}
		if queries[0] != "f" {
			t.Errorf("expected newest first, got %v", queries)
		}
	})
}

func TestCollectionSet(t *testing.T) {
	t.Run("NewCollectionSet seeds defaults", func(t *testing.T) {
		set := NewCollectionSet()

		if len(set) != len(DefaultCollectionNames) {
			t.Fatalf("expected %d collections, got %d", len(DefaultCollectionNames), len(set))
		}
		for _, name := range DefaultCollectionNames {
			if dances, ok := set[name]; !ok || len(dances) != 0 {
				t.Errorf("expected empty default collection %q", name)
			}
		}
	})

	t.Run("Contains folds the name", func(t *testing.T) {
		set := CollectionSet{"dances i know": {{ID: "d-1"}}}

		if !set.Contains("  Dances I Know ", "d-1") {
			t.Error("expected folded lookup to find dance")
		}
		if set.Contains("dances i know", "d-2") {
			t.Error("expected absent dance to report false")
		}
	})

	t.Run("Clone is deep", func(t *testing.T) {
		set := CollectionSet{"dances i know": {{ID: "d-1", Title: "Original"}}}
		clone := set.Clone()
		clone["dances i know"][0].Title = "Mutated"

		if set["dances i know"][0].Title != "Original" {
			t.Error("expected clone mutation not to touch the source")
		}
	})

	t.Run("Normalized folds names and normalizes dances", func(t *testing.T) {
		set := CollectionSet{" My List ": {{Title: "Waltz (L)"}}}
		normalized := set.Normalized()

		dances, ok := normalized["my list"]
		if !ok {
			t.Fatalf("expected folded name, got %v", normalized)
		}
		if dances[0].Title != "Waltz" || dances[0].SongTitle != UnknownSong {
			t.Errorf("expected normalized dance, got %+v", dances[0])
		}
	})

	t.Run("WithDefaults re-seeds missing defaults only", func(t *testing.T) {
		set := CollectionSet{"dances i know": {{ID: "d-1"}}}
		out := set.WithDefaults()

		if len(out["dances i know"]) != 1 {
			t.Error("expected populated default left alone")
		}
		for _, name := range DefaultCollectionNames {
			if _, ok := out[name]; !ok {
				t.Errorf("expected default %q seeded", name)
			}
		}
	})
}
