package models

import (
	"sort"
	"strings"
)

// Default collections present at first run. They are never auto-deleted.
var DefaultCollectionNames = []string{
	"dances i know",
	"dances i kinda know",
	"dances i want to know",
}

// CollectionSet maps a collection name (lowercased, trimmed) to its ordered
// list of dances. Membership within a collection is unique by dance ID.
type CollectionSet map[string][]Dance

// FoldName canonicalizes a collection name: trimmed and case-folded to lowercase.
func FoldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NewCollectionSet returns a set seeded with the three default collections, all empty.
func NewCollectionSet() CollectionSet {
	set := make(CollectionSet, len(DefaultCollectionNames))
	for _, name := range DefaultCollectionNames {
		set[name] = []Dance{}
	}
	return set
}

// Names returns collection names sorted alphabetically.
func (s CollectionSet) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Contains reports whether the named collection holds a dance with the given ID.
func (s CollectionSet) Contains(name, danceID string) bool {
	for _, d := range s[FoldName(name)] {
		if d.ID == danceID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the set.
func (s CollectionSet) Clone() CollectionSet {
	out := make(CollectionSet, len(s))
	for name, dances := range s {
		copied := make([]Dance, len(dances))
		copy(copied, dances)
		out[name] = copied
	}
	return out
}

// Normalized returns a copy of the set with every contained dance passed
// through [Normalize] and every name folded. Applied when adopting a remote document.
func (s CollectionSet) Normalized() CollectionSet {
	out := make(CollectionSet, len(s))
	for name, dances := range s {
		normalized := make([]Dance, len(dances))
		for i, d := range dances {
			normalized[i] = Normalize(d)
		}
		out[FoldName(name)] = normalized
	}
	return out
}

// WithDefaults returns the set with any missing default collection re-seeded empty.
func (s CollectionSet) WithDefaults() CollectionSet {
	for _, name := range DefaultCollectionNames {
		if _, ok := s[name]; !ok {
			s[name] = []Dance{}
		}
	}
	return s
}
