package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/stepx/internal/models"
)

var (
	_ list.Item = danceItem{}
	_ list.Item = collectionItem{}
)

// danceItem wraps [models.Dance] to implement [list.Item].
type danceItem struct {
	dance models.Dance
}

func (i danceItem) FilterValue() string { return i.dance.Title }
func (i danceItem) Title() string       { return i.dance.Title }
func (i danceItem) Description() string {
	return fmt.Sprintf("%s • %s - %s", i.dance.Summary(), i.dance.SongArtist, i.dance.SongTitle)
}

// collectionItem wraps a named collection to implement [list.Item].
type collectionItem struct {
	name  string
	count int
}

func (i collectionItem) FilterValue() string { return i.name }
func (i collectionItem) Title() string       { return i.name }
func (i collectionItem) Description() string {
	if i.count == 1 {
		return "1 dance"
	}
	return fmt.Sprintf("%d dances", i.count)
}
