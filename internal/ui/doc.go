// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for browsing the catalog and managing collections:
//  1. [SearchView] : Search the catalog and browse results
//  2. [CollectionsView] : Browse, create, and delete collections
//  3. [CollectionDetailView] : Browse dances within one collection
//  4. [DanceDetailView] : Staged detail with step sheet and membership toggles
//  5. [AccountView] : Session status, profile, and manual sync
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Detail loads stream staged snapshots through a channel from the DanceEngine, so
// the search record renders immediately while the step sheet is still in flight.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, y/n, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
