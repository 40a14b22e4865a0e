// Package models defines the domain entities for the stepx dance catalog client.
//
// The package contains two categories of types:
//
// 1. Canonical records: the normalized shape of catalog data used everywhere
// past the normalization boundary
//   - [Dance] : one catalog entry with fully-defaulted fields
//   - [StepRow] : one row of a step sheet
//   - [Tier] : fixed difficulty classification used for display coloring
//
// 2. Session state: user-owned data mirrored to local and remote storage
//   - [CollectionSet] : named collections of dances
//   - [SyncDocument] : the whole-document payload exchanged with the remote store
//   - [Profile] : the embedded user profile
//   - [RecentQueries] : bounded most-recent-first search history
//
// Every Dance passes through [Normalize] before display or storage; downstream
// consumers never observe an absent field.
package models
