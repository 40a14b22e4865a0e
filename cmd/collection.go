package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/stepx/internal/formatter"
	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/shared"
	"github.com/urfave/cli/v3"
)

// DanceShow fetches a dance's detail and step sheet and prints them.
func (r *Runner) DanceShow(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if id == "" {
		return fmt.Errorf("%w: usage: stepx dance <id>", shared.ErrMissingArgument)
	}

	dance, err := r.engine.LoadFull(ctx, nil, models.Dance{ID: id})
	if err != nil {
		return err
	}

	if useJSON {
		return r.writeJSON(dance, pretty)
	}

	r.writePlainHeader(dance.Title)
	r.writePlain("%s\n", dance.Summary())
	r.writePlain("%s - %s\n", dance.SongArtist, dance.SongTitle)
	if dance.StepSheetURL != "" {
		r.writePlain("Step sheet: %s\n", dance.StepSheetURL)
	}

	if len(dance.StepSheet) == 0 {
		r.writePlainln("Step sheet not available")
		return nil
	}

	r.writePlain("\n")
	for _, row := range dance.StepSheet {
		switch {
		case row.Heading != "":
			r.writePlain("%s\n", row.Heading)
		case row.Text != "":
			if row.Counts != "" {
				r.writePlain("  [%s] %s\n", row.Counts, row.Text)
			} else {
				r.writePlain("  %s\n", row.Text)
			}
		case row.Note != "":
			r.writePlain("  (%s)\n", row.Note)
		}
	}
	return nil
}

// CollectionList prints all collections and their sizes.
func (r *Runner) CollectionList(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(r.store.Snapshot(), true)
	}

	for _, name := range r.store.Names() {
		dances, _ := r.store.Get(name)
		r.writePlain("%s (%d)\n", name, len(dances))
	}
	return nil
}

// CollectionShow prints the dances in one collection.
func (r *Runner) CollectionShow(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: usage: stepx collection show <name>", shared.ErrMissingArgument)
	}

	if err := r.bootstrap(); err != nil {
		return err
	}

	dances, ok := r.store.Get(name)
	if !ok {
		return fmt.Errorf("%w: %q", shared.ErrCollectionNotFound, models.FoldName(name))
	}

	if cmd.Bool("json") {
		return r.writeJSON(dances, true)
	}

	r.writePlainHeader(models.FoldName(name))
	if len(dances) == 0 {
		r.writePlain("(empty)\n")
		return nil
	}
	for i, d := range dances {
		r.writePlain("%d. %s [%s]\n", i+1, d.Title, d.ID)
		r.writePlain("   %s • %s - %s\n", d.Summary(), d.SongArtist, d.SongTitle)
	}
	return nil
}

// CollectionCreate creates an empty collection.
func (r *Runner) CollectionCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: usage: stepx collection create <name>", shared.ErrMissingArgument)
	}

	if err := r.bootstrap(); err != nil {
		return err
	}

	if err := r.store.Create(name); err != nil {
		return err
	}
	return r.writePlain("✓ Created %q\n", models.FoldName(name))
}

// CollectionDelete deletes a user-created collection. Refuses without --yes.
func (r *Runner) CollectionDelete(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: usage: stepx collection delete <name>", shared.ErrMissingArgument)
	}

	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: deleting %q removes its dances; re-run with --yes", shared.ErrInvalidArgument, models.FoldName(name))
	}

	if err := r.bootstrap(); err != nil {
		return err
	}

	if err := r.store.Delete(name); err != nil {
		return err
	}
	return r.writePlain("✓ Deleted %q\n", models.FoldName(name))
}

// CollectionAdd fetches a dance by ID from the catalog and adds it.
func (r *Runner) CollectionAdd(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	name := cmd.String("collection")

	if err := r.bootstrap(); err != nil {
		return err
	}

	dance, err := r.engine.LoadFull(ctx, nil, models.Dance{ID: id})
	if err != nil {
		return err
	}

	added, err := r.store.Add(dance, name)
	if err != nil {
		return err
	}
	if !added {
		return r.writePlain("%s is already in %q\n", dance.Title, models.FoldName(name))
	}
	return r.writePlain("✓ Added %s to %q\n", dance.Title, models.FoldName(name))
}

// CollectionRemove removes a dance from a collection.
func (r *Runner) CollectionRemove(ctx context.Context, cmd *cli.Command) error {
	id := cmd.String("id")
	name := cmd.String("collection")

	if err := r.bootstrap(); err != nil {
		return err
	}

	removed, err := r.store.Remove(id, name)
	if err != nil {
		return err
	}
	if !removed {
		return r.writePlain("Dance %s not found in %q\n", id, models.FoldName(name))
	}
	return r.writePlain("✓ Removed %s from %q\n", id, models.FoldName(name))
}

// CollectionStats prints unique dances grouped by difficulty tier.
func (r *Runner) CollectionStats(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	grouped := formatter.SortedTiers(r.store.Snapshot())

	order := []models.Tier{
		models.TierAbsolute, models.TierBeginner, models.TierImprover,
		models.TierIntermediate, models.TierAdvanced, models.TierUnknown,
	}
	for _, tier := range order {
		dances := grouped[tier]
		if len(dances) == 0 {
			continue
		}
		r.writePlain("%s (%d)\n", tier, len(dances))
		for _, d := range dances {
			r.writePlain("  %s\n", d.Title)
		}
	}
	return nil
}
