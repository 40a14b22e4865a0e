package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/stepx/internal/shared"
	"github.com/desertthunder/stepx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export writes the local collections to a file.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	result, err := r.engine.Export(ctx, nil, r.store.Snapshot(), tasks.ExportOpts{
		Format:       cmd.String("format"),
		Path:         cmd.String("output"),
		IncludeSteps: cmd.Bool("include-steps"),
	})
	if err != nil {
		return err
	}

	r.writePlain("✓ Exported %d dances in %d collections to %s\n", result.Dances, result.Collections, result.Path)
	if result.SheetsFetched > 0 || result.SheetFailures > 0 {
		r.writePlain("  Step sheets fetched: %d, failed: %d\n", result.SheetsFetched, result.SheetFailures)
	}
	return nil
}

// Import replaces the local collections with a JSON export file.
// Refuses without --yes since the current collections are discarded.
func (r *Runner) Import(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: usage: stepx import <path>", shared.ErrMissingArgument)
	}

	if !cmd.Bool("yes") {
		return fmt.Errorf("%w: importing replaces all current collections; re-run with --yes", shared.ErrInvalidArgument)
	}

	if err := r.bootstrap(); err != nil {
		return err
	}

	set, err := r.engine.Import(path)
	if err != nil {
		return err
	}

	r.store.Adopt(set)

	total := 0
	for _, dances := range set {
		total += len(dances)
	}
	return r.writePlain("✓ Imported %d dances in %d collections\n", total, len(set))
}
