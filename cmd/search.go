package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/stepx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Search queries the catalog and prints the results. The query is recorded in
// the recent-query history whether or not the search succeeds.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("%w: usage: stepx search \"query\"", shared.ErrEmptyQuery)
	}

	if err := r.bootstrap(); err != nil {
		return err
	}

	if _, err := r.queries.Record(query); err != nil {
		r.logger.Warn("failed to record query", "error", err)
	}

	r.logger.Infof("searching catalog for %q", query)

	dances, err := r.engine.Search(ctx, nil, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(dances, pretty)
	}

	if len(dances) == 0 {
		return r.writePlain("No dances found for %q\n", query)
	}

	r.writePlainHeader(fmt.Sprintf("Results for %q (%d)", query, len(dances)))
	for i, d := range dances {
		r.writePlain("%d. %s [%s]\n", i+1, d.Title, d.ID)
		r.writePlain("   %s • %s - %s\n", d.Summary(), d.SongArtist, d.SongTitle)
	}
	return nil
}

// SearchRecent prints the persisted recent-query history, most recent first.
func (r *Runner) SearchRecent(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	recent, err := r.queries.Load()
	if err != nil {
		return fmt.Errorf("failed to load recent queries: %w", err)
	}

	if len(recent) == 0 {
		return r.writePlain("No recent searches\n")
	}

	for i, q := range recent {
		r.writePlain("%d. %s\n", i+1, q)
	}
	return nil
}
