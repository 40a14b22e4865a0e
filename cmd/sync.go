package main

import (
	"context"

	"github.com/urfave/cli/v3"
)

// SyncStatus reports the session state and what would be pushed.
func (r *Runner) SyncStatus(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	r.writePlain("Session: %s\n", r.session.State())
	if identity := r.session.Identity(); identity != nil {
		r.writePlain("Account: %s\n", identity.Email)
		r.writePlain("Document revision: %d\n", r.session.Revision())
	}

	set := r.store.Snapshot()
	dances := 0
	for _, collection := range set {
		dances += len(collection)
	}
	r.writePlain("Local collections: %d (%d dances)\n", len(set), dances)
	return nil
}

// SyncPush writes the local collections to the remote document.
func (r *Runner) SyncPush(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	if err := r.session.Push(ctx, nil); err != nil {
		return err
	}
	return r.writePlain("✓ Pushed collections to remote document\n")
}

// SyncPull replaces the local collections with the remote document.
func (r *Runner) SyncPull(ctx context.Context, cmd *cli.Command) error {
	if err := r.bootstrap(); err != nil {
		return err
	}

	if err := r.session.Pull(ctx, nil); err != nil {
		return err
	}
	return r.writePlain("✓ Pulled collections from remote document\n")
}
