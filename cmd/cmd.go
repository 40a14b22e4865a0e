// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and the database.
func setupCommand(r *Runner) *cli.Command {
	configFlag := func() cli.Flag {
		return &cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to configuration file",
			Value:   "config.toml",
		}
	}

	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Create a config.toml from the embedded template",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize the local database and run migrations",
				Flags:  []cli.Flag{configFlag()},
				Action: r.SetupDatabase,
			},
		},
	}
}

// searchCommand handles catalog search operations
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the step-sheet catalog",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Search,
		Commands: []*cli.Command{
			{
				Name:   "recent",
				Usage:  "Show recent search queries",
				Action: r.SearchRecent,
			},
		},
	}
}

// danceCommand fetches one dance with its step sheet
func danceCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "dance",
		Usage: "Show a dance with its step sheet",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "id",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.DanceShow,
	}
}

// collectionCommand handles collection management operations
func collectionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "collection",
		Aliases: []string{"col"},
		Usage:   "Manage dance collections",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List collections and their sizes",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CollectionList,
			},
			{
				Name:  "show",
				Usage: "Show the dances in a collection",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CollectionShow,
			},
			{
				Name:  "create",
				Usage: "Create an empty collection",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.CollectionCreate,
			},
			{
				Name:  "delete",
				Usage: "Delete a user-created collection",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip confirmation prompt",
					},
				},
				Action: r.CollectionDelete,
			},
			{
				Name:  "add",
				Usage: "Fetch a dance by ID and add it to a collection",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Dance ID to add",
						Required: true,
					},
					&cli.StringFlag{
						Name:    "collection",
						Aliases: []string{"to"},
						Usage:   "Target collection name",
						Value:   "dances i know",
					},
				},
				Action: r.CollectionAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove a dance from a collection",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "Dance ID to remove",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "collection",
						Aliases:  []string{"from"},
						Usage:    "Source collection name",
						Required: true,
					},
				},
				Action: r.CollectionRemove,
			},
			{
				Name:   "stats",
				Usage:  "Show dances grouped by difficulty tier",
				Action: r.CollectionStats,
			},
		},
	}
}

// accountCommand handles authentication and profile operations
func accountCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "account",
		Usage: "Manage the remote account and profile",
		Commands: []*cli.Command{
			{
				Name:  "signup",
				Usage: "Create an account with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Required: true,
					},
				},
				Action: r.AccountSignUp,
			},
			{
				Name:  "login",
				Usage: "Sign in with email/password or the hosted identity provider",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name: "email",
					},
					&cli.StringFlag{
						Name: "password",
					},
					&cli.BoolFlag{
						Name:  "provider",
						Usage: "Sign in via browser with the identity provider",
					},
				},
				Action: r.AccountLogin,
			},
			{
				Name:   "logout",
				Usage:  "Sign out and clear the cached session",
				Action: r.AccountLogout,
			},
			{
				Name:   "status",
				Usage:  "Show session and sync status",
				Action: r.AccountStatus,
			},
			{
				Name:  "profile",
				Usage: "Update the profile stored in the synced document",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username"},
					&cli.StringFlag{Name: "first-name"},
					&cli.StringFlag{Name: "last-name"},
					&cli.StringFlag{Name: "bio"},
					&cli.StringFlag{Name: "location"},
					&cli.StringFlag{Name: "photo-url"},
				},
				Action: r.AccountProfile,
			},
		},
	}
}

// syncCommand handles manual document sync operations
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Sync collections with the remote document",
		Commands: []*cli.Command{
			{
				Name:   "status",
				Usage:  "Show session state and local document summary",
				Action: r.SyncStatus,
			},
			{
				Name:   "push",
				Usage:  "Push local collections to the remote document",
				Action: r.SyncPush,
			},
			{
				Name:   "pull",
				Usage:  "Replace local collections with the remote document",
				Action: r.SyncPull,
			},
		},
	}
}

// exportCommand writes collections to a file
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export collections to a file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: json, csv, markdown",
				Value:   "json",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path",
			},
			&cli.BoolFlag{
				Name:  "include-steps",
				Usage: "Fetch missing step sheets before exporting",
			},
		},
		Action: r.Export,
	}
}

// importCommand reads a JSON export and adopts it
func importCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "import",
		Usage: "Replace collections with a JSON export file",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "path"},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip confirmation prompt",
			},
		},
		Action: r.Import,
	}
}

// tuiCommand returns the top-level TUI command for interactive collection management.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal UI",
		Action:  r.TUI,
	}
}
