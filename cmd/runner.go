package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/stepx/internal/library"
	"github.com/desertthunder/stepx/internal/models"
	"github.com/desertthunder/stepx/internal/repositories"
	"github.com/desertthunder/stepx/internal/services"
	"github.com/desertthunder/stepx/internal/shared"
	"github.com/desertthunder/stepx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	catalog    services.Catalog
	profile    services.ProfileStore
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
	engine     *tasks.DanceEngine

	// populated by bootstrap
	db          *sql.DB
	store       *library.Store
	session     *tasks.SessionManager
	collections *repositories.CollectionRepository
	queries     *repositories.RecentQueryRepository
	sessions    *repositories.SessionRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Catalog    services.Catalog
	Profile    services.ProfileStore
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}

	engine := tasks.NewDanceEngine(opts.Catalog, opts.Logger)

	return &Runner{
		config:     opts.Config,
		catalog:    opts.Catalog,
		profile:    opts.Profile,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
		engine:     engine,
	}
}

// SetLogger swaps the runner's logger and the engine's with it.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	r.engine = tasks.NewDanceEngine(r.catalog, logger)
}

// bootstrap opens the local database, loads persisted state, and wires the
// collection store and session manager. Idempotent; commands that touch
// collections or the session call it first.
func (r *Runner) bootstrap() error {
	if r.store != nil {
		return nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	r.db = db
	r.collections = repositories.NewCollectionRepository(db)
	r.queries = repositories.NewRecentQueryRepository(db)
	r.sessions = repositories.NewSessionRepository(db)

	set, err := r.collections.Load()
	if err != nil {
		r.logger.Warn("failed to load collections, starting empty", "error", err)
		set = models.NewCollectionSet()
	}

	r.store = library.NewStore(set, r.logger)
	r.store.OnSave(r.collections.Save)

	// restore the cached session before the manager subscribes, so its
	// subscription fires immediately and pulls the remote document
	if ps, ok := r.profile.(*services.ProfileService); ok {
		if token, err := r.sessions.Token(); err == nil && token != "" {
			if _, err := ps.AdoptToken(token); err != nil {
				r.logger.Warn("cached session invalid, signing out", "error", err)
				if err := r.sessions.ClearToken(); err != nil {
					r.logger.Warn("failed to clear cached token", "error", err)
				}
			}
		}
	}

	r.profile.Subscribe(func(identity *models.Identity) {
		if identity == nil {
			if err := r.sessions.ClearToken(); err != nil {
				r.logger.Warn("failed to clear cached token", "error", err)
			}
			return
		}
		if ps, ok := r.profile.(*services.ProfileService); ok {
			if err := r.sessions.SaveToken(ps.Token()); err != nil {
				r.logger.Warn("failed to cache session token", "error", err)
			}
		}
	})

	r.session = tasks.NewSessionManager(r.profile, r.store, r.logger)
	return nil
}

// Close waits for in-flight sync pushes and releases the database.
func (r *Runner) Close() {
	if r.session != nil {
		r.session.Wait()
	}
	if r.db != nil {
		r.db.Close()
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, searchCommand, danceCommand, collectionCommand, accountCommand, syncCommand, exportCommand, importCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
