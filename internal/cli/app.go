package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/peizhen/bookfair/internal/cart"
	"github.com/peizhen/bookfair/internal/catalog"
	"github.com/peizhen/bookfair/internal/session"
	"github.com/peizhen/bookfair/internal/store"
)

// App wires the catalog, session, and engines for one command invocation.
// Every subcommand builds an App, runs its operation, and closes it.
type App struct {
	Catalog *catalog.Store
	Session *session.Session
	Saver   *session.Saver
	Cart    *cart.Engine
	Auth    *session.Manager
	Log     *slog.Logger

	db *store.Store // nil when running in-memory only
}

// NewApp builds the application from global flags. Catalog load failures
// and an unopenable database are command errors; a corrupt or unreadable
// session slot is not: restore is fail-open and starts fresh.
func NewApp(opts *RootOptions) (*App, error) {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))

	seed := catalog.DefaultSeed()
	if opts.SeedDir != "" {
		loaded, err := LoadSeed(opts.SeedDir)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load catalog seed", err)
		}
		seed = loaded
	}
	cat := catalog.NewStore(nil)
	if err := cat.Load(seed); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	log.Debug("catalog loaded", "books", cat.Len())

	app := &App{Catalog: cat, Log: log}

	var persister session.Persister = session.NopPersister{}
	if opts.Database != "" {
		db, err := store.Open(opts.Database)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open session database", err)
		}
		app.db = db
		persister = db

		sess, restoreErr := db.Restore()
		if restoreErr != nil {
			log.Warn("session restore failed, starting fresh", "error", restoreErr)
		}
		app.Session = sess
	} else {
		app.Session = session.New()
	}

	app.Saver = session.NewSaver(persister, log)
	app.Cart = cart.New(app.Saver, nil)
	app.Auth = session.NewManager(app.Saver, nil)
	return app, nil
}

// Close releases the session database, if any.
func (a *App) Close() {
	if a.db == nil {
		return
	}
	if err := a.db.Close(); err != nil {
		a.Log.Error("error closing session database", "error", err)
	}
}

// Renderer builds the output formatter for the selected format.
func (a *App) Renderer(opts *RootOptions, w io.Writer) *OutputFormatter {
	return &OutputFormatter{Format: opts.Format, Writer: w}
}

// ResolveBook finds a catalog entry by ID, falling back to an exact name
// match when the reference is not an ID. An ambiguous name is an error so
// a cart mutation never lands on the wrong book.
func (a *App) ResolveBook(ref string) (catalog.Book, error) {
	if b, ok := a.Catalog.Get(ref); ok {
		return b, nil
	}
	var found []catalog.Book
	for _, b := range a.Catalog.All() {
		if b.Name == ref {
			found = append(found, b)
		}
	}
	switch len(found) {
	case 0:
		return catalog.Book{}, fmt.Errorf("no book with id or name %q", ref)
	case 1:
		return found[0], nil
	default:
		return catalog.Book{}, fmt.Errorf("name %q matches %d books, use an id", ref, len(found))
	}
}
