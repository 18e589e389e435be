package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/alexedwards/scs/sqlite3store"
	"github.com/alexedwards/scs/v2"
	"github.com/yuin/goldmark"

	"github.com/lifeonlars/styrkur/internal/envstruct"
	"github.com/lifeonlars/styrkur/internal/errors"
	"github.com/lifeonlars/styrkur/internal/exercisedb"
	"github.com/lifeonlars/styrkur/internal/logging"
	"github.com/lifeonlars/styrkur/internal/pprofserver"
	"github.com/lifeonlars/styrkur/internal/session"
	"github.com/lifeonlars/styrkur/internal/sqlite"
	"github.com/lifeonlars/styrkur/internal/storage"
	"github.com/lifeonlars/styrkur/internal/workout"
)

type application struct {
	logger         *slog.Logger
	sessionManager *scs.SessionManager
	workouts       *workout.Repository
	programs       *workout.ProgramRepository
	sessions       *session.Store
	exerciseDB     *exercisedb.Client
	markdown       goldmark.Markdown
}

type config struct {
	// Addr is the address to listen on. It's possible to choose the address dynamically with localhost:0.
	Addr string `env:"STYRKUR_ADDR" envDefault:"localhost:8080"`
	// SqliteURL is the URL to the SQLite database. You can use ":memory:" for an ethereal in-memory database.
	SqliteURL string `env:"STYRKUR_SQLITE_URL" envDefault:"./styrkur.sqlite3"`
	// ExerciseDBURL is the base URL of the external exercise database.
	ExerciseDBURL string `env:"STYRKUR_EXERCISEDB_URL" envDefault:"https://exercisedb.example.com/api/v2"`
	// PProfAddr is the optional address to listen on for the pprof server.
	PProfAddr string `env:"STYRKUR_PPROF_ADDR" envDefault:""`
}

func run(ctx context.Context, logger *slog.Logger, lookupEnv func(string) (string, bool)) error {
	var (
		cancel context.CancelFunc
		err    error
	)

	ctx, cancel = signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	var cfg config
	if err = envstruct.Populate(&cfg, lookupEnv); err != nil {
		return errors.Wrap(err, "populate config")
	}

	if cfg.PProfAddr != "" {
		pprofserver.Launch(ctx, cfg.PProfAddr, logger)
	}

	db, err := sqlite.NewDatabase(ctx, cfg.SqliteURL, logger)
	if err != nil {
		return errors.Wrap(err, "open db", slog.String("url", cfg.SqliteURL))
	}
	logger.LogAttrs(ctx, slog.LevelInfo, "connected to db")

	store := storage.NewSQLiteStore(db)
	app := application{
		logger:         logger,
		sessionManager: initializeSessionManager(db),
		workouts:       workout.NewRepository(store, logger),
		programs:       workout.NewProgramRepository(store, logger),
		sessions:       session.NewStore(store, logger),
		exerciseDB:     exercisedb.NewClient(cfg.ExerciseDBURL, logger),
		markdown:       goldmark.New(),
	}

	if err = app.configureAndStartServer(ctx, cfg.Addr, app.routes()); err != nil {
		return errors.Wrap(err, "start server")
	}
	return nil
}

// initializeSessionManager sets up the anonymous cookie session that scopes
// each browser's stored records.
func initializeSessionManager(db *sqlite.Database) *scs.SessionManager {
	sessionManager := scs.New()
	sessionManager.Store = sqlite3store.NewWithCleanupInterval(db.ReadWrite, 24*time.Hour) //nolint:mnd // day
	sessionManager.Lifetime = 30 * 24 * time.Hour                                          //nolint:mnd // a month
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.Secure = true
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.SameSite = http.SameSiteStrictMode
	return sessionManager
}

func main() {
	ctx := context.Background()
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	if err := run(ctx, logger, os.LookupEnv); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "failure starting application", errors.SlogError(err))
		os.Exit(1)
	}
}
