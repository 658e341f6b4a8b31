// Package cli implements the RPAS console: a small REPL that drives the
// identity, submission and file stores. Every invariant lives in the stores;
// the console only resolves the active user and wires the calls together.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"rpas/internal/config"
	"rpas/internal/filestore"
	"rpas/internal/identity"
	"rpas/internal/kvstore"
	"rpas/internal/logging"
	"rpas/internal/models"
	"rpas/internal/submissions"
)

type App struct {
	config      *config.Config
	identity    *identity.Store
	submissions *submissions.Store
	files       *filestore.FileStore
	logger      logging.Logger
	reader      *bufio.Reader
	out         io.Writer

	// user caches the session snapshot for prompt/status purposes; the
	// persisted snapshot in the identity store stays authoritative.
	user *models.User
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	db, err := kvstore.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
	store := kvstore.NewSQLiteStore(db)

	return &App{
		config:      cfg,
		identity:    identity.NewStore(store, logger),
		submissions: submissions.NewStore(store, logger),
		files:       filestore.New(cfg.FilesRoot),
		logger:      logger,
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}, nil
}

func (a *App) Run(ctx context.Context) {
	a.identity.SeedOnce(ctx)

	// Restore a session left over from the previous run, if any.
	if u, err := a.identity.CurrentUser(ctx); err == nil && u != nil {
		a.user = u
	}

	fmt.Fprintln(a.out, "RPAS console (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.user != nil
}

func (a *App) status() string {
	if a.user == nil {
		return ""
	}
	return fmt.Sprintf("(%s %s)", a.user.ID, a.user.Role)
}
