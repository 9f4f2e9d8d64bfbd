package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/vakwetoweya/internal/client/client"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/config"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/flow"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/models"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/services"
	"github.com/dmitrijs2005/vakwetoweya/internal/client/session"
	"github.com/dmitrijs2005/vakwetoweya/internal/filex"
	"github.com/dmitrijs2005/vakwetoweya/internal/logging"
)

type App struct {
	config         *config.Config
	log            logging.Logger
	db             *sql.DB
	store          session.Store
	watcher        *session.Watcher
	authService    services.AuthService
	catalogService services.CatalogService
	reader         *bufio.Reader
	out            io.Writer

	mu       sync.Mutex
	userName string
}

func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(c.DBPath); err != nil {
		return nil, err
	}

	db, err := session.OpenDatabase(ctx, c.DBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	raw := session.NewSQLiteStore(db)
	watcher := session.NewWatcher(raw, c.SessionCheckInterval, log)
	store := session.WithNotify(raw, watcher.Notify)

	apiClient := client.NewHTTPClient(c.BaseURL, store,
		client.WithTimeout(c.RequestTimeout),
		client.WithLogger(log),
	)

	return &App{
		config:         c,
		log:            log,
		db:             db,
		store:          store,
		watcher:        watcher,
		authService:    services.NewAuthService(apiClient, store, log),
		catalogService: services.NewCatalogService(apiClient),
		reader:         bufio.NewReader(os.Stdin),
		out:            os.Stdout,
	}, nil
}

// Run starts the session watcher and blocks in the REPL until the user exits
// or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	defer a.close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.watcher.Check(ctx); err != nil {
		return fmt.Errorf("read session: %w", err)
	}
	if u, err := a.store.User(ctx); err == nil {
		a.setUser(u)
	}

	events := a.watcher.Subscribe()
	go a.watcher.Run(ctx)
	go a.StartSessionWatcher(events)

	printlnFn("Welcome to the booking CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
	return nil
}

func (a *App) close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.log.Warn(ctx, "closing api client", "error", err)
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.log.Warn(ctx, "closing database", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.watcher.Authenticated()
}

func (a *App) setUser(u *models.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = u.DisplayName()
}

func (a *App) getStatus() string {
	a.mu.Lock()
	name := a.userName
	a.mu.Unlock()

	if !a.isLoggedIn() {
		return "(guest)"
	}
	if name == "" {
		return "(logged in)"
	}
	return fmt.Sprintf("(%s)", name)
}

// StartSessionWatcher reports session changes found by polling until events
// is closed. Changes made by this client's own commands are already printed by
// those commands and only logged here.
//
// When the session disappears from outside nothing is done about it beyond
// telling the user; the next request that needs a token will fail on its own.
func (a *App) StartSessionWatcher(events <-chan session.Event) {
	for ev := range events {
		if !ev.External {
			a.log.Debug(context.Background(), "session changed", "authenticated", ev.Authenticated)
			continue
		}
		if ev.Authenticated {
			printlnFn("\nA session was started outside this client.")
			continue
		}
		a.mu.Lock()
		a.userName = ""
		a.mu.Unlock()
		printlnFn("\nYour session has ended. Log in again to continue.")
	}
}

func (a *App) newFlow() *flow.Controller {
	return flow.New(a.authService,
		flow.WithLogger(a.log),
		flow.OnAuthenticated(a.setUser),
	)
}
