package devserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dmitrijs2005/vakwetoweya/internal/common"
	"github.com/dmitrijs2005/vakwetoweya/internal/devserver/config"
	"github.com/dmitrijs2005/vakwetoweya/internal/logging"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// App runs a Server behind an HTTP listener until cancelled.
type App struct {
	config *config.Config
	logger logging.Logger
	server *Server
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {
	secret := []byte(c.SecretKey)
	if len(secret) == 0 {
		var err error
		if secret, err = common.RandomBytes(32); err != nil {
			return nil, fmt.Errorf("secret init error: %w", err)
		}
	}

	s := New(secret, WithTokenTTL(c.TokenTTL), WithLogger(logger.With("module", "devserver")))

	if c.DemoAccount != "" {
		email, password, ok := strings.Cut(c.DemoAccount, ":")
		if !ok || email == "" || password == "" {
			return nil, fmt.Errorf("demo account must look like email:password")
		}
		if err := s.AddAccount("Demo", "User", email, password); err != nil {
			return nil, fmt.Errorf("demo account error: %w", err)
		}
	}

	return &App{config: c, logger: logger, server: s}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves on the configured address until SIGINT/SIGTERM or ctx is done.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.initSignalHandler(cancelFunc)

	listen, err := net.Listen("tcp", app.config.Addr)
	if err != nil {
		return err
	}
	return app.Serve(ctx, listen)
}

// Serve accepts connections on l until ctx is done, then shuts down
// gracefully.
func (app *App) Serve(ctx context.Context, l net.Listener) error {
	srv := &http.Server{
		Handler:           app.server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          logging.StdLogger(app.logger, slog.LevelWarn),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		app.logger.Info(gctx, "Starting HTTP server", "address", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info(gctx, "Stopping HTTP server...")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
