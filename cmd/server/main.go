package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"formulakb/internal/backend"
	"formulakb/internal/catalog"
	"formulakb/internal/config"
	"formulakb/internal/db"
	"formulakb/internal/db/mock"
	applog "formulakb/internal/log"
	"formulakb/internal/metrics"
	"formulakb/internal/server"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc       = config.Load
	setLogLevelFunc      = applog.SetLevel
	newMockDatabaseFunc  = mock.New
	configureDatabase    = db.Configure
	newSheetsGridFunc    = backend.Default().NewSheetsGrid
	newServerFunc        = func(cfg server.Config) (serverLifecycle, error) { return server.New(cfg) }
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	defer func() { _ = applog.Sync() }()

	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}

	opener := backend.Opener{
		NewSheetsGrid:     newSheetsGridFunc,
		ConfigureDatabase: configureDatabase,
		NewMockDatabase:   newMockDatabaseFunc,
	}
	opened, err := opener.Open(ctx, cfg.Store)
	if err != nil {
		applog.Error(ctx, "failed to open store", "driver", cfg.Store.Driver, "error", err)
		return 1
	}

	m := metrics.New()
	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		Store:              m.InstrumentStore(opened.Store),
		Backend:            opened.Label,
		Metrics:            m,
		Catalog:            catalog.Default(),
		EditorPasswordHash: cfg.Auth.EditorPasswordHash,
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	sigCh, unsubscribe := subscribeShutdownSig()
	defer unsubscribe()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr, "store", opened.Label)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "context cancelled, shutting down http server")
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server encountered an error", "error", err)
		return 1
	}
	return 0
}
