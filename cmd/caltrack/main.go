package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	adapthttp "caltrack/internal/adapter/http"
	"caltrack/internal/adapter/memory"
	"caltrack/internal/adapter/postgres"
	"caltrack/internal/adapter/sqlite"
	"caltrack/internal/app"
	"caltrack/internal/config"
	"caltrack/internal/domain"
	"caltrack/internal/lookup"
	"caltrack/internal/store"
	caltracksync "caltrack/internal/sync"
)

const loadAttempts = 5

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := newLogger(cfg.Log)
	slog.SetDefault(log)

	loc := time.Local
	if cfg.TimeZone != "" {
		loc, err = time.LoadLocation(cfg.TimeZone)
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	persist, users, sessions, closeDB, err := openDatabase(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer closeDB()

	st := store.New()
	syncer := caltracksync.New(ctx, st, persist, log)
	if err := loadWithRetry(ctx, syncer, log); err != nil {
		return fmt.Errorf("hydrate store: %w", err)
	}

	clock := app.SystemClock{Loc: loc}
	entrySvc := app.NewEntryService(st, clock)
	daySvc := app.NewDayService(st, clock)
	goalSvc := app.NewGoalService(st)
	authSvc := app.NewAuthService(users, sessions)

	var lookupClient *lookup.Client
	if cfg.Lookup.APIKey != "" {
		lookupClient = lookup.New(cfg.Lookup.BaseURL, cfg.Lookup.APIKey, log)
	} else {
		log.Info("nutrition lookup disabled, no API key configured")
	}

	oidcConfig, err := setupOIDC(ctx, cfg.SSO)
	if err != nil {
		return fmt.Errorf("configure sso: %w", err)
	}

	handler := adapthttp.New(
		entrySvc, daySvc, goalSvc, authSvc,
		lookupClient, oidcConfig, cfg.Auth.Disabled, log,
	).Handler()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout),
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", "error", err)
	}
	// Let in-flight snapshot writes land before the database closes.
	syncer.Flush()
	return nil
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h)
}

func openDatabase(cfg config.DatabaseConfig) (domain.Persistence, domain.UserRepository, domain.SessionRepository, func(), error) {
	switch cfg.Driver {
	case "sqlite":
		db, err := sqlite.Open(cfg.Path)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return db, db, sqlite.NewSessionRepo(db), func() { _ = db.Close() }, nil
	case "postgres":
		db, err := postgres.Open(cfg.URL)
		if err != nil {
			return nil, nil, nil, nil, err
		}
		return db, db, postgres.NewSessionRepo(db), func() { _ = db.Close() }, nil
	case "memory":
		db := memory.New()
		return db, db, db.NewSessionRepo(), func() {}, nil
	}
	return nil, nil, nil, nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
}

func loadWithRetry(ctx context.Context, syncer *caltracksync.Syncer, log *slog.Logger) error {
	backoff := time.Second
	var err error
	for attempt := 1; attempt <= loadAttempts; attempt++ {
		if err = syncer.Load(ctx); err == nil {
			return nil
		}
		log.Warn("load failed", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return err
}

func setupOIDC(ctx context.Context, cfg config.SSOConfig) (adapthttp.OIDCConfig, error) {
	if cfg.Issuer == "" || cfg.ClientID == "" {
		return adapthttp.OIDCConfig{}, nil
	}
	provider, err := oidc.NewProvider(ctx, cfg.Issuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}
	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
		},
	}, nil
}
