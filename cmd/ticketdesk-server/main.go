package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ticketdesk-backend/internal/chat"
	"ticketdesk-backend/internal/config"
	"ticketdesk-backend/internal/db"
	"ticketdesk-backend/internal/log"
	"ticketdesk-backend/internal/notify"
	"ticketdesk-backend/internal/server"
	"ticketdesk-backend/internal/session"
	"ticketdesk-backend/internal/store"
)

const shutdownTimeout = 20 * time.Second

func main() {
	if err := run(); err != nil {
		logger := log.WithComponent("main")
		logger.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}
	log.Configure(log.Config{Level: cfg.LogLevel})
	logger := log.WithComponent("main")
	for _, w := range cfg.Warnings() {
		logger.Warn().Msg(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		dataStore chat.Store
		database  *db.DB
		backend   = "memory"
	)
	if cfg.DatabaseURL != "" {
		database, err = db.New(cfg.DatabaseDriver, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.Close()
		logger.Info().Str("driver", cfg.DatabaseDriver).Msg("database connection established")

		if cfg.RunMigrations {
			if err := database.RunMigrations(db.Migrations, "migrations"); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}
			logger.Info().Msg("database migrations completed")
		}
		ds := store.NewDatabaseStore(database)
		if err := seedSQLite(ctx, cfg, ds); err != nil {
			return err
		}
		dataStore = ds
		backend = cfg.DatabaseDriver
	} else {
		ms, err := store.LoadFixtures(cfg.FixturesPath)
		if err != nil {
			return fmt.Errorf("failed to load fixtures: %w", err)
		}
		dataStore = ms
	}

	catalog, err := chat.LoadCatalog(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load chat catalog: %w", err)
	}

	var mailer notify.Mailer = notify.LogMailer{}
	if cfg.SMTPHost != "" {
		mailer = &notify.SMTPMailer{
			Host:     cfg.SMTPHost,
			Port:     cfg.SMTPPort,
			Username: cfg.SMTPUsername,
			Password: cfg.SMTPPassword,
			From:     cfg.MailFrom,
		}
	}
	bridge := notify.NewBridge(mailer, notify.BridgeOptions{
		DefaultTarget: cfg.SupportInbox,
		Timeout:       cfg.NotifyTimeout,
	})

	cache, closeCache, err := openSessionCache(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	engine := chat.NewEngine(dataStore, bridge, chat.Options{
		Catalog:            catalog,
		SupportInbox:       cfg.SupportInbox,
		PublicSupportEmail: cfg.PublicSupportEmail,
		Currency:           cfg.Currency,
		Location:           cfg.Location(),
	})

	s := server.NewServer(cfg, server.Deps{
		Engine:       engine,
		Cache:        cache,
		Database:     database,
		StoreBackend: backend,
	})
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Str("store", backend).Msg("ticketdesk server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown did not complete")
	}
	if err := bridge.Wait(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("pending notifications abandoned")
	}
	return nil
}

// seedSQLite loads fixtures into an empty local SQLite database.
func seedSQLite(ctx context.Context, cfg config.Config, ds *store.DatabaseStore) error {
	if cfg.DatabaseDriver != db.DriverSQLite || cfg.FixturesPath == "" {
		return nil
	}
	empty, err := ds.IsEmpty(ctx)
	if err != nil || !empty {
		return err
	}
	fx, err := store.ReadFixtures(cfg.FixturesPath)
	if err != nil {
		return err
	}
	if err := ds.Seed(ctx, fx); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}
	logger := log.WithComponent("main")
	logger.Info().Str("path", cfg.FixturesPath).Msg("seeded database from fixtures")
	return nil
}

func openSessionCache(ctx context.Context, cfg config.Config) (session.Cache, func(), error) {
	switch cfg.SessionCache {
	case config.SessionCacheMemory:
		mc := session.NewMemoryCache(cfg.SessionTTL)
		go mc.RunPruner(ctx, time.Minute)
		return mc, func() {}, nil
	case config.SessionCacheRedis:
		rc, err := session.NewRedisCache(ctx, session.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		}, cfg.SessionTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open session cache: %w", err)
		}
		return rc, func() { _ = rc.Close() }, nil
	default:
		return nil, func() {}, nil
	}
}
