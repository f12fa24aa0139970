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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"numbering_backend/internal/events"
	apphttp "numbering_backend/internal/http"
	"numbering_backend/internal/http/router"
	"numbering_backend/internal/numbering"
	"numbering_backend/internal/numbering/broadcast"
	"numbering_backend/internal/numbering/registry"
	"numbering_backend/internal/numbering/repository"
	"numbering_backend/internal/numbering/service"
	"numbering_backend/platform/config"
	"numbering_backend/platform/db"
	"numbering_backend/platform/logger"
	"numbering_backend/platform/metrics"
	"numbering_backend/platform/redis"
	"numbering_backend/platform/validator"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	strategy, err := service.ParseStrategy(cfg.GetCompleteNumberStrategy())
	if err != nil {
		return err
	}

	// ========================================================================
	// Registry
	// ========================================================================

	records := registry.Default()
	if path := cfg.GetRegistryOverlayFile(); path != "" {
		overlay, err := registry.LoadYAMLFile(path)
		if err != nil {
			return err
		}
		records = append(records, overlay...)
		log.Info("registry overlay loaded", "file", path, "territories", len(overlay))
	}
	if err := registry.CheckAll(records); err != nil {
		return fmt.Errorf("registry seed: %w", err)
	}
	reg := registry.New(records)

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	health := map[string]apphttp.HealthChecker{}

	var store repository.Store = repository.NopStore{}
	if cfg.IsDatabaseEnabled() {
		var pool *pgxpool.Pool
		if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
			p, err := db.NewPool(ctx, cfg)
			if err != nil {
				return err
			}
			pool = p
			return nil
		}); err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
		log.Info("database connection established")

		if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
			return db.RunMigrations(ctx, pool)
		}); err != nil {
			return fmt.Errorf("run database migrations: %w", err)
		}
		log.Info("database migrations complete")

		store = repository.New(pool)
		health["database"] = db.NewPoolAdapter(pool)

		if err := loadStoredSnapshot(ctx, reg, store, log); err != nil {
			return err
		}
	} else {
		log.Warn("DATABASE_URL not configured; registry updates will not be persisted")
	}

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	m := metrics.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	numberingModule := numbering.NewModule(numbering.ModuleConfig{
		Registry:         reg,
		Store:            store,
		Bus:              eventBus,
		Metrics:          m,
		Logger:           log,
		Validator:        validator.New(),
		Strategy:         strategy,
		DefaultTerritory: cfg.GetDefaultTerritory(),
	})
	numberingModule.RegisterHandlers(eventBus)

	group, groupCtx := errgroup.WithContext(ctx)

	redisClient, err := redis.New(ctx, cfg)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		health["redis"] = apphttp.HealthCheckFunc(redisClient.Health)

		instance := uuid.NewString()
		notifier := broadcast.NewNotifier(redisClient.Client, cfg.GetRedisChannel(), instance)
		eventBus.Subscribe(events.RegistryChanged{}.EventName(), notifier)

		listener := broadcast.NewListener(broadcast.ListenerConfig{
			Client:   redisClient.Client,
			Channel:  cfg.GetRedisChannel(),
			Instance: instance,
			Store:    store,
			Registry: reg,
			Bus:      eventBus,
			Log:      log,
		})
		group.Go(func() error {
			return listener.Run(groupCtx, nil)
		})
		log.Info("registry broadcast enabled", "channel", cfg.GetRedisChannel(), "instance", instance)
	} else {
		log.Warn("REDIS_URL not configured; registry changes stay local to this instance")
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:   cfg,
		Logger:   log,
		Health:   health,
		Metrics:  m,
		EventBus: eventBus,
		Modules:  []apphttp.Module{numberingModule},
	}

	srv := &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	group.Go(func() error {
		log.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		err := srv.Shutdown(shutdownCtx)
		eventBus.Wait()
		return err
	})

	return group.Wait()
}

// loadStoredSnapshot installs the newest persisted registry, if any, in place
// of the seed table.
func loadStoredSnapshot(ctx context.Context, reg *registry.Registry, store repository.Store, log *logger.Logger) error {
	records, ok, err := store.Latest(ctx)
	if err != nil {
		return fmt.Errorf("load registry snapshot: %w", err)
	}
	if !ok {
		log.Info("no stored registry snapshot; using seed table")
		return nil
	}
	if err := registry.CheckAll(records); err != nil {
		return fmt.Errorf("stored registry snapshot: %w", err)
	}
	snap := reg.ReplaceAll(records)
	log.RegistryChanged(repository.OperationReplace, snap.Version(), snap.Len(), events.SourceStore)
	return nil
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
