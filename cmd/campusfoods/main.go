package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vbonduro/campusfoods/internal/config"
	"github.com/vbonduro/campusfoods/internal/db"
	"github.com/vbonduro/campusfoods/internal/domain"
	"github.com/vbonduro/campusfoods/internal/imagestore/local"
	"github.com/vbonduro/campusfoods/internal/logging"
	"github.com/vbonduro/campusfoods/internal/seed"
	"github.com/vbonduro/campusfoods/internal/service"
	"github.com/vbonduro/campusfoods/internal/store"
	"github.com/vbonduro/campusfoods/internal/web"
)

type foodRepository interface {
	AllItems(ctx context.Context) ([]domain.FoodItem, error)
	ItemsForOutlet(ctx context.Context, outletID int64) ([]domain.FoodItem, error)
}

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	ctx := context.Background()

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	foodStore := store.NewFoodStore(database)

	if cfg.SeedOnStart {
		if err := seedIfEmpty(ctx, foodStore, cfg.SeedFile, logger); err != nil {
			logger.Error("failed to seed foods", "error", err)
			return
		}
	}

	repo, reload, err := newFoodRepository(ctx, cfg, foodStore, logger)
	if err != nil {
		logger.Error("failed to load foods", "error", err)
		return
	}

	images, err := local.NewLocalImageStore(cfg.ImagePath)
	if err != nil {
		logger.Error("failed to initialize image store", "error", err)
		return
	}

	foodsService := service.NewFoodsService(repo, logger)
	server := web.NewServer(foodsService, images, cfg.AllowedOrigins, logger)

	serve(server.HTTPServer(cfg.ListenAddr), reload, cfg, logger)
}

// seedIfEmpty loads the menu from seedFile, or the built-in menu when seedFile
// is empty, into a database that has no foods yet.
func seedIfEmpty(ctx context.Context, foods *store.FoodStore, seedFile string, logger *slog.Logger) error {
	n, err := foods.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		logger.Info("foods already loaded, skipping seed", "count", n)
		return nil
	}

	var items []domain.FoodItem
	if seedFile == "" {
		items, err = seed.Default()
	} else {
		items, err = seed.LoadFile(seedFile)
	}
	if err != nil {
		return err
	}

	if err := foods.Insert(ctx, items); err != nil {
		return err
	}
	logger.Info("seeded foods", "count", len(items), "source", seedSource(seedFile))
	return nil
}

func seedSource(seedFile string) string {
	if seedFile == "" {
		return "built-in"
	}
	return seedFile
}

// newFoodRepository picks the store the service reads from. In snapshot mode
// the returned reload func refreshes the snapshot from sqlite; in sqlite mode
// it is nil.
func newFoodRepository(ctx context.Context, cfg *config.Config, foods *store.FoodStore, logger *slog.Logger) (foodRepository, func(context.Context) error, error) {
	if cfg.StoreMode == config.StoreModeSQLite {
		logger.Info("serving foods directly from sqlite")
		return foods, nil, nil
	}

	snapshot := store.NewSnapshotStore(nil)
	if err := snapshot.Reload(ctx, foods); err != nil {
		return nil, nil, err
	}
	logger.Info("serving foods from in-memory snapshot", "count", snapshot.Len())

	reload := func(ctx context.Context) error {
		if err := snapshot.Reload(ctx, foods); err != nil {
			return err
		}
		logger.Info("foods snapshot reloaded", "count", snapshot.Len())
		return nil
	}
	return snapshot, reload, nil
}

// serve runs srv until SIGINT or SIGTERM, then shuts it down gracefully.
// SIGHUP triggers reload when one is available.
func serve(srv *http.Server, reload func(context.Context) error, cfg *config.Config, logger *slog.Logger) {
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigs)

	for {
		select {
		case err := <-serverErr:
			logger.Error("server error", "error", err)
			return
		case sig := <-sigs:
			if sig == syscall.SIGHUP {
				if reload == nil {
					logger.Info("reload requested but store mode has no snapshot")
					continue
				}
				if err := reload(context.Background()); err != nil {
					logger.Error("failed to reload foods, keeping previous snapshot", "error", err)
				}
				continue
			}

			logger.Info("shutting down server", "signal", sig.String())
			ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			err := srv.Shutdown(ctx)
			cancel()
			if err != nil {
				logger.Error("server forced to shutdown", "error", err)
				return
			}
			logger.Info("server stopped gracefully")
			return
		}
	}
}
