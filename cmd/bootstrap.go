package cmd

import (
	"fmt"

	"component-loader/core/config"
	"component-loader/core/database"
	"component-loader/core/factory"
	"component-loader/core/loader"
	"component-loader/core/logger"
	"component-loader/core/metrics"
	"component-loader/core/searchpath"
	"component-loader/core/storage"
	"component-loader/feature/journal"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// runtime holds the dependencies shared by the commands.
type runtime struct {
	cfg      *config.Config
	logger   *zap.Logger
	loader   *loader.Loader
	db       *gorm.DB
	store    storage.Client
	registry *prometheus.Registry
}

// bootstrap loads configuration and builds the loader with its observers.
// The journal database and the package repository are optional: failures are
// logged and the feature stays off.
func bootstrap() (*runtime, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	rt := &runtime{cfg: cfg, logger: logg, registry: prometheus.NewRegistry()}
	rt.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	opts := append(cfg.Loader.Options(),
		loader.WithLogger(logg),
		loader.WithFactories(factory.New(logg.Named("factory"))),
		loader.WithObserver(metrics.New(metrics.WithRegistry(rt.registry))),
	)

	if cfg.Database.Enabled {
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else if err := journal.Migrate(conn); err != nil {
			logg.Warn("Journal migration failed", zap.Error(err))
		} else {
			rt.db = conn
			opts = append(opts, loader.WithObserver(journal.NewRecorder(conn, logg)))
			logg.Info("Connected to journal database", zap.String("driver", cfg.Database.Driver))
		}
	}

	if cfg.Repository.Enabled {
		store, err := storage.NewClient(cfg.Repository)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		rt.store = store
		// Fetched packages land in the cache directory, searched after the configured path.
		opts = append(opts, loader.WithDefaultPath(searchpath.Join(cfg.Loader.Path, cfg.Repository.CacheDir)))
	}

	rt.loader = loader.New(opts...)
	return rt, nil
}
