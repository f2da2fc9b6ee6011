package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/khrees2412/tradecv/internal/config"
	"github.com/khrees2412/tradecv/internal/database"
	"github.com/khrees2412/tradecv/internal/logger"
	"github.com/khrees2412/tradecv/internal/render"
)

// App is the dependency container for the CLI application
type App struct {
	ConfigDir string
	Config    *config.Config
	Logger    *logger.Logger
	DB        *sql.DB
	Sessions  *database.Repository
}

// NewApp loads configuration from configDir and opens the session archive.
// An empty configDir means ~/.tradecv.
func NewApp(ctx context.Context, configDir string) (*App, error) {
	if configDir == "" {
		dir, err := config.DefaultDir()
		if err != nil {
			return nil, err
		}
		configDir = dir
	}

	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	log.Debug("app initialized", "config_dir", configDir, "database", cfg.DatabasePath)
	return &App{
		ConfigDir: configDir,
		Config:    cfg,
		Logger:    log,
		DB:        db,
		Sessions:  database.NewRepository(db),
	}, nil
}

// RenderOptions returns renderer settings drawn from the configuration.
func (a *App) RenderOptions() render.Options {
	return render.Options{
		PDFTimeout: a.Config.PDF.Timeout,
		ChromePath: a.Config.PDF.ChromePath,
		Logger:     a.Logger,
	}
}

// Close closes all resources
func (a *App) Close() error {
	if a.Logger != nil {
		a.Logger.Sync()
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
