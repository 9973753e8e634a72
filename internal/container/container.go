package container

import (
	"fmt"
	"io"

	"inflammation/adapters/stats/engine"
	"inflammation/app"
	"inflammation/internal"
	"inflammation/internal/config"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *internal.Logger

	Engine   *engine.StatsEngine
	Analysis *app.AnalysisService
}

// New creates a new dependency injection container logging to logOut
func New(cfg *config.Config, logOut io.Writer) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger := internal.NewLogger(logOut, cfg.Log.Level)
	statsEngine := engine.NewStatsEngine()

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Engine:   statsEngine,
		Analysis: app.NewAnalysisService(statsEngine, cfg.Sources, logger),
	}, nil
}
