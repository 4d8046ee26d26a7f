package cmd

import (
	"context"

	"github.com/getlawrence/langreg/internal/config"
	"github.com/getlawrence/langreg/internal/languages"
	"github.com/getlawrence/langreg/internal/logger"
)

type contextKey string

// ConfigKey is the context key the root command stores the AppConfig under.
const ConfigKey contextKey = "config"

// AppConfig holds all the shared configuration and dependencies
type AppConfig struct {
	Config   *config.Config
	Registry *languages.Registry
	Logger   *logger.Verbose
}

// NewAppConfig creates a new configuration instance with an uninitialized
// registry; the root command populates it before any subcommand runs.
func NewAppConfig(cfg *config.Config, l *logger.Verbose) *AppConfig {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if l == nil {
		l = logger.NewVerbose(nil, false)
	}
	return &AppConfig{
		Config:   cfg,
		Registry: languages.NewRegistry(languages.WithLogger(l)),
		Logger:   l,
	}
}

func appConfigFrom(ctx context.Context) *AppConfig {
	if ctx == nil {
		return nil
	}
	app, _ := ctx.Value(ConfigKey).(*AppConfig)
	return app
}
