package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/swangridgo/internal/config"
	"github.com/specialistvlad/swangridgo/internal/ctxlog"
	"github.com/specialistvlad/swangridgo/internal/hcl_adapter"
	"github.com/specialistvlad/swangridgo/internal/yaml_adapter"
)

// App runs one configured render.
type App struct {
	cfg     *Config
	logger  *slog.Logger
	loaders []config.Loader
}

// NewApp returns an App logging to logW. Without loaders it reads HCL and
// YAML.
func NewApp(logW io.Writer, cfg *Config, loaders ...config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	if len(loaders) == 0 {
		loaders = []config.Loader{hcl_adapter.NewLoader(), yaml_adapter.NewLoader()}
	}
	logger.Debug("App configured.", "input", cfg.InputPath, "output", cfg.OutputPath(), "loaders", len(loaders))
	return &App{cfg: cfg, logger: logger, loaders: loaders}
}

func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.Into(ctx, a.logger)
}
