package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/swangridgo/internal/config"
	"github.com/specialistvlad/swangridgo/internal/ctxlog"
	"github.com/specialistvlad/swangridgo/internal/group"
)

// Load reads and decodes the input and binds the run period to it. The
// period given on the command line wins over one in the input.
func (a *App) Load(ctx context.Context) (config.Config, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.From(ctx)

	tree, err := config.Load(ctx, a.cfg.InputPath, a.loaders...)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg, err := config.Decode(tree)
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	logger.Debug("Configuration decoded.")

	period, source := a.cfg.Period, "flags"
	if period == nil {
		period, source = cfg.Period, "input"
	}
	if period == nil {
		logger.Debug("No run period given, times are rendered as configured.")
		return cfg, nil
	}
	cfg, err = group.ApplyConfig(cfg, *period)
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to apply run period: %w", err)
	}
	logger.Debug("Run period applied.", "source", source, "start", period.Start, "end", period.End, "interval", period.Interval)
	return cfg, nil
}
