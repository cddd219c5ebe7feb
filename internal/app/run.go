package app

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/swangridgo/internal/ctxlog"
)

// Run renders the input and writes the control file. It returns the path
// written.
func (a *App) Run(ctx context.Context) (string, error) {
	ctx = a.withLogger(ctx)
	logger := ctxlog.From(ctx)

	cfg, err := a.Load(ctx)
	if err != nil {
		return "", err
	}
	body := cfg.Render() + "\n"

	if err := os.MkdirAll(a.cfg.StagingDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create staging directory: %w", err)
	}
	path := a.cfg.OutputPath()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("failed to write control file: %w", err)
	}
	logger.Info("Control file written.", "path", path, "bytes", len(body))
	return path, nil
}

// Validate loads the input without writing anything.
func (a *App) Validate(ctx context.Context) error {
	if _, err := a.Load(ctx); err != nil {
		return err
	}
	a.logger.Info("Configuration is valid.", "input", a.cfg.InputPath)
	return nil
}
