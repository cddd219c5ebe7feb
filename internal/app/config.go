package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/swangridgo/internal/subcomponent"
)

// DefaultOutputName is the file name SWAN reads its commands from.
const DefaultOutputName = "INPUT"

// Config holds everything a run needs.
type Config struct {
	InputPath  string // file or directory of .hcl/.yaml files
	StagingDir string // where the control file is written
	OutputName string

	LogFormat string
	LogLevel  string

	// Period overrides the period read from the input, if set.
	Period *subcomponent.Period
}

// NewConfig fills defaults and validates cfg.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, errors.New("InputPath is a required configuration field and cannot be empty")
	}
	if cfg.StagingDir == "" {
		cfg.StagingDir = "."
	}
	if cfg.OutputName == "" {
		cfg.OutputName = DefaultOutputName
	}
	if strings.ContainsRune(cfg.OutputName, filepath.Separator) {
		return nil, fmt.Errorf("output name %q must be a bare file name", cfg.OutputName)
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.Period != nil {
		if err := cfg.Period.Validate(); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// OutputPath is the control file written by Run.
func (c *Config) OutputPath() string {
	return filepath.Join(c.StagingDir, c.OutputName)
}
