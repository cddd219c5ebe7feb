package config

import (
	"context"

	"github.com/zclconf/go-cty/cty"
)

// Loader is the interface for a format-specific configuration loader.
type Loader interface {
	// Extensions lists the file suffixes the loader reads, e.g. ".hcl".
	Extensions() []string

	// LoadFile parses one file into its top-level values, translated into
	// the format-agnostic value tree the decoders consume.
	LoadFile(ctx context.Context, path string) (map[string]cty.Value, error)
}
