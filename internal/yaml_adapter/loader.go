package yaml_adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/swangridgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"gopkg.in/yaml.v3"
)

// Loader is the YAML implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new YAML configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions lists the file suffixes this loader reads.
func (l *Loader) Extensions() []string {
	return []string{".yaml", ".yml"}
}

// LoadFile parses one YAML file into its top-level values.
func (l *Loader) LoadFile(ctx context.Context, path string) (map[string]cty.Value, error) {
	logger := ctxlog.ForFile(ctx, path)
	logger.Debug("Parsing YAML file.")

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read YAML file %s: %w", path, err)
	}
	attrs, err := l.Parse(src, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("YAML file parsed.", "top_level_keys", len(attrs))
	return attrs, nil
}

// Parse translates a single YAML document into its top-level values.
// filename is used in errors only.
func (l *Loader) Parse(src []byte, filename string) (map[string]cty.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(src))

	var doc yaml.Node
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]cty.Value{}, nil
		}
		return nil, fmt.Errorf("failed to parse YAML file %s: %w", filename, err)
	}
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML file %s: expected a single document", filename)
	}

	val, err := nodeToValue(&doc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode YAML file %s: %w", filename, err)
	}
	if val.IsNull() {
		return map[string]cty.Value{}, nil
	}
	if !val.Type().IsObjectType() {
		return nil, fmt.Errorf("failed to decode YAML file %s: top level must be a mapping, got %s", filename, val.Type().FriendlyName())
	}
	attrs := val.AsValueMap()
	if attrs == nil {
		attrs = map[string]cty.Value{}
	}
	return attrs, nil
}
