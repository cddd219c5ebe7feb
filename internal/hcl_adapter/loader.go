package hcl_adapter

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/swangridgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// Loader is the HCL implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions lists the file suffixes this loader reads.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// LoadFile parses one HCL file into its top-level values.
func (l *Loader) LoadFile(ctx context.Context, path string) (map[string]cty.Value, error) {
	logger := ctxlog.ForFile(ctx, path)
	logger.Debug("Parsing HCL file.")

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read HCL file %s: %w", path, err)
	}
	attrs, err := l.Parse(src, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("HCL file parsed.", "top_level_keys", len(attrs))
	return attrs, nil
}

// Parse translates HCL source into its top-level values. filename is used
// in diagnostics only.
func (l *Loader) Parse(src []byte, filename string) (map[string]cty.Value, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("failed to parse HCL file %s: unexpected body type %T", filename, file.Body)
	}
	attrs, diags := bodyAttributes(body)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diagsError(diags))
	}
	return attrs, nil
}

// diagsError keeps only the errors of diags.
func diagsError(diags hcl.Diagnostics) error {
	var errs hcl.Diagnostics
	for _, d := range diags {
		if d.Severity == hcl.DiagError {
			errs = append(errs, d)
		}
	}
	return errs
}
