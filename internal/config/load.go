package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/swangridgo/internal/ctxlog"
	"github.com/specialistvlad/swangridgo/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
)

// Document accumulates the top-level values of one or more files. A key may
// be defined by one file only.
type Document struct {
	values map[string]cty.Value
	origin map[string]string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{values: map[string]cty.Value{}, origin: map[string]string{}}
}

// Merge adds the values read from file.
func (d *Document) Merge(file string, values map[string]cty.Value) error {
	for key, val := range values {
		if prev, dup := d.origin[key]; dup {
			return fmt.Errorf("duplicate top-level key %q in %s, already defined in %s", key, file, prev)
		}
		d.values[key] = val
		d.origin[key] = file
	}
	return nil
}

// Value returns the merged document as an object.
func (d *Document) Value() cty.Value {
	return cty.ObjectVal(d.values)
}

// Load reads path, a file or a directory, with the loader registered for
// each file's extension and merges the results.
func Load(ctx context.Context, path string, loaders ...Loader) (cty.Value, error) {
	logger := ctxlog.From(ctx)

	byExt := make(map[string]Loader)
	var exts []string
	for _, l := range loaders {
		for _, ext := range l.Extensions() {
			byExt[ext] = l
			exts = append(exts, ext)
		}
	}

	files, err := fsutil.FindFiles(path, exts...)
	if err != nil {
		return cty.NilVal, err
	}
	if len(files) == 0 {
		return cty.NilVal, fmt.Errorf("no configuration files with extensions %v found in %s", exts, path)
	}
	logger.Debug("Discovered configuration files.", "count", len(files))

	doc := NewDocument()
	for _, file := range files {
		values, err := byExt[filepath.Ext(file)].LoadFile(ctx, file)
		if err != nil {
			return cty.NilVal, err
		}
		if err := doc.Merge(file, values); err != nil {
			return cty.NilVal, err
		}
	}

	logger.Debug("Configuration loading complete.", "files", len(files), "top_level_keys", len(doc.values))
	return doc.Value(), nil
}
