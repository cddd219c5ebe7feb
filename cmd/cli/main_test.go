package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	// Invalid HCL fails while loading, before anything is written.
	path := filepath.Join(t.TempDir(), "main.hcl")
	require.NoError(t, os.WriteFile(path, []byte("startup {\n  mode {\n"), 0o600))
	staging := t.TempDir()

	err := run(context.Background(), []string{"render", path, "--staging-dir", staging}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse HCL file")
	require.NoFileExists(t, filepath.Join(staging, "INPUT"))
}

func TestRun_Help(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	require.NoError(t, run(context.Background(), []string{"-h"}, out, &bytes.Buffer{}))
	require.Contains(t, out.String(), "Usage:")
}

func TestRun_UnknownFlag(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), []string{"--this-is-not-a-valid-flag"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown flag: --this-is-not-a-valid-flag")
}
