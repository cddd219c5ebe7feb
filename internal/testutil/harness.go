package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/specialistvlad/swangridgo/internal/app"
	"github.com/specialistvlad/swangridgo/internal/subcomponent"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcome of one render run.
type HarnessResult struct {
	LogOutput string
	Err       error
	Output    string // control file text, empty when the run failed
}

// RunRender writes files (relative path to content, unindented) into a
// fresh input directory and renders it with the given period, which may be
// nil.
func RunRender(t *testing.T, files map[string]string, period *subcomponent.Period) *HarnessResult {
	t.Helper()

	root := t.TempDir()
	inputDir := filepath.Join(root, "input")
	stagingDir := filepath.Join(root, "staging")
	for name, content := range files {
		path := filepath.Join(inputDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(Unindent(content)), 0o644))
	}

	cfg, err := app.NewConfig(app.Config{
		InputPath:  inputDir,
		StagingDir: stagingDir,
		LogLevel:   "debug",
		LogFormat:  "text",
		Period:     period,
	})
	require.NoError(t, err)

	logs := &SafeBuffer{}
	path, runErr := app.NewApp(logs, cfg).Run(context.Background())

	if os.Getenv("SWANGRID_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	res := &HarnessResult{LogOutput: logs.String(), Err: runErr}
	if runErr == nil {
		out, err := os.ReadFile(path)
		require.NoError(t, err)
		res.Output = string(out)
	}
	return res
}
