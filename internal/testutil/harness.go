package testutil

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/specialistvlad/pathgraph/internal/app"
	"github.com/stretchr/testify/require"
)

// DirPlaceholder is replaced by the harness's temporary directory in every
// file it writes.
const DirPlaceholder = "{{dir}}"

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

// HarnessResult holds the outcomes of a pipeline test run.
type HarnessResult struct {
	Dir       string
	LogOutput string
	Err       error
	App       *app.App
	Result    *app.Result
}

// Path joins name onto the run's temporary directory.
func (r *HarnessResult) Path(name string) string {
	return filepath.Join(r.Dir, name)
}

// RunPipeline runs a full pipeline with a background context. files maps
// names relative to a fresh temporary directory to their contents; every
// ".hcl" file among them is passed to the app as configuration, in name
// order.
func RunPipeline(t *testing.T, files map[string]string, setup ...func(dir string)) *HarnessResult {
	t.Helper()
	return RunPipelineWithContext(context.Background(), t, files, setup...)
}

// RunPipelineWithContext is RunPipeline with a caller-provided context. The
// setup functions run after the files are written and before the app starts,
// typically to place input datasets.
func RunPipelineWithContext(ctx context.Context, t *testing.T, files map[string]string, setup ...func(dir string)) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	var configPaths []string
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(strings.ReplaceAll(content, DirPlaceholder, dir)), 0o644))
		if filepath.Ext(name) == ".hcl" {
			configPaths = append(configPaths, path)
		}
	}
	sort.Strings(configPaths)
	for _, fn := range setup {
		fn(dir)
	}

	cfg, err := app.NewConfig(app.Config{
		ConfigPaths: configPaths,
		EnvFile:     filepath.Join(dir, ".env"),
		LogLevel:    "debug",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	logBuffer := &SafeBuffer{}
	t.Cleanup(func() {
		if os.Getenv("PATHGRAPH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	res := &HarnessResult{Dir: dir}
	res.App, err = app.NewApp(logBuffer, cfg, nil)
	if err != nil {
		res.Err = err
		res.LogOutput = logBuffer.String()
		return res
	}
	res.Result, res.Err = res.App.Run(ctx)
	res.LogOutput = logBuffer.String()
	return res
}
