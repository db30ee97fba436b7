// Package testutil provides the end-to-end harness of the integration tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vk/stagefinder/internal/app"
	"github.com/vk/stagefinder/internal/cli"
	"github.com/vk/stagefinder/internal/hcl_adapter"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	// Output is what the run printed for the user: reports or help text.
	Output    string
	LogOutput string
	Err       error
	// App is nil when the run stopped before the app was created.
	App *app.App
}

// RunIntegrationTest provides a standardized harness for running integration tests
// using a default background context.
func RunIntegrationTest(t *testing.T, files map[string]string, args ...string) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, files, args...)
}

// RunIntegrationTestWithContext writes files into a temporary directory and
// runs stagefinder with args, the way the command does. Arguments starting
// with "@" name paths relative to that directory.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, files map[string]string, args ...string) *HarnessResult {
	t.Helper()

	// 1. Write all HCL files to a temporary directory. Names may contain
	//    subdirectories, such as "missions/mun.hcl".
	tmpDir := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(tmpDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0644))
	}

	resolved := make([]string, len(args))
	for i, arg := range args {
		if rel, ok := strings.CutPrefix(arg, "@"); ok {
			arg = filepath.Join(tmpDir, rel)
		}
		resolved[i] = arg
	}

	// 2. Parse the command line and run the app with debug logging.
	out, logs := &app.SafeBuffer{}, &app.SafeBuffer{}
	result := func(a *app.App, err error) *HarnessResult {
		if os.Getenv("STAGEFINDER_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
		}
		return &HarnessResult{Output: out.String(), LogOutput: logs.String(), Err: err, App: a}
	}

	appConfig, shouldExit, err := cli.Parse(resolved, out)
	if err != nil || shouldExit {
		return result(nil, err)
	}
	appConfig.LogLevel = "debug"

	testApp, err := app.NewApp(out, logs, appConfig, hcl_adapter.NewLoader())
	if err != nil {
		return result(nil, err)
	}
	return result(testApp, testApp.Run(ctx))
}
