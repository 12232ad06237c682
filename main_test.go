package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/filetug/extcensus/pkg/census"
	"github.com/filetug/extcensus/pkg/explorer"
	"github.com/filetug/extcensus/pkg/sources"
	"github.com/rivo/tview"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points HOME at an empty directory and captures stdout and stderr.
func isolate(t *testing.T) (out, errOut *bytes.Buffer) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	out, errOut = new(bytes.Buffer), new(bytes.Buffer)
	oldStdout, oldStderr, oldLastPath := stdout, stderr, lastPath
	stdout, stderr = out, errOut
	lastPath = func() string { return "/last" }
	t.Cleanup(func() {
		stdout, stderr, lastPath = oldStdout, oldStderr, oldLastPath
	})
	return out, errOut
}

func stubUI(t *testing.T) {
	t.Helper()
	oldNewApp, oldRun := newApp, run
	newApp = func(opts explorer.Options) *tview.Application {
		return tview.NewApplication()
	}
	run = func(app application) {}
	t.Cleanup(func() {
		newApp, run = oldNewApp, oldRun
	})
}

func runCli(args ...string) error {
	return newCliApp().Run(append([]string{"extcensus"}, args...))
}

func sampleDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"a.go":         "package a",
		"b.go":         "package b",
		"sub/c.txt":    "c",
		"sub/deep/d.x": "d",
	} {
		p := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	}
	return dir
}

func TestMainRoot(t *testing.T) {
	isolate(t)
	oldArgs := os.Args
	os.Args = []string{"extcensus"}
	defer func() { os.Args = oldArgs }()

	runCalled := false
	oldRun, oldNewApp := run, newApp
	defer func() {
		run, newApp = oldRun, oldNewApp
	}()
	var gotOpts explorer.Options
	newApp = func(opts explorer.Options) *tview.Application {
		gotOpts = opts
		return tview.NewApplication()
	}
	run = func(app application) {
		runCalled = true
	}

	main()

	if !runCalled {
		t.Fatal("expected main function to call run")
	}
	assert.Equal(t, "", gotOpts.Path)
	assert.Equal(t, "/last", gotOpts.LastPath)
	assert.NotNil(t, gotOpts.OnAnalyzed)
	assert.Equal(t, 5, gotOpts.TopK)
	assert.Equal(t, -1, gotOpts.MaxDepth)
}

func TestMain_Error(t *testing.T) {
	_, errOut := isolate(t)
	oldArgs, oldExit := os.Args, osExit
	defer func() { os.Args, osExit = oldArgs, oldExit }()
	os.Args = []string{"extcensus", filepath.Join(t.TempDir(), "missing")}
	exitCode := -1
	osExit = func(code int) { exitCode = code }

	main()

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, errOut.String(), "error: path not found")
}

func Test_newApp(t *testing.T) {
	oldSetupApp := setupApp
	defer func() {
		setupApp = oldSetupApp
	}()
	var got explorer.Options
	setupApp = func(app *tview.Application, opts explorer.Options) *explorer.Explorer {
		got = opts
		return nil
	}

	app := newApp(explorer.Options{Path: "/tmp", TopK: 3})
	if app == nil {
		t.Errorf("newApp returned nil")
	}
	assert.Equal(t, "/tmp", got.Path)
	assert.Equal(t, 3, got.TopK)
}

type fakeApp struct {
	err error
}

func (f fakeApp) Run() error {
	return fmt.Errorf("app failed: %w", f.err)
}

func Test_run(t *testing.T) {
	_, errOut := isolate(t)
	var expectedErr = errors.New("test error")
	run(fakeApp{err: expectedErr})
	assert.Contains(t, errOut.String(), expectedErr.Error())
}

func TestAction_Formats(t *testing.T) {
	dir := sampleDir(t)

	t.Run("tree", func(t *testing.T) {
		out, _ := isolate(t)
		require.NoError(t, runCli("--no-color", dir))
		name := filepath.Base(dir)
		expected := "└── [" + name + "] (total: 4 | go: 2, txt: 1, x: 1)\n" +
			"    └── [sub] (total: 2 | txt: 1, x: 1)\n" +
			"        └── [deep] (total: 1 | x: 1)\n"
		assert.Equal(t, expected, out.String())
	})

	t.Run("depth_and_top_flags", func(t *testing.T) {
		out, _ := isolate(t)
		require.NoError(t, runCli("--no-color", "-d", "0", "-k", "1", dir))
		assert.Equal(t, "└── ["+filepath.Base(dir)+"] (total: 4 | go: 2, …)\n", out.String())
	})

	t.Run("positional_depth_and_top", func(t *testing.T) {
		out, _ := isolate(t)
		require.NoError(t, runCli("--no-color", dir, "1", "0"))
		assert.Equal(t,
			"└── ["+filepath.Base(dir)+"] (total: 4 | …)\n"+
				"    └── [sub] (total: 2 | …)\n",
			out.String())
	})

	t.Run("json", func(t *testing.T) {
		out, _ := isolate(t)
		require.NoError(t, runCli("--format", "json", dir))
		var root census.Node
		require.NoError(t, json.Unmarshal(out.Bytes(), &root))
		assert.Equal(t, filepath.Base(dir), root.Name)
		assert.Equal(t, 4, root.Total())
		require.Len(t, root.Children, 1)
		assert.Equal(t, "sub", root.Children[0].Name)
	})

	t.Run("yaml", func(t *testing.T) {
		out, _ := isolate(t)
		require.NoError(t, runCli("-f", "yml", dir))
		assert.Contains(t, out.String(), "name: sub")
	})

	t.Run("bar", func(t *testing.T) {
		out, _ := isolate(t)
		require.NoError(t, runCli("-f", "bar", dir))
		assert.Contains(t, out.String(), "File-type counts per subfolder under '"+filepath.Base(dir)+"'")
		assert.Contains(t, out.String(), "sub")
	})

	t.Run("bar_without_subfolders", func(t *testing.T) {
		out, _ := isolate(t)
		require.NoError(t, runCli("-f", "bar", filepath.Join(dir, "sub", "deep")))
		assert.Equal(t, "No subfolders to plot.\n", out.String())
	})

	t.Run("treemap", func(t *testing.T) {
		out, _ := isolate(t)
		require.NoError(t, runCli("-f", "treemap", dir))
		assert.Contains(t, out.String(), "Treemap – "+filepath.Base(dir))
	})

	t.Run("unknown_format", func(t *testing.T) {
		isolate(t)
		assert.Error(t, runCli("-f", "pie", dir))
	})
}

func TestAction_Settings(t *testing.T) {
	dir := sampleDir(t)

	t.Run("config_file", func(t *testing.T) {
		out, _ := isolate(t)
		config := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(config, []byte("format: json\n"), 0o644))
		require.NoError(t, runCli("--config", config, dir))
		assert.True(t, json.Valid(out.Bytes()))
	})

	t.Run("flag_overrides_config", func(t *testing.T) {
		out, _ := isolate(t)
		config := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(config, []byte("format: json\n"), 0o644))
		require.NoError(t, runCli("--config", config, "--no-color", "-f", "tree", dir))
		assert.Contains(t, out.String(), "└── [")
	})

	t.Run("missing_config", func(t *testing.T) {
		isolate(t)
		err := runCli("--config", filepath.Join(t.TempDir(), "nope.yaml"), dir)
		assert.ErrorContains(t, err, "failed to read config file")
	})

	t.Run("env", func(t *testing.T) {
		out, _ := isolate(t)
		t.Setenv("EXTCENSUS_FORMAT", "yaml")
		require.NoError(t, runCli(dir))
		assert.Contains(t, out.String(), "name: sub")
	})
}

func TestAction_Validation(t *testing.T) {
	dir := sampleDir(t)
	for name, args := range map[string][]string{
		"negative_depth":   {"-d", "-2", dir},
		"negative_top":     {"-k", "-1", dir},
		"bad_max_depth":    {dir, "x"},
		"bad_top_k":        {dir, "1", "y"},
		"too_many_args":    {dir, "1", "2", "3"},
		"bad_log_level":    {"--log-level", "loud", dir},
		"unknown_log_form": {"--log-format", "xml", dir},
	} {
		t.Run(name, func(t *testing.T) {
			isolate(t)
			assert.Error(t, runCli(args...))
		})
	}
}

func TestAction_UI(t *testing.T) {
	dir := sampleDir(t)

	t.Run("flag", func(t *testing.T) {
		isolate(t)
		var got explorer.Options
		oldNewApp, oldRun := newApp, run
		defer func() { newApp, run = oldNewApp, oldRun }()
		newApp = func(opts explorer.Options) *tview.Application {
			got = opts
			return tview.NewApplication()
		}
		run = func(app application) {}

		require.NoError(t, runCli("--ui", "--gitignore", "-d", "2", dir))
		assert.Equal(t, dir, got.Path)
		assert.Equal(t, 2, got.MaxDepth)
		assert.Len(t, got.Sources, 1)
	})

	t.Run("no_path", func(t *testing.T) {
		isolate(t)
		stubUI(t)
		oldBuild := buildCensus
		defer func() { buildCensus = oldBuild }()
		buildCensus = func(ctx context.Context, rawPath string, opts ...sources.Option) (*census.Node, error) {
			t.Fatal("census must not be built on the command line without a path")
			return nil, nil
		}
		require.NoError(t, runCli())
	})
}

func TestAction_Profiling(t *testing.T) {
	dir := sampleDir(t)

	t.Run("with_pprof", func(t *testing.T) {
		isolate(t)
		served := make(chan string, 1)
		old := httpListenAndServe
		defer func() { httpListenAndServe = old }()
		httpListenAndServe = func(addr string, _ http.Handler) error {
			served <- addr
			return errors.New("not listening in tests")
		}
		require.NoError(t, runCli("--pprof", "localhost:0", "-f", "json", dir))
		assert.Equal(t, "localhost:0", <-served)
	})

	t.Run("with_cpuprofile", func(t *testing.T) {
		isolate(t)
		cpuProfile := filepath.Join(t.TempDir(), "cpu.prof")
		require.NoError(t, runCli("--cpuprofile", cpuProfile, "-f", "json", dir))
		assert.FileExists(t, cpuProfile)
	})

	t.Run("with_memprofile", func(t *testing.T) {
		isolate(t)
		memProfile := filepath.Join(t.TempDir(), "mem.prof")
		require.NoError(t, runCli("--memprofile", memProfile, "-f", "json", dir))
		assert.FileExists(t, memProfile)
	})
}

func TestAction_RecoversFromPanic(t *testing.T) {
	_, errOut := isolate(t)
	oldBuild, oldExit, oldStop := buildCensus, osExit, pprofStopCPUProfile
	defer func() { buildCensus, osExit, pprofStopCPUProfile = oldBuild, oldExit, oldStop }()
	buildCensus = func(ctx context.Context, rawPath string, opts ...sources.Option) (*census.Node, error) {
		panic("boom")
	}
	exitCode := -1
	osExit = func(code int) { exitCode = code }
	stopped := false
	pprofStopCPUProfile = func() { stopped = true }

	_ = runCli(t.TempDir())

	assert.Equal(t, 1, exitCode)
	assert.True(t, stopped)
	assert.Contains(t, errOut.String(), "Recovered from panic: boom")
}
