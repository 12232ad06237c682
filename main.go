package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"runtime/pprof"
	"strconv"

	"github.com/fatih/color"
	"github.com/filetug/extcensus/pkg/census"
	"github.com/filetug/extcensus/pkg/explorer"
	"github.com/filetug/extcensus/pkg/logs"
	"github.com/filetug/extcensus/pkg/profiling"
	"github.com/filetug/extcensus/pkg/render"
	"github.com/filetug/extcensus/pkg/settings"
	"github.com/filetug/extcensus/pkg/sources"
	"github.com/filetug/extcensus/pkg/state"
	"github.com/rivo/tview"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

var version = "dev"

var (
	httpListenAndServe            = http.ListenAndServe
	osExit                        = os.Exit
	pprofStopCPUProfile           = pprof.StopCPUProfile
	stdout              io.Writer = os.Stdout
	stderr              io.Writer = os.Stderr
	buildCensus                   = sources.Build
)

func main() {
	app := newCliApp()
	if err := app.Run(os.Args); err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		osExit(1)
	}
}

func newCliApp() *cli.App {
	app := cli.NewApp()
	app.Name = "extcensus"
	app.Usage = "count files by extension in every folder of a directory or archive"
	app.ArgsUsage = "[path [max_depth [top_k]]]"
	app.Version = version
	app.Writer = stdout
	app.ErrWriter = stderr
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "depth, d",
			Value: -1,
			Usage: "deepest level to print, -1 for unlimited",
		},
		cli.IntFlag{
			Name:  "top, k",
			Value: render.DefaultTopK,
			Usage: "number of extensions listed per folder",
		},
		cli.StringFlag{
			Name:  "format, f",
			Value: string(render.TreeFormat),
			Usage: "output format (options: tree, bar, treemap, json, yaml)",
		},
		cli.BoolFlag{
			Name:  "ui",
			Usage: "open the interactive explorer",
		},
		cli.BoolFlag{
			Name:  "gitignore",
			Usage: "skip files excluded by .gitignore when walking a directory",
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "settings `file` (default ~/.extcensus/config.yaml)",
		},
		cli.BoolFlag{
			Name:  "no-color",
			Usage: "disable coloured output",
		},
		cli.StringFlag{
			Name:  "cpuprofile",
			Usage: "write cpu profile to `file`",
		},
		cli.StringFlag{
			Name:  "memprofile",
			Usage: "write memory profile to `file`",
		},
		cli.StringFlag{
			Name:  "pprof",
			Usage: "start pprof http server on `address` (e.g. localhost:6060)",
		},
	}
	logs.ConfigureLogging(app)
	app.Action = action
	return app
}

// runOptions is the merged result of settings, flags and positional arguments.
type runOptions struct {
	path      string
	ui        bool
	format    render.Format
	tree      render.TreeOptions
	barTopK   int
	gitignore bool
}

func action(cliCtx *cli.Context) error {
	s, err := settings.Load(cliCtx.String("config"))
	if err != nil {
		return err
	}
	applyLogSettings(s)

	opts, err := resolveOptions(cliCtx, s)
	if err != nil {
		return err
	}

	if addr := cliCtx.String("pprof"); addr != "" {
		go func() {
			if err := httpListenAndServe(addr, nil); err != nil {
				_, _ = fmt.Fprintf(stderr, "pprof server error: %v\n", err)
			}
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			_, _ = fmt.Fprintf(stderr, "Recovered from panic: %v\n", r)
			pprofStopCPUProfile()
			osExit(1)
		}
	}()

	if cpuProfile := cliCtx.String("cpuprofile"); cpuProfile != "" {
		stopCPUProfiling := profiling.DoCPUProfiling(cpuProfile)
		defer stopCPUProfiling()
	}
	if memProfile := cliCtx.String("memprofile"); memProfile != "" {
		stopMemProfiling := profiling.DoMemProfiling(memProfile)
		defer stopMemProfiling()
	}

	var sourceOptions []sources.Option
	if opts.gitignore {
		sourceOptions = append(sourceOptions, sources.WithGitignore())
	}

	if opts.ui || opts.path == "" {
		run(newApp(explorer.Options{
			Path:     opts.path,
			TopK:     opts.tree.TopK,
			MaxDepth: opts.tree.MaxDepth,
			Sources:  sourceOptions,

			LastPath:   lastPath(),
			OnAnalyzed: state.SaveLastPath,
		}))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	root, err := buildCensus(ctx, opts.path, sourceOptions...)
	if err != nil {
		return err
	}
	return write(stdout, root, opts)
}

func applyLogSettings(s settings.Settings) {
	level, format := s.LogLevel, s.LogFormat
	if logs.Configuration().IsLevelSetWithCli() {
		level = ""
	}
	if logs.Configuration().IsFormatSetWithCli() {
		format = ""
	}
	if err := logs.Configure(level, format); err != nil {
		logrus.WithError(err).Warn("ignoring logging settings")
	}
}

// resolveOptions lets flags override settings. The positional max_depth and
// top_k arguments are accepted as well and win over everything.
func resolveOptions(cliCtx *cli.Context, s settings.Settings) (opts runOptions, err error) {
	opts = runOptions{
		ui:        cliCtx.Bool("ui"),
		barTopK:   s.BarTopK,
		gitignore: s.Gitignore || cliCtx.Bool("gitignore"),
		tree: render.TreeOptions{
			TopK:     s.TopK,
			MaxDepth: s.MaxDepth,
			Color:    !s.NoColor && !cliCtx.Bool("no-color") && !color.NoColor,
		},
	}
	formatName := s.Format
	if cliCtx.IsSet("format") {
		formatName = cliCtx.String("format")
	}
	if opts.format, err = render.ParseFormat(formatName); err != nil {
		return opts, err
	}
	if cliCtx.IsSet("depth") {
		opts.tree.MaxDepth = cliCtx.Int("depth")
	}
	if cliCtx.IsSet("top") {
		opts.tree.TopK = cliCtx.Int("top")
		opts.barTopK = opts.tree.TopK
	}

	args := cliCtx.Args()
	if len(args) > 3 {
		return opts, fmt.Errorf("expected at most 3 arguments, got %d", len(args))
	}
	opts.path = args.Get(0)
	if depthArg := args.Get(1); depthArg != "" {
		if opts.tree.MaxDepth, err = strconv.Atoi(depthArg); err != nil {
			return opts, fmt.Errorf("max_depth must be an integer: %w", err)
		}
	}
	if topKArg := args.Get(2); topKArg != "" {
		if opts.tree.TopK, err = strconv.Atoi(topKArg); err != nil {
			return opts, fmt.Errorf("top_k must be an integer: %w", err)
		}
		opts.barTopK = opts.tree.TopK
	}
	if opts.tree.MaxDepth < -1 {
		return opts, fmt.Errorf("max depth must be -1 (unlimited) or more, got %d", opts.tree.MaxDepth)
	}
	if opts.tree.TopK < 0 {
		return opts, fmt.Errorf("top must not be negative, got %d", opts.tree.TopK)
	}
	return opts, nil
}

func write(w io.Writer, root *census.Node, opts runOptions) error {
	switch opts.format {
	case render.BarFormat:
		chart, err := render.BarChart(root, opts.barTopK)
		if errors.Is(err, render.ErrNoSubfolders) {
			_, err = fmt.Fprintln(w, "No subfolders to plot.")
			return err
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, chart)
		return err
	case render.TreemapFormat:
		_, err := fmt.Fprintln(w, render.TreemapTable(root))
		return err
	case render.JSONFormat, render.YAMLFormat:
		return render.Encode(w, root, opts.format)
	default:
		_, err := fmt.Fprintln(w, render.Summary(root, opts.tree))
		return err
	}
}

var lastPath = state.GetLastPath

var setupApp = explorer.SetupApp

var newApp = func(opts explorer.Options) *tview.Application {
	app := tview.NewApplication()
	setupApp(app, opts)
	return app
}

type application interface{ Run() error }

var run = func(app application) {
	if err := app.Run(); err != nil {
		_, _ = fmt.Fprintf(stderr, "%v\n", err)
	}
}
