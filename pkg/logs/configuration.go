// Package logs configures the logrus logger used across extcensus.
package logs

import (
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli"
)

const (
	FormatText = "text"
	FormatJSON = "json"
)

var (
	configuration = NewConfig(logrus.StandardLogger())

	logFlags = []cli.Flag{
		cli.BoolFlag{
			Name:   "debug",
			Usage:  "debug mode",
			EnvVar: "EXTCENSUS_DEBUG",
		},
		cli.StringFlag{
			Name:   "log-format",
			Usage:  "Choose log format (options: text, json)",
			EnvVar: "EXTCENSUS_LOG_FORMAT",
		},
		cli.StringFlag{
			Name:   "log-level, l",
			Usage:  "Log level (options: debug, info, warn, error, fatal, panic)",
			EnvVar: "EXTCENSUS_LOG_LEVEL",
		},
	}

	formats = map[string]logrus.Formatter{
		FormatText: &logrus.TextFormatter{DisableTimestamp: true},
		FormatJSON: new(logrus.JSONFormatter),
	}
)

func formatNames() []string {
	names := make([]string, 0, len(formats))
	for name := range formats {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

type Config struct {
	logger *logrus.Logger
	level  logrus.Level
	format logrus.Formatter

	levelSetWithCli  bool
	formatSetWithCli bool
}

// NewConfig starts at warn level: a census run only reports problems.
func NewConfig(logger *logrus.Logger) *Config {
	return &Config{
		logger: logger,
		level:  logrus.WarnLevel,
		format: formats[FormatText],
	}
}

func Configuration() *Config {
	return configuration
}

func (l *Config) IsLevelSetWithCli() bool {
	return l.levelSetWithCli
}

func (l *Config) IsFormatSetWithCli() bool {
	return l.formatSetWithCli
}

func (l *Config) Level() logrus.Level {
	return l.level
}

func (l *Config) SetLevel(levelString string) error {
	level, err := logrus.ParseLevel(levelString)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}
	l.level = level
	return nil
}

func (l *Config) SetFormat(format string) error {
	formatter, ok := formats[format]
	if !ok {
		return fmt.Errorf("unknown log format %q, expected one of: %v", format, formatNames())
	}
	l.format = formatter
	return nil
}

func (l *Config) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

func (l *Config) ReloadConfiguration() {
	l.logger.SetFormatter(l.format)
	l.logger.SetLevel(l.level)
}

func (l *Config) handleCliCtx(cliCtx *cli.Context) error {
	if cliCtx.IsSet("log-level") || cliCtx.IsSet("l") {
		if err := l.SetLevel(cliCtx.String("log-level")); err != nil {
			return err
		}
		l.levelSetWithCli = true
	}

	if cliCtx.Bool("debug") {
		l.level = logrus.DebugLevel
		l.levelSetWithCli = true
	}

	if cliCtx.IsSet("log-format") {
		if err := l.SetFormat(cliCtx.String("log-format")); err != nil {
			return err
		}
		l.formatSetWithCli = true
	}

	l.ReloadConfiguration()
	return nil
}

// ConfigureLogging adds the logging flags to app and applies them before any action runs.
func ConfigureLogging(app *cli.App) {
	app.Flags = append(app.Flags, logFlags...)

	appBefore := app.Before
	app.Before = func(cliCtx *cli.Context) error {
		Configuration().SetOutput(os.Stderr)

		if err := Configuration().handleCliCtx(cliCtx); err != nil {
			return fmt.Errorf("setting up logging configuration: %w", err)
		}

		if appBefore != nil {
			return appBefore(cliCtx)
		}
		return nil
	}
}

// Configure applies level and format outside of a cli run, e.g. from settings.
// Empty values keep the current setting.
func Configure(level, format string) error {
	if level != "" {
		if err := configuration.SetLevel(level); err != nil {
			return err
		}
	}
	if format != "" {
		if err := configuration.SetFormat(format); err != nil {
			return err
		}
	}
	configuration.ReloadConfiguration()
	return nil
}
