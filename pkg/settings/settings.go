// Package settings loads user preferences: ~/.extcensus/config.yaml, then a
// .env file in the working directory, then EXTCENSUS_* environment variables.
// Later sources win; command line flags are applied on top by the caller.
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/filetug/extcensus/pkg/fsutils"
	"github.com/filetug/extcensus/pkg/logs"
	"github.com/filetug/extcensus/pkg/render"
	"github.com/hashicorp/go-multierror"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

const (
	UserDir        = "~/.extcensus"
	ConfigFileName = "config.yaml"
	EnvPrefix      = "EXTCENSUS"
)

var (
	osUserHomeDir = os.UserHomeDir
	loadDotEnv    = func() error {
		return godotenv.Load()
	}
)

type Settings struct {
	TopK      int    `yaml:"top_k" envconfig:"TOP_K"`
	BarTopK   int    `yaml:"bar_top_k" envconfig:"BAR_TOP_K"`
	MaxDepth  int    `yaml:"max_depth" envconfig:"MAX_DEPTH"` // -1 is unlimited
	Format    string `yaml:"format" envconfig:"FORMAT"`
	Gitignore bool   `yaml:"gitignore" envconfig:"GITIGNORE"`
	NoColor   bool   `yaml:"no_color" envconfig:"NO_COLOR"`
	LogLevel  string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" envconfig:"LOG_FORMAT"`
}

func Default() Settings {
	return Settings{
		TopK:     render.DefaultTopK,
		BarTopK:  render.DefaultBarTopK,
		MaxDepth: -1,
		Format:   string(render.TreeFormat),
	}
}

func GetUserDir() (string, error) {
	userHomeDir, err := osUserHomeDir()
	if err != nil {
		return UserDir, err
	}
	return filepath.Join(userHomeDir, UserDir[2:]), nil
}

// Load reads settings starting from Default. An explicit configPath must exist;
// with an empty configPath the file in the user directory is optional.
func Load(configPath string) (Settings, error) {
	s := Default()

	required := configPath != ""
	if !required {
		userDir, err := GetUserDir()
		if err != nil {
			logrus.WithError(err).Debug("no user directory, skipping config file")
		} else {
			configPath = filepath.Join(userDir, ConfigFileName)
		}
	}
	if configPath != "" {
		if err := fsutils.ReadYAMLFile(configPath, required, &s); err != nil {
			return s, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	if err := loadDotEnv(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("failed to load .env file")
	}
	if err := envconfig.Process(EnvPrefix, &s); err != nil {
		return s, fmt.Errorf("failed to read %s_* environment variables: %w", EnvPrefix, err)
	}
	return s, s.Validate()
}

// Validate reports every invalid field at once.
func (s Settings) Validate() error {
	var result *multierror.Error
	if s.TopK < 0 {
		result = multierror.Append(result, fmt.Errorf("top_k must not be negative, got %d", s.TopK))
	}
	if s.BarTopK < 0 {
		result = multierror.Append(result, fmt.Errorf("bar_top_k must not be negative, got %d", s.BarTopK))
	}
	if s.MaxDepth < -1 {
		result = multierror.Append(result, fmt.Errorf("max_depth must be -1 (unlimited) or more, got %d", s.MaxDepth))
	}
	if _, err := render.ParseFormat(s.Format); err != nil {
		result = multierror.Append(result, err)
	}
	if s.LogLevel != "" {
		if _, err := logrus.ParseLevel(s.LogLevel); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if s.LogFormat != "" && s.LogFormat != logs.FormatText && s.LogFormat != logs.FormatJSON {
		result = multierror.Append(result, fmt.Errorf("unknown log format %q", s.LogFormat))
	}
	return result.ErrorOrNil()
}
