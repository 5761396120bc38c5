// This file maps the config file and CLI context onto the launcher config.

package launcher

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v2"
)

// Config aggregates everything a command needs besides its own flags.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
	Sentry  SentryConfig  `yaml:"sentry"`
}

type LoggingConfig struct {
	Verbosity int    `yaml:"verbosity"`
	Format    string `yaml:"format"`
	Color     bool   `yaml:"color"`
}

type OutputConfig struct {
	Format string `yaml:"format"`
}

type SentryConfig struct {
	DSN string `yaml:"dsn"`
}

// Output formats.
const (
	OutputHex  = "hex"
	OutputJSON = "json"
)

func defaultConfig() Config {
	d := DefaultConfig()
	return Config{
		Logging: LoggingConfig{
			Verbosity: d.Logging.Verbosity,
			Format:    d.Logging.Format,
			Color:     d.Logging.Color,
		},
		Output: OutputConfig{
			Format: d.Output.Format,
		},
		Sentry: SentryConfig{
			DSN: d.Sentry.DSN,
		},
	}
}

// MakeAllConfigs merges defaults, the optional config file, then CLI flag
// overrides into a single config struct.
func MakeAllConfigs(ctx *cli.Context) (Config, error) {
	cfg := defaultConfig()

	if file := ctx.String("config"); file != "" {
		if err := loadConfigFile(resolvePath(file), &cfg); err != nil {
			return Config{}, err
		}
	}

	applyCLIOverrides(ctx, &cfg)

	if err := cfg.check(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadConfigFile(path string, cfg *Config) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config file %s", path)
	}
	if err := yaml.UnmarshalStrict(data, cfg); err != nil {
		return errors.Wrapf(err, "failed to parse config file %s", path)
	}
	return nil
}

func applyCLIOverrides(ctx *cli.Context, cfg *Config) {
	if ctx.IsSet("log.format") {
		cfg.Logging.Format = ctx.String("log.format")
	}
	if ctx.IsSet("log.verbosity") {
		cfg.Logging.Verbosity = ctx.Int("log.verbosity")
	}
	if ctx.IsSet("log.color") {
		cfg.Logging.Color = ctx.Bool("log.color")
	}

	if ctx.IsSet("output") {
		cfg.Output.Format = ctx.String("output")
	}

	if dsn := ctx.String("sentry.dsn"); dsn != "" {
		cfg.Sentry.DSN = dsn
	}
}

func (cfg Config) check() error {
	switch cfg.Logging.Format {
	case "text", "json":
	default:
		return errors.Errorf("unknown log format %q", cfg.Logging.Format)
	}
	if cfg.Logging.Verbosity < 0 || cfg.Logging.Verbosity > 5 {
		return errors.Errorf("log verbosity %d out of range [0, 5]", cfg.Logging.Verbosity)
	}
	switch cfg.Output.Format {
	case OutputHex, OutputJSON:
	default:
		return errors.Errorf("unknown output format %q", cfg.Output.Format)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
