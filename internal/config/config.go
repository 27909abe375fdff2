package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/wikimark/internal/dialect"
)

// Supported export extensions.
const (
	ExtMarkdown = ".md"
	ExtZip      = ".zip"
)

// Config holds defaults for commands. Flags override environment variables,
// which override the env file, which overrides config.yaml.
type Config struct {
	Store          string `yaml:"store"`
	Dialect        string `yaml:"dialect"`
	Extension      string `yaml:"extension"`
	Note           string `yaml:"note"`
	FirstDayOfWeek int    `yaml:"first_day_of_week"`
	Locale         string `yaml:"locale"`
	DateLayout     string `yaml:"date_layout"`
	WeekdayLayout  string `yaml:"weekday_layout"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store:          ".",
		Dialect:        dialect.Plain.String(),
		Extension:      ExtMarkdown,
		FirstDayOfWeek: 1,
		Locale:         "en_US",
		DateLayout:     "Jan 02",
		WeekdayLayout:  "Mon",
	}
}

// Load reads config.yaml from Dir and applies environment overrides. A
// missing file yields the defaults.
func Load() (*Config, error) {
	return LoadFile(Path())
}

// LoadFile reads the configuration at path and applies overrides from the
// environment and from the env file in the same directory. Keys absent from the file keep their defaults.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("reading config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	envFile, err := ReadEnvFile(filepath.Join(filepath.Dir(path), EnvFileName))
	if err != nil {
		return nil, err
	}
	if v := lookupEnv(envFile, "WIKIMARK_STORE"); v != "" {
		cfg.Store = v
	}
	if v := lookupEnv(envFile, "WIKIMARK_DIALECT"); v != "" {
		cfg.Dialect = v
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks the dialect, extension and first day of the week.
func (c *Config) Validate() error {
	if _, err := dialect.Parse(c.Dialect); err != nil {
		return err
	}
	switch strings.ToLower(c.Extension) {
	case ExtMarkdown, ExtZip:
	default:
		return fmt.Errorf("unsupported extension %q (want %s or %s)", c.Extension, ExtMarkdown, ExtZip)
	}
	if c.FirstDayOfWeek < 0 || c.FirstDayOfWeek > 6 {
		return fmt.Errorf("first_day_of_week must be 0-6, got %d", c.FirstDayOfWeek)
	}
	return nil
}

// ParsedDialect returns the configured dialect. Call after Validate.
func (c *Config) ParsedDialect() dialect.Dialect {
	d, err := dialect.Parse(c.Dialect)
	if err != nil {
		return dialect.Plain
	}
	return d
}
