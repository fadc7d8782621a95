// Package config loads the regform settings file.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-regform/pkg/rules"
	"github.com/goliatone/go-regform/pkg/storage"
	"github.com/goliatone/go-regform/pkg/submit"
)

// Config is the file-backed configuration.
type Config struct {
	Endpoint string  `yaml:"endpoint"`
	Title    Title   `yaml:"title"`
	Storage  Storage `yaml:"storage"`
	Log      Log     `yaml:"log"`
}

// Title selects the field mirrored into the heading.
type Title struct {
	Field    string `yaml:"field"`
	Greeting string `yaml:"greeting"`
}

// Storage selects where the last successful response is kept.
type Storage struct {
	Driver string `yaml:"driver"`
	Path   string `yaml:"path"`
	Key    string `yaml:"key"`
}

// Log configures the zap logger.
type Log struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Endpoint: submit.DefaultEndpoint,
		Title: Title{
			Field:    rules.FieldFullName,
			Greeting: "HOLA",
		},
		Storage: Storage{
			Driver: storage.DriverMemory,
			Key:    storage.DefaultKey,
		},
		Log: Log{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("config: endpoint %q must be an absolute URL", c.Endpoint)
	}
	if c.Title.Field != "" && !rules.Default().Has(c.Title.Field) {
		return fmt.Errorf("config: title field %q is not a form field", c.Title.Field)
	}
	switch c.Storage.Driver {
	case "", storage.DriverMemory:
	case storage.DriverFile, storage.DriverSQLite:
		if c.Storage.Path == "" {
			return fmt.Errorf("config: storage driver %q requires a path", c.Storage.Driver)
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q", c.Log.Format)
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 {
		return errors.New("config: log rotation limits must not be negative")
	}
	return nil
}
