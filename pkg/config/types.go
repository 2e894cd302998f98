package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/getmockd/resolvermock/pkg/logging"
	"github.com/getmockd/resolvermock/pkg/resolver"
)

// CurrentVersion is the configuration format version written by Save.
const CurrentVersion = "1"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the file representation of a resolver setup.
type Config struct {
	Version string `json:"version,omitempty" yaml:"version,omitempty"`

	// SearchPaths replaces the default search paths when set. An explicit
	// empty list disables relative path resolution.
	SearchPaths []string `json:"searchPaths,omitempty" yaml:"searchPaths,omitempty"`

	Logging LoggingConfig `json:"logging" yaml:"logging"`

	// Fixtures are loaded in order into a fresh session and committed.
	Fixtures []FixtureSource `json:"fixtures,omitempty" yaml:"fixtures,omitempty"`
}

// LoggingConfig holds logging settings as strings, as they appear in files.
type LoggingConfig struct {
	Level     string `json:"level,omitempty" yaml:"level,omitempty"`
	Format    string `json:"format,omitempty" yaml:"format,omitempty"`
	AddSource bool   `json:"addSource,omitempty" yaml:"addSource,omitempty"`
}

// FixtureSource names fixture files to load.
type FixtureSource struct {
	// Path is a file path or a doublestar glob such as "content/**/*.json".
	Path string `json:"path" yaml:"path"`
	// Root is the parent resource the fixture is loaded under. Defaults to "/".
	Root string `json:"root,omitempty" yaml:"root,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version:     CurrentVersion,
		SearchPaths: append([]string(nil), resolver.DefaultSearchPaths...),
		Logging:     LoggingConfig{Level: "warn", Format: string(logging.FormatText)},
	}
}

// Validate checks search paths and fixture roots.
func (c *Config) Validate() error {
	for i, sp := range c.SearchPaths {
		if _, ok := resolver.NormalizePath(sp); !ok || !resolver.IsAbsolute(sp) {
			return fmt.Errorf("%w: searchPaths[%d] %q must be an absolute path", ErrInvalidConfig, i, sp)
		}
	}
	for i, fx := range c.Fixtures {
		if fx.Path == "" {
			return fmt.Errorf("%w: fixtures[%d] has no path", ErrInvalidConfig, i)
		}
		if fx.Root == "" {
			continue
		}
		if _, ok := resolver.NormalizePath(fx.Root); !ok || !resolver.IsAbsolute(fx.Root) {
			return fmt.Errorf("%w: fixtures[%d] root %q must be an absolute path", ErrInvalidConfig, i, fx.Root)
		}
	}
	return nil
}

// Logger builds a logger writing to w from the logging settings.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	return logging.New(logging.Config{
		Level:     logging.ParseLevel(c.Logging.Level),
		Format:    logging.ParseFormat(c.Logging.Format),
		Output:    w,
		AddSource: c.Logging.AddSource,
	})
}

// Options converts the configuration to factory options. logger may be nil.
func (c *Config) Options(logger *slog.Logger) []resolver.Option {
	var opts []resolver.Option
	if c.SearchPaths != nil {
		opts = append(opts, resolver.WithSearchPaths(c.SearchPaths...))
	}
	if logger != nil {
		opts = append(opts, resolver.WithLogger(logger))
	}
	return opts
}

// FixtureRoot returns the root of fx, defaulting to "/".
func (fx FixtureSource) FixtureRoot() string {
	if fx.Root == "" {
		return "/"
	}
	return fx.Root
}
