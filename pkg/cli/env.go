package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/getmockd/resolvermock/pkg/config"
	"github.com/getmockd/resolvermock/pkg/events"
	"github.com/getmockd/resolvermock/pkg/fixture"
	"github.com/getmockd/resolvermock/pkg/resolver"
)

// rootOptions holds the persistent flags shared by all commands.
type rootOptions struct {
	configPath  string
	fixtures    []string
	root        string
	searchPaths []string
	logLevel    string
	logFormat   string
	jsonOutput  bool
}

// loadConfig reads --config, or the defaults, and applies flag overrides.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("search-path") {
		cfg.SearchPaths = o.searchPaths
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = o.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// open builds a resource tree from the configuration and fixtures and
// returns a committed admin session on it. Callers close the session.
func (o *rootOptions) open(cmd *cobra.Command) (*resolver.Session, error) {
	cfg, err := o.loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger := cfg.Logger(cmd.ErrOrStderr())

	opts := append(cfg.Options(logger), resolver.WithEmitter(events.Log(logger, slog.LevelDebug)))
	s := resolver.New(opts...).OpenAdminSession()

	sources := make([]config.FixtureSource, 0, len(cfg.Fixtures)+len(o.fixtures))
	for _, fx := range cfg.Fixtures {
		if !filepath.IsAbs(fx.Path) && o.configPath != "" {
			fx.Path = filepath.Join(filepath.Dir(o.configPath), fx.Path)
		}
		sources = append(sources, fx)
	}
	for _, p := range o.fixtures {
		sources = append(sources, config.FixtureSource{Path: p, Root: o.root})
	}

	for _, fx := range sources {
		files, err := fixture.LoadPath(s, fx.FixtureRoot(), fx.Path)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("loading fixtures from %s: %w", fx.Path, err)
		}
		logger.Debug("fixtures loaded", "path", fx.Path, "root", fx.FixtureRoot(), "files", len(files))
	}
	if err := s.Commit(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// withSession runs fn with an opened session and closes it afterwards.
func (o *rootOptions) withSession(cmd *cobra.Command, fn func(*resolver.Session) error) error {
	s, err := o.open(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
