package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/vnav/pkg/buildinfo"
	"github.com/matzehuels/vnav/pkg/cache"
	"github.com/matzehuels/vnav/pkg/config"
	"github.com/matzehuels/vnav/pkg/observability"
	"github.com/matzehuels/vnav/pkg/pipeline"
	"github.com/matzehuels/vnav/pkg/repair"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "vnav"

	// redisPrefix scopes vnav's keys in a shared Redis database.
	redisPrefix = "vnav:"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// ConfigPath overrides the settings file location.
	ConfigPath string
	verbose    bool
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "vnav checks and repairs flight navigation diagrams",
		Long: `vnav validates flight navigation diagrams: every drawing is checked against
its schema, and lines anchored to drawings that do not exist are removed
together with everything that depends on them.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.ConfigPath, "config", "", "settings file (default $XDG_CONFIG_HOME/vnav/config.toml)")

	root.AddCommand(c.checkCommand())
	root.AddCommand(c.fmtCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.rmCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Settings and Runner Factory
// =============================================================================

// store returns the settings store selected by --config.
func (c *CLI) store() (config.Store, error) {
	if c.ConfigPath != "" {
		return config.Store{Path: c.ConfigPath}, nil
	}
	path, err := config.DefaultPath()
	if err != nil {
		return config.Store{}, err
	}
	return config.Store{Path: path}, nil
}

// settings loads the settings file and applies environment overrides.
func (c *CLI) settings() (config.Settings, error) {
	st, err := c.store()
	if err != nil {
		return config.Defaults(), err
	}
	s, err := st.Load()
	if err != nil {
		return s, err
	}
	s.ApplyEnv(os.Getenv)
	return s, nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, s config.Settings, noCache bool) (*pipeline.Runner, error) {
	observability.SetPipelineHooks(observability.NewLogHooks(c.Logger))
	observability.SetCacheHooks(observability.NewLogHooks(c.Logger))

	backend := s.Cache.Backend
	if noCache {
		backend = cache.BackendNone
	}
	switch backend {
	case cache.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, s.Cache.RedisAddr)
		if err != nil {
			return nil, err
		}
		return pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, redisPrefix), c.Logger), nil
	case cache.BackendFile:
		return pipeline.NewRunner(newFileCache(c.Logger), nil, c.Logger), nil
	}
	return pipeline.NewRunner(nil, nil, c.Logger), nil
}

// newFileCache opens the file cache, falling back to no caching when the
// cache directory is unusable.
func newFileCache(logger *log.Logger) cache.Cache {
	dir, err := cacheDir()
	if err != nil {
		logger.Debug("file cache disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debug("file cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// pipelineOptions builds parse options from settings and the --legacy flag.
func pipelineOptions(s config.Settings, legacy, refresh bool) pipeline.Options {
	opts := pipeline.DefaultOptions()
	opts.StrictColor = s.StrictColor
	opts.Repair = s.Repair
	if legacy {
		opts.Repair = repair.Legacy()
	}
	opts.Refresh = refresh
	opts.TTL = s.Cache.TTL
	return opts
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/vnav/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
