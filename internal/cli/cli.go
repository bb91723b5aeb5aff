// Package cli implements the versionforge command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/versionforge/pkg/buildinfo"
	"github.com/matzehuels/versionforge/pkg/cache"
	"github.com/matzehuels/versionforge/pkg/compat"
	"github.com/matzehuels/versionforge/pkg/config"
	"github.com/matzehuels/versionforge/pkg/errors"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "versionforge"

	// configFile is the config file name inside the config directory.
	configFile = "config.toml"
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
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Versionforge checks semantic version compatibility across components",
		Long: `Versionforge compares semantic versions, validates that every component of an
ecosystem meets the version requirements of its dependents, orders upgrades so
dependencies move first, and generates migration guides between versions.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/versionforge/config.toml)")

	root.AddCommand(c.compareCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.planCommand())
	root.AddCommand(c.migrateCommand())
	root.AddCommand(c.matrixCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.initCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration, applies the log level and attaches the
// logger to the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	path := c.configPath
	if path == "" {
		// Without a resolvable home directory only defaults apply.
		path, _ = defaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	if c.verbose {
		level = log.DebugLevel
	}
	c.SetLogLevel(level)
	c.Logger.Debug("configuration loaded", "path", path, "cache", cfg.Cache.Backend)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Storage
// =============================================================================

// openCache creates the backend selected by the configuration together with
// the keyer that names entries in it.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	var keyer cache.Keyer = cache.NewDefaultKeyer()
	if ns := c.Config.Cache.Namespace; ns != "" {
		keyer = cache.NewScopedKeyer(keyer, ns+":")
	}

	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), keyer, nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     c.Config.Redis.Addr,
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
			Prefix:   c.Config.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "connect to redis at %s", c.Config.Redis.Addr)
		}
		return rc, keyer, nil
	}

	dir := c.Config.Cache.Dir
	if dir == "" {
		var err error
		if dir, err = cacheDir(); err != nil {
			c.Logger.Warn("no cache directory, caching disabled", "err", err)
			return cache.NewNullCache(), keyer, nil
		}
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "open cache %s", dir)
	}
	return fc, keyer, nil
}

// matrixStore opens the persisted matrix store. The caller must close the
// returned cache.
func (c *CLI) matrixStore(ctx context.Context) (*compat.Store, cache.Cache, error) {
	backend, keyer, err := c.openCache(ctx)
	if err != nil {
		return nil, nil, err
	}
	opts := []compat.Option{compat.WithLogger(c.Logger)}
	return compat.NewStore(backend, keyer, c.Config.Cache.TTL.Duration, opts...), backend, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/versionforge/).
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

// defaultConfigPath returns the config file location using XDG standard
// (~/.config/versionforge/config.toml).
func defaultConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, configFile), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, configFile), nil
}
