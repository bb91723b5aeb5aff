package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/versionforge/pkg/cache"
	"github.com/matzehuels/versionforge/pkg/config"
	"github.com/matzehuels/versionforge/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the manifest and matrix cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached manifest and stored matrix",
		Long: `Clear empties the file cache. Redis entries expire on their own TTL and
are not touched; use "versionforge matrix delete" to drop a stored matrix.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, _, err := c.openCache(cmd.Context())
			if err != nil {
				return err
			}
			defer backend.Close()

			fc, ok := backend.(*cache.FileCache)
			if !ok {
				printInfo("Nothing to clear for the %s backend", c.Config.Cache.Backend)
				return nil
			}
			count, err := fc.Clear()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "clear cache %s", fc.Dir())
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where cached data is stored",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c.Config.Cache.Backend {
			case config.BackendRedis:
				fmt.Fprintf(stdout, "redis://%s/%d\n", c.Config.Redis.Addr, c.Config.Redis.DB)
				return nil
			case config.BackendNone:
				printInfo("Caching is disabled")
				return nil
			}
			dir := c.Config.Cache.Dir
			if dir == "" {
				var err error
				if dir, err = cacheDir(); err != nil {
					return errors.Wrap(errors.ErrCodeInternal, err, "get cache dir")
				}
			}
			fmt.Fprintln(stdout, dir)
			return nil
		},
	}
}
