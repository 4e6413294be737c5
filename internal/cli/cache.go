package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vnav/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the parse cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached parse results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			s, err := c.settings()
			if err != nil {
				return err
			}

			switch s.Cache.Backend {
			case cache.BackendRedis:
				rc, err := cache.NewRedisCache(cmd.Context(), s.Cache.RedisAddr)
				if err != nil {
					return err
				}
				defer rc.Close()
				n, err := rc.Clear(cmd.Context(), redisPrefix+"*")
				if err != nil {
					return err
				}
				printSuccess(out, "Cleared %d cached entries", n)
				printDetail(out, "Redis: %s", s.Cache.RedisAddr)
				return nil

			case cache.BackendFile:
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					printInfo(out, "Cache is empty")
					return nil
				}
				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return err
				}
				n, err := fc.Clear()
				if err != nil {
					return err
				}
				printSuccess(out, "Cleared %d cached entries", n)
				printDetail(out, "Directory: %s", dir)
				return nil
			}

			printInfo(out, "Caching is disabled")
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where parse results are cached",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.settings()
			if err != nil {
				return err
			}
			switch s.Cache.Backend {
			case cache.BackendRedis:
				fmt.Fprintln(cmd.OutOrStdout(), "redis://"+s.Cache.RedisAddr)
			case cache.BackendFile:
				dir, err := cacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), dir)
			default:
				printInfo(cmd.OutOrStdout(), "Caching is disabled")
			}
			return nil
		},
	}
}
