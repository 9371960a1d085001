package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/stackviz/pkg/cache"
	"github.com/matzehuels/stackviz/pkg/config"
)

// cacheCommand creates the cache management command. Both subcommands honor
// the [cache] section of --config, so they can target a Redis backend too.
func (c *CLI) cacheCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered artifact cache",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML configuration with a [cache] section")

	cmd.AddCommand(c.cacheClearCommand(&configPath))
	cmd.AddCommand(c.cachePathCommand(&configPath))

	return cmd
}

// cacheConfig returns the [cache] section of path, or the defaults.
func cacheConfig(path string) (config.Cache, error) {
	if path == "" {
		return config.Cache{}, nil
	}
	f, err := config.Load(path)
	if err != nil {
		return config.Cache{}, err
	}
	return f.Cache, nil
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := cacheConfig(*configPath)
			if err != nil {
				return err
			}
			store, err := newCache(ctx, cfg, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer closeQuietly(ctx, store.Close)

			n, err := store.Clear(ctx)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			w := cmd.OutOrStdout()
			if n == 0 {
				printInfo(w, "Cache is empty")
				return nil
			}
			printSuccess(w, "Cleared %d cached entries", n)
			printDetail(w, "%s", describeCache(store))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cacheConfig(*configPath)
			if err != nil {
				return err
			}
			switch cfg.Backend {
			case config.BackendRedis:
				fmt.Fprintf(cmd.OutOrStdout(), "redis://%s/%d\n", cfg.Addr, cfg.DB)
				return nil
			case config.BackendNone:
				return fmt.Errorf("caching is disabled")
			}
			dir := cfg.Dir
			if dir == "" {
				if dir, err = cacheDir(); err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

func describeCache(c cache.Cache) string {
	switch c := c.(type) {
	case *cache.FileCache:
		return "Directory: " + c.Dir()
	case *cache.RedisCache:
		return "Backend: redis"
	default:
		return "Backend: none"
	}
}
