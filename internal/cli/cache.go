package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/adroutes/pkg/cache"
)

// cacheCommand groups the artifact cache subcommands.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the rendered artifact cache",
		Long: `Rendered svg, png, pdf and dot artifacts are cached by input hash and
render options. json exports carry a run id and are never cached.`,
	}

	cmd.AddCommand(c.cacheInfoCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheInfoCommand reports the active backend and the file cache usage.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the cache backend, location and size",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.config.Cache
			ttl := cache.TTLArtifact
			if cfg.TTL.Duration > 0 {
				ttl = cfg.TTL.Duration
			}

			switch {
			case c.noCache || cfg.Disabled:
				printKeyValue("backend", "disabled")
				return nil
			case cfg.RedisURL != "":
				printKeyValue("backend", "redis")
				printKeyValue("prefix", c.keyPrefix())
				printKeyValue("ttl", ttl.String())
				return nil
			}

			fc, err := c.openFileCache()
			if err != nil || fc == nil {
				return err
			}
			entries, size, err := fc.Usage()
			if err != nil {
				return fmt.Errorf("read cache: %w", err)
			}
			printKeyValue("backend", "file")
			printKeyValue("directory", fc.Dir())
			printKeyValue("entries", strconv.Itoa(entries))
			printKeyValue("size", formatBytes(size))
			printKeyValue("ttl", ttl.String())
			return nil
		},
	}
}

// cacheClearCommand empties the file cache.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact from the file cache",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.openFileCache()
			if err != nil || fc == nil {
				return err
			}
			count, err := fc.Clear()
			if err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", fc.Dir())
			if c.config.Cache.RedisURL != "" {
				printDetail("Redis entries expire on their own and were left in place")
			}
			return nil
		},
	}
}

// cachePathCommand prints the file cache directory.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// openFileCache opens the file cache without creating it. A nil cache and
// nil error mean the directory does not exist yet.
func (c *CLI) openFileCache() (*cache.FileCache, error) {
	dir, err := c.cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
