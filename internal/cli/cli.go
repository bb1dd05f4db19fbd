// Package cli implements the adroutes command-line interface.
//
// # Commands
//
//   - render: classify a selection and write SVG, PNG, PDF, DOT or JSON
//   - classify: print the connection classes as a table
//   - browse: page through classified connections in a terminal UI
//   - nearest: look up the waypoints closest to a world position
//   - extract: write a selection as a standalone AutoDrive config
//   - cache: clear or locate the artifact cache
//
// Every command that reads a network falls back to the built-in sample when
// no file is given.
//
// # Configuration
//
// An adroutes.toml in the working directory (or the file named by --config)
// supplies defaults. Flags given on the command line win over the file.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/adroutes/pkg/buildinfo"
	"github.com/matzehuels/adroutes/pkg/cache"
	"github.com/matzehuels/adroutes/pkg/config"
	"github.com/matzehuels/adroutes/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "adroutes"

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

	configPath string
	noCache    bool
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		config: &config.Config{},
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
		Short: "adroutes classifies and draws AutoDrive waypoint networks",
		Long: `adroutes reads the waypoint network of an AutoDrive config, classifies the
connections of a selected set of waypoints (bidirectional, priority,
subpriority and reverse-only) and draws them as a 2D diagram.

Without an input file every command uses a built-in sample network.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			if cfg.Path != "" {
				c.Logger.Debug("loaded config", "path", cfg.Path)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.DefaultFile+" when present)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.classifyCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.nearestCommand())
	root.AddCommand(c.extractCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if _, shared := store.(*cache.RedisCache); shared {
		keyer = cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.keyPrefix())
	}
	r := pipeline.NewRunner(store, keyer, c.Logger)
	if ttl := c.config.Cache.TTL.Duration; ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.config.Cache
	if c.noCache || cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache")
		return rc, nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// keyPrefix namespaces keys in a shared Redis cache.
func (c *CLI) keyPrefix() string {
	if p := c.config.Cache.KeyPrefix; p != "" {
		return p
	}
	return appName + ":"
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the per-user default.
func (c *CLI) cacheDir() (string, error) {
	if dir := c.config.Cache.Dir; dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// selectFlags are the selection flags shared by every command that loads a
// network.
type selectFlags struct {
	selection string
	region    string
}

func addSelectFlags(cmd *cobra.Command, f *selectFlags) {
	cmd.Flags().StringVarP(&f.selection, "select", "s", "", `waypoint ids and ranges, e.g. "23-36,40" (sample default 23-36, file default all)`)
	cmd.Flags().StringVar(&f.region, "region", "", `bounding box "minX,minZ,maxX,maxZ" in world coordinates`)
}

// pipelineOptions completes opts with the positional input and the selection
// flags, with config values filling what the flags leave unset.
func (c *CLI) pipelineOptions(cmd *cobra.Command, args []string, sf selectFlags, opts pipeline.Options) pipeline.Options {
	opts.Selection = sf.selection
	opts.Region = sf.region
	opts.Logger = c.Logger
	if len(args) > 0 {
		opts.Input = args[0]
	}
	mergeConfig(c.config, &opts, cmd.Flags().Changed)
	return opts
}

// mergeConfig copies config values into opts for every flag for which
// changed reports false.
func mergeConfig(cfg *config.Config, opts *pipeline.Options, changed func(string) bool) {
	if cfg == nil {
		return
	}
	if !changed("select") && cfg.Selection.Range != "" {
		opts.Selection = cfg.Selection.Range
	}
	if !changed("region") && cfg.Selection.Region != "" {
		opts.Region = cfg.Selection.Region
	}

	r := cfg.Render
	if !changed("type") && r.Type != "" {
		opts.Type = r.Type
	}
	if !changed("format") && len(r.Formats) > 0 {
		opts.Formats = append([]string(nil), r.Formats...)
	}
	if !changed("width") && r.Width > 0 {
		opts.Width = r.Width
	}
	if !changed("height") && r.Height > 0 {
		opts.Height = r.Height
	}
	if !changed("title") && r.Title != "" {
		opts.Title = r.Title
	}
	if !changed("no-labels") && r.Labels != nil {
		opts.HideLabels = !*r.Labels
	}
	if !changed("no-legend") && r.Legend != nil {
		opts.HideLegend = !*r.Legend
	}
	if !changed("no-markers") && r.Markers != nil {
		opts.HideMarkers = !*r.Markers
	}
	opts.Palette = cfg.Palette.Merge(opts.Palette)
}

// inputBase returns the output base name for an input path.
func inputBase(input string) string {
	if input == "" {
		return pipeline.SourceSample
	}
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
