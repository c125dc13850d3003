// Package cli implements the netmap command-line interface.
//
// Commands operate on dataset files (JSON or YAML topologies), run them
// through the editor and layout engine, and write layouts, renderings or
// updated datasets. The CLI is built with cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - layout: compute a layout and write it as JSON
//   - hierarchy: print the detected level of every node
//   - generate: write a synthetic three-tier network
//   - render: write DOT or SVG
//   - replay: feed recorded pointer events to the editor
//   - serve: run the HTTP API
//   - store: save, load, list and delete named topologies
//   - browse: interactive terminal browser
//   - cache: manage the layout cache
//
// # Configuration
//
// Defaults come from the config file (see pkg/config); flags override them.
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netmap/pkg/buildinfo"
	"github.com/matzehuels/netmap/pkg/cache"
	"github.com/matzehuels/netmap/pkg/config"
	"github.com/matzehuels/netmap/pkg/editor"
	"github.com/matzehuels/netmap/pkg/observability"
	"github.com/matzehuels/netmap/pkg/pipeline"
	"github.com/matzehuels/netmap/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "netmap"

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
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
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
		Use:          appName,
		Short:        "Netmap lays out and edits network topologies",
		Long:         `Netmap loads network topologies of routers, switches and endpoints, arranges them into readable tiered layouts, and edits them from the terminal or over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: "+config.Path()+")")

	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.hierarchyCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.replayCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.storeCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file once.
func (c *CLI) loadConfig() error {
	if c.config != nil {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath)
	return nil
}

// cfg returns the loaded config, or the defaults before loading.
func (c *CLI) cfg() *config.Config {
	if c.config == nil {
		return config.Default()
	}
	return c.config
}

// =============================================================================
// Factories
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(ch, nil, c.Logger, observability.Noop()), nil
}

func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || !c.cfg().Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the configured cache directory or the user cache dir.
func (c *CLI) cacheDir() (string, error) {
	if dir := c.cfg().Cache.Dir; dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}

// newEditor builds an editor configured from the config file.
func (c *CLI) newEditor(opts ...editor.Option) *editor.Editor {
	cfg := c.cfg()
	base := []editor.Option{
		editor.WithCanvas(cfg.Canvas.Width, cfg.Canvas.Height),
		editor.WithLayoutOptions(cfg.LayoutOptions()),
		editor.WithViewportOptions(cfg.ViewportOptions()),
		editor.WithAnchorRadius(cfg.Layout.AnchorRadius),
		editor.WithLogger(c.Logger),
	}
	return editor.New(append(base, opts...)...)
}

// openStore opens the configured topology store.
func (c *CLI) openStore(ctx context.Context, hooks observability.StoreHooks) (store.Store, error) {
	return store.Open(ctx, c.cfg().StoreConfig(), hooks, c.Logger)
}

// =============================================================================
// Options Helpers
// =============================================================================

// layoutDefaults returns pipeline options seeded from the config file.
func (c *CLI) layoutDefaults() pipeline.Options {
	cfg := c.cfg()
	opts := pipeline.Options{
		Algorithm:           cfg.Layout.Algorithm,
		Width:               cfg.Canvas.Width,
		Height:              cfg.Canvas.Height,
		NodeRadius:          cfg.Layout.NodeRadius,
		LargeGraphThreshold: cfg.Layout.LargeGraphThreshold,
	}
	opts.SetLayoutDefaults()
	return opts
}

// outputPath derives an output file next to input: topo.json -> topo.<suffix>.
func outputPath(input, suffix string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + "." + suffix
}
