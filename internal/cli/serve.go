package cli

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netmap/internal/server"
	"github.com/matzehuels/netmap/pkg/editor"
	"github.com/matzehuels/netmap/pkg/graph"
	"github.com/matzehuels/netmap/pkg/observability"
)

type serveOpts struct {
	addr    string
	watch   string
	metrics bool
}

// serveCommand runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [dataset]",
		Short: "Serve the editor over HTTP",
		Long: `Serve the editor over HTTP.

The server holds one topology in memory and exposes it under /api: load and
read the dataset, add and delete nodes and links, run layouts, feed pointer
events and drive the viewport. Saved topologies live in the configured store
under /api/topologies. Prometheus metrics are served on /metrics.

With --watch the given dataset is loaded at startup and reloaded whenever
the file changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				opts.addr = c.cfg().Server.Addr
			}
			if !cmd.Flags().Changed("metrics") {
				opts.metrics = c.cfg().Server.Metrics
			}
			var initial string
			if len(args) == 1 {
				initial = args[0]
			}
			return c.runServe(cmd.Context(), initial, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.watch, "watch", "", "dataset file to load and reload on change")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", true, "serve Prometheus metrics on /metrics")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, initial string, opts serveOpts) error {
	hooks := observability.Noop()
	var srvOpts []server.Option
	if opts.metrics {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		hooks = observability.NewPrometheus(reg).Hooks()
		srvOpts = append(srvOpts, server.WithMetrics(reg))
	}
	srvOpts = append(srvOpts, server.WithLogger(c.Logger), server.WithHooks(hooks))

	ed := c.newEditor(editor.WithHooks(hooks))
	if initial == "" {
		initial = opts.watch
	}
	if initial != "" {
		ds, err := graph.ReadDatasetFile(initial)
		if err != nil {
			return fmt.Errorf("load dataset %s: %w", initial, err)
		}
		printLoadReport(ed.Load(ds))
	}

	st, err := c.openStore(ctx, hooks.Store)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	sc := c.cfg().Server
	srv := server.New(server.Config{
		Addr:            opts.addr,
		ReadTimeout:     sc.ReadTimeout.Duration,
		WriteTimeout:    sc.WriteTimeout.Duration,
		ShutdownTimeout: sc.ShutdownTimeout.Duration,
		WatchPath:       opts.watch,
	}, ed, st, srvOpts...)

	printInfo("Serving on %s", StyleHighlight.Render(opts.addr))
	return srv.Run(ctx)
}
