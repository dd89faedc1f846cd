package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/smallie-dev/smallie/internal/config"
	"github.com/smallie-dev/smallie/internal/demo/todo"
	"github.com/smallie-dev/smallie/pkg/dom"
	"github.com/smallie-dev/smallie/pkg/live"
)

func serveCmd(opts *rootOptions) *cobra.Command {
	var (
		port        int
		host        string
		maxSessions int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the demo app to browsers",
		Long: `Start the live server for the todo demo.

Every browser tab gets its own copy of the app. Events are sent to the
server, and the resulting DOM changes are streamed back as patches.

Examples:
  smallie serve
  smallie serve --port=8080
  smallie serve --host=0.0.0.0 --max-sessions=100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			// Apply command-line overrides
			if port > 0 {
				cfg.Live.Port = port
			}
			if host != "" {
				cfg.Live.Host = host
			}
			if maxSessions > 0 {
				cfg.Live.MaxSessions = maxSessions
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, cmd)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from smallie.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from smallie.json)")
	cmd.Flags().IntVar(&maxSessions, "max-sessions", 0, "Maximum concurrent sessions (default from smallie.json)")

	return cmd
}

// liveOptions translates the configuration into live server options.
func liveOptions(cfg *config.Config, logger *slog.Logger) []live.Option {
	return []live.Option{
		live.WithLogger(logger.With("component", "live")),
		live.WithNamespace(cfg.Metrics.Namespace),
		live.WithMetricsEndpoint(cfg.Metrics.Enabled),
		live.WithTracing(cfg.Tracing.Enabled, cfg.Tracing.TracerName),
		live.WithAllowedOrigins(cfg.Live.AllowedOrigins...),
		live.WithMaxSessions(cfg.Live.MaxSessions),
		live.WithTimeouts(cfg.ReadTimeout(), cfg.WriteTimeout()),
	}
}

// demoApp mounts the todo list under a page title.
func demoApp(title string) live.AppFunc {
	return func(doc *dom.Document) {
		t := dom.NewElement("title")
		t.SetTextContent(title)
		doc.Head().AppendChild(t)
		todo.Mount(doc)
	}
}

func runServe(ctx context.Context, cfg *config.Config, cmd *cobra.Command) error {
	logger := newLogger(cfg.Log, cfg.LogLevel(), cmd.ErrOrStderr())
	slog.SetDefault(logger)

	server := live.New(demoApp(cfg.Name), liveOptions(cfg, logger)...)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe(cfg.Address())
	}()

	success(cmd.OutOrStdout(), "Serving %s at %s", cfg.Name, cfg.URL())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	info(cmd.OutOrStdout(), "Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown incomplete", "error", err)
	}
	return <-errCh
}
