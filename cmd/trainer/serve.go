// ABOUTME: CLI command for running the REST API.
// ABOUTME: Serves HTTP and reloads settings on file changes until interrupted.
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/trainer/internal/api"
	"github.com/harperreed/trainer/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the REST API",
	Long: `Run the REST API over HTTP.

ROUTES:

  GET/POST          /students
  GET/PUT/DELETE    /students/:id
  GET/POST          /students/:id/plans
  GET/PUT/DELETE    /plans/:id
  GET               /plans/:id/export?format=csv
  GET/POST          /theme, /config
  GET               /stats, /exporters

Edits to the settings file are picked up while the server runs.

EXAMPLES:

  trainer serve
  trainer serve --addr :9090 -v`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		doc, err := cfgStore.Load()
		if err != nil {
			return err
		}

		server := api.NewServer(svc, logger)
		server.UseSettings(doc)
		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			return server.ListenAndServe(ctx, serveAddr)
		})
		g.Go(func() error {
			return cfgStore.Watch(ctx, config.DefaultDebounce, func(doc config.Document) {
				server.UseSettings(doc)
				logger.Info("config reloaded",
					zap.String("theme", doc.Theme()),
					zap.Int("metrics_port", config.ResolvedMetricsPort(doc, env)),
					zap.Bool("notifications", doc.Notifications()))
			})
		})
		return g.Wait()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "127.0.0.1:8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}
