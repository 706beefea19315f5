package main

import (
	"os"
	"os/signal"
	"syscall"

	"patchpilot/config"
	"patchpilot/internal/server"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

func (c *cli) newServeCmd() *cobra.Command {
	var port int

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose every operation as a local JSON API for the desktop UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = config.AppConfig.Server.Port
			}

			registry := prometheus.NewRegistry()
			registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(c.app, config.AppConfig.Server.CORSOrigins, registry)
			return srv.ListenAndServe(ctx, port)
		},
	}
	serveCmd.Flags().IntVar(&port, "port", 0, "port to listen on (default from config)")
	return serveCmd
}
