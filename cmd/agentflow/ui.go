package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/metalagman/agentflow/internal/pipeline"
	"github.com/metalagman/agentflow/internal/web"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func uiCmd() *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Start the web UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			workDir, err := os.Getwd()
			if err != nil {
				return err
			}
			cfg, err := loadConfig(workDir)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.UI.Addr
			}

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())
			metrics := pipeline.MustNewMetrics(reg)

			agents, tasks := newRegistries(cfg)
			executor, err := newExecutor(cmd.Context(), cfg, agents, tasks, pipeline.Options{Metrics: metrics})
			if err != nil {
				return err
			}
			server, err := web.NewServer(agents, tasks, executor, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Starting UI on http://%s\n", displayAddr(addr))
			srv := &http.Server{
				Addr:              addr,
				Handler:           server.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}
			return srv.ListenAndServe()
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (defaults to ui.addr from config)")
	return cmd
}

func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
