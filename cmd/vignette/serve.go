package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aretw0/vignette"
	"github.com/aretw0/vignette/internal/cli"
	httpAdapter "github.com/aretw0/vignette/pkg/adapters/http"
	"github.com/aretw0/vignette/pkg/domain"
	"github.com/aretw0/vignette/pkg/observability"
	"github.com/aretw0/vignette/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP compile server",
	Long:  `Exposes compile and the script store as a JSON API over HTTP, with Prometheus metrics on /metrics.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		cfg.HTTP.Addr = addr
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	logger, err := cli.NewLogger(cfg.LogLevel, quiet)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := observability.NewMetrics(reg)
	if err != nil {
		return err
	}

	env, err := cli.NewEnvironment(cmd.Context(), cfg, logger, vignette.WithLifecycleHooks(metrics.Hooks()))
	if err != nil {
		return err
	}
	defer env.Close()

	opts := []httpAdapter.Option{httpAdapter.WithLogger(logger), httpAdapter.WithMetrics(reg)}
	if lister, ok := env.Director.Catalog().(interface{ Blocks() []domain.ActionBlock }); ok {
		opts = append(opts, httpAdapter.WithCatalog(lister.Blocks))
	}
	handler := httpAdapter.NewHandler(env.Director, opts...)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	go func() {
		fmt.Fprintf(cmd.OutOrStdout(), "Starting vignette server on %s\n", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	signals := runner.NewSignalManager()
	defer signals.Stop()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case <-signals.Context().Done():
		fmt.Fprintln(cmd.OutOrStdout(), "\nStart shutdown...")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("graceful shutdown did not complete", "err", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("error killing server: %w", err)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "vignette server stopped gracefully")
		return nil
	}
}
