package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Stride-Labs/st-scaling-factor/api"
	"github.com/Stride-Labs/st-scaling-factor/app/health"
	"github.com/Stride-Labs/st-scaling-factor/app/telemetry"
)

const shutdownTimeout = 10 * time.Second

// ServeCmd runs the REST query API plus the metrics and health endpoints
func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the REST query API, Prometheus metrics and health checks",
		Long: `Serve the read only REST API on api.host:api.port and /metrics plus /health on
metrics.address until interrupted.

Example:
  $ stscalingd serve --home ~/.stscaling`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := nodeFromCmd(cmd)
			if err != nil {
				return err
			}

			provider, err := telemetry.NewProvider(n.config.Telemetry)
			if err != nil {
				return fmt.Errorf("failed to start telemetry: %w", err)
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := provider.Shutdown(ctx); err != nil {
					n.logger.Error("telemetry shutdown failed", "error", err)
				}
			}()

			a, collab, err := n.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			checker, err := health.NewChecker(n.logger.With("module", "health"), health.DefaultConfig(), a, collab.LCD)
			if err != nil {
				return err
			}
			apiServer, err := api.NewServer(n.logger.With("module", "api"), a, n.config.API)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			metricsServer := &http.Server{
				Addr:              n.config.MetricsAddress,
				Handler:           MetricsHandler(checker, cmd.ErrOrStderr()),
				ReadHeaderTimeout: 5 * time.Second,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return apiServer.Start(gctx)
			})
			g.Go(func() error {
				n.logger.Info("starting metrics server", "address", metricsServer.Addr)
				if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("metrics server failed: %w", err)
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return metricsServer.Shutdown(shutdownCtx)
			})

			return g.Wait()
		},
	}
}

// MetricsHandler routes /metrics and the health endpoints, with panic recovery and access logs
func MetricsHandler(checker *health.Checker, accessLog io.Writer) http.Handler {
	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	checker.RegisterRoutes(router)

	return handlers.RecoveryHandler()(handlers.CombinedLoggingHandler(accessLog, router))
}
