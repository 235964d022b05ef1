package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vitalvas/actionroute/dispatch"
	"github.com/vitalvas/actionroute/routeconfig"
	"github.com/vitalvas/actionroute/routes"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve HTTP, answering each routed request with its resolved action",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}
}

// describe answers with the action and parameters the request resolved to.
func describe(w http.ResponseWriter, r *http.Request) {
	dispatch.ResponseJSON(w, http.StatusOK, map[string]any{
		"action":     dispatch.CurrentAction(r).String(),
		"params":     dispatch.Params(r),
		"request_id": dispatch.RequestIDFromContext(r.Context()),
	})
}

// newHandler builds the served handler: metrics under metricsPath and the
// dispatcher for everything else, with describe bound to every action.
func newHandler(manager *routes.Manager, logger *zap.Logger, metricsPath string) http.Handler {
	reg := prometheus.NewRegistry()

	d := dispatch.New(manager,
		dispatch.WithLogger(logger),
		dispatch.WithMetrics(dispatch.NewMetrics(reg)),
	)
	for _, r := range manager.Routes() {
		d.Handle(r.Action, http.HandlerFunc(describe))
	}

	mux := http.NewServeMux()
	if metricsPath != "" {
		mux.Handle(metricsPath, promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	}
	mux.Handle("/", d)

	return mux
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.close()

	if a.cfg.Server.WatchRoutes {
		w, err := routeconfig.NewWatcher(a.cfg.RoutesFile, a.cfg.Cache.CacheKey(), a.cache,
			routeconfig.WithWatchLogger(a.logger),
		)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			return err
		}
		defer w.Stop()
	}

	srv := &http.Server{
		Addr:              a.cfg.Server.Listen,
		Handler:           newHandler(a.manager, a.logger, a.cfg.Server.MetricsPath),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("listening", zap.String("addr", srv.Addr), zap.Int("routes", len(a.manager.Routes())))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	a.logger.Info("shutting down")

	return srv.Shutdown(shutdownCtx)
}
