package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/envcharts/internal/adapters/http/api"
	"github.com/okian/envcharts/internal/adapters/http/site"
	"github.com/okian/envcharts/internal/adapters/http/swagger"
	"github.com/okian/envcharts/internal/adapters/metricsapi"
	"github.com/okian/envcharts/internal/adapters/render"
	app "github.com/okian/envcharts/internal/app"
	"github.com/okian/envcharts/internal/config"
	"github.com/okian/envcharts/internal/domain/variant"
	"github.com/okian/envcharts/pkg/logger"
	"github.com/okian/envcharts/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
	// writeSlack leaves room for rendering after the upstream request timed out.
	writeSlack = 5 * time.Second
)

func main() {
	// Default Go collectors live on the default registry; we export our own system gauges.
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	srv, err := newServer(ctx, cfg, log)
	if err != nil {
		log.Error(ctx, "failed to build server", logger.Error(err))
		os.Exit(1)
	}

	go startSystemMetricsUpdater(ctx)

	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("api_base_url", cfg.APIBaseURL),
			logger.String("variant", cfg.Variant),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(context.Background(), "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(shutdownCtx, "server shutdown failed", logger.Error(err))
	}

	log.Info(shutdownCtx, "server stopped")
}

// newServer wires the metrics client, renderers, loader and routes from cfg.
func newServer(ctx context.Context, cfg *config.Config, log logger.Logger) (*http.Server, error) {
	v, err := variant.Parse(cfg.Variant, cfg.City)
	if err != nil {
		return nil, fmt.Errorf("variant: %w", err)
	}

	client := metricsapi.New(cfg.APIBaseURL,
		metricsapi.WithTimeout(cfg.RequestTimeout()),
		metricsapi.WithLogger(log.Named("metricsapi")),
	)

	board := render.NewBoard(cfg.Container)
	renderer := render.Tee{
		render.NewFigureRenderer(board),
		render.NewImageRenderer(board,
			render.WithFormat(cfg.ImageFormat),
			render.WithSize(cfg.ChartWidth, cfg.ChartHeight),
		),
	}

	loader := app.New(client, renderer,
		app.WithVariant(v),
		app.WithContainer(cfg.Container),
		app.WithLogger(log.Named("loader")),
	)

	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)

	apiServer := api.NewServer(loader, board,
		api.WithCORSOrigins(cfg.CORSOrigins),
		api.WithLogger(log.Named("api")),
	)
	apiServer.Register(ctx, mux)

	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           apiServer.Handler(mux),
		ReadTimeout:       readTimeout,
		WriteTimeout:      cfg.RequestTimeout() + writeSlack,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(metrics.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystem(m.Alloc, runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordGCPause(avgPauseMs)
	}
}
