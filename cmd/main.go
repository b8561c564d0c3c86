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

	"github.com/go-chi/chi/v5"

	"github.com/okian/placement/internal/adapters/http/api"
	"github.com/okian/placement/internal/adapters/http/swagger"
	"github.com/okian/placement/internal/adapters/latency"
	"github.com/okian/placement/internal/adapters/mock"
	"github.com/okian/placement/internal/adapters/remote"
	"github.com/okian/placement/internal/adapters/scheduler"
	service "github.com/okian/placement/internal/app"
	"github.com/okian/placement/internal/auth"
	"github.com/okian/placement/internal/config"
	"github.com/okian/placement/internal/ports"
	"github.com/okian/placement/pkg/logger"
	"github.com/okian/placement/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout            = 10 * time.Second
	writeTimeout           = 35 * time.Second
	idleTimeout            = 60 * time.Second
	readHeaderTimeout      = 5 * time.Second
	shutdownTimeout        = 30 * time.Second
	systemMetricsInterval  = 10 * time.Second
	serviceMetricsInterval = 5 * time.Second
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> .env -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		_, _ = os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		_, _ = os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, log); err != nil {
		log.Error(ctx, "placement exited", logger.Error(err))
		os.Exit(1)
	}
}

// application is the assembled process: service, reminder job and routes.
type application struct {
	svc       *service.Service
	reminders *scheduler.Reminders
	handler   http.Handler
}

// newSource builds the configured data source.
func newSource(cfg *config.Config) (ports.DataSource, error) {
	switch cfg.DataSource {
	case config.SourceRemote:
		return remote.New(cfg.RemoteBaseURL), nil
	case config.SourceMock:
		issuer, err := auth.NewIssuer(cfg.AuthSecret, auth.WithTTL(cfg.TokenTTL()))
		if err != nil {
			return nil, err
		}
		lo, hi := cfg.LatencyBounds()
		return mock.New(
			mock.WithGate(latency.New(lo, hi)),
			mock.WithIssuer(issuer),
		)
	}
	return nil, fmt.Errorf("%w: data_source %q", config.ErrInvalidConfig, cfg.DataSource)
}

// build wires every component without starting anything.
func build(ctx context.Context, cfg *config.Config, log logger.Logger) (*application, error) {
	src, err := newSource(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := service.New(src,
		service.WithLogger(log.Named("service")),
		service.WithWorkerCount(cfg.DeliveryWorkers),
		service.WithQueueSize(cfg.DeliveryQueueSize),
		service.WithGuardSize(cfg.InFlightGuardSize),
		service.WithDashboardCache(cfg.DashboardCacheSize, cfg.DashboardCacheTTL()),
	)
	if err != nil {
		return nil, err
	}

	a := &application{svc: svc}
	if cfg.ReminderSchedule != "" {
		a.reminders, err = scheduler.New(svc,
			scheduler.WithSchedule(cfg.ReminderSchedule),
			scheduler.WithWindow(cfg.ReminderWindow()),
			scheduler.WithLogger(log.Named("reminders")),
		)
		if err != nil {
			return nil, err
		}
	}

	var docsErr error
	apiServer := api.NewServer(svc, svc,
		api.WithLogger(log.Named("http")),
		api.WithMaxPageSize(cfg.MaxPageSize),
		api.WithRequireAuth(cfg.RequireAuth),
		api.WithRoutes(func(r chi.Router) {
			docsErr = swagger.Register(ctx, r)
		}),
	)
	a.handler = apiServer.Handler()
	if docsErr != nil {
		return nil, docsErr
	}
	return a, nil
}

// run starts the application and blocks until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	a, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}

	if err := a.svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer a.svc.Stop()

	if a.reminders != nil {
		if err := a.reminders.Start(ctx); err != nil {
			return fmt.Errorf("start reminders: %w", err)
		}
		defer a.reminders.Stop()
	}

	go startSystemMetricsUpdater(ctx)
	go startServiceMetricsUpdater(ctx, a.svc)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a.handler,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server",
			logger.String("addr", cfg.Addr),
			logger.String("source", a.svc.SourceName()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
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

// startServiceMetricsUpdater refreshes the queue and outbox gauges.
func startServiceMetricsUpdater(ctx context.Context, svc *service.Service) {
	ticker := time.NewTicker(serviceMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = svc.GetStats()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
