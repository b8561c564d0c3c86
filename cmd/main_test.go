package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/placement/internal/adapters/mock"
	"github.com/okian/placement/internal/adapters/remote"
	"github.com/okian/placement/internal/config"
	"github.com/okian/placement/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func testConfig() *config.Config {
	cfg := config.New()
	cfg.LatencyMinMS, cfg.LatencyMaxMS = 0, 0
	cfg.Addr = "127.0.0.1:0"
	return cfg
}

func get(h http.Handler, path string) int {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))
	return w.Code
}

func TestNewSource(t *testing.T) {
	convey.Convey("Given the data source switch", t, func() {
		convey.Convey("When the mock is configured", func() {
			src, err := newSource(testConfig())
			convey.So(err, convey.ShouldBeNil)
			convey.So(src.Name(), convey.ShouldEqual, mock.Name)
		})

		convey.Convey("When the remote is configured", func() {
			cfg := testConfig()
			cfg.DataSource = config.SourceRemote
			cfg.RemoteBaseURL = "https://api.placement.example"
			src, err := newSource(cfg)
			convey.So(err, convey.ShouldBeNil)
			convey.So(src.Name(), convey.ShouldEqual, remote.Name)
		})

		convey.Convey("When the source is unknown", func() {
			cfg := testConfig()
			cfg.DataSource = "sql"
			_, err := newSource(cfg)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})
}

func TestBuild(t *testing.T) {
	convey.Convey("Given the default configuration", t, func() {
		ctx := context.Background()
		a, err := build(ctx, testConfig(), logger.Get())
		convey.So(err, convey.ShouldBeNil)
		convey.So(a.reminders, convey.ShouldNotBeNil)

		convey.Convey("Then the operational, docs and feature routes answer", func() {
			convey.So(get(a.handler, "/healthz"), convey.ShouldEqual, http.StatusOK)
			convey.So(get(a.handler, "/openapi.yaml"), convey.ShouldEqual, http.StatusOK)
			convey.So(get(a.handler, "/api-docs"), convey.ShouldEqual, http.StatusOK)
			convey.So(get(a.handler, "/api/v1/matches"), convey.ShouldEqual, http.StatusOK)
		})
	})

	convey.Convey("Given reminders are disabled and auth is required", t, func() {
		cfg := testConfig()
		cfg.ReminderSchedule = ""
		cfg.RequireAuth = true
		a, err := build(context.Background(), cfg, logger.Get())
		convey.So(err, convey.ShouldBeNil)
		convey.So(a.reminders, convey.ShouldBeNil)
		convey.So(get(a.handler, "/api/v1/matches"), convey.ShouldEqual, http.StatusUnauthorized)
	})

	convey.Convey("Given the remote source", t, func() {
		cfg := testConfig()
		cfg.DataSource = config.SourceRemote
		cfg.RemoteBaseURL = "https://api.placement.example"
		a, err := build(context.Background(), cfg, logger.Get())
		convey.So(err, convey.ShouldBeNil)
		convey.So(get(a.handler, "/api/v1/matches"), convey.ShouldEqual, http.StatusNotImplemented)
	})
}

func TestRun(t *testing.T) {
	convey.Convey("Given a context that is cancelled shortly", t, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		convey.Convey("Then run serves until cancellation and shuts down cleanly", func() {
			convey.So(run(ctx, testConfig(), logger.Get()), convey.ShouldBeNil)
		})
	})

	convey.Convey("Given an address that is already bound", t, func() {
		ln, err := net.Listen("tcp", "127.0.0.1:0")
		convey.So(err, convey.ShouldBeNil)
		defer func() { _ = ln.Close() }()

		cfg := testConfig()
		cfg.Addr = ln.Addr().String()
		convey.So(run(context.Background(), cfg, logger.Get()), convey.ShouldNotBeNil)
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the background updaters", t, func() {
		a, err := build(context.Background(), testConfig(), logger.Get())
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then they return once the context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
			defer cancel()
			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
			convey.So(func() { startServiceMetricsUpdater(ctx, a.svc) }, convey.ShouldNotPanic)
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})
	})
}
