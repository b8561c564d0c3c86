package config_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/okian/placement/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.DeliveryQueueSize, convey.ShouldEqual, 256)
				convey.So(cfg.RequireAuth, convey.ShouldBeFalse)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("PLACEMENT_ADDR", ":8080")
			_ = os.Setenv("PLACEMENT_DELIVERY_WORKERS", "16")
			_ = os.Setenv("PLACEMENT_LATENCY_MIN_MS", "50")
			_ = os.Setenv("PLACEMENT_LATENCY_MAX_MS", "100")
			_ = os.Setenv("PLACEMENT_REQUIRE_AUTH", "true")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.DeliveryWorkers, convey.ShouldEqual, 16)
				convey.So(cfg.LatencyMinMS, convey.ShouldEqual, 50)
				convey.So(cfg.LatencyMaxMS, convey.ShouldEqual, 100)
				convey.So(cfg.RequireAuth, convey.ShouldBeTrue)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
# file layer
addr: ":9090"
data_source: remote
remote_base_url: "https://api.placement.example"
delivery_queue_size: 1024
max_page_size: 50
`
			tmpFile := createTempFile("placement-config-*.yaml", yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PLACEMENT_CONFIG", tmpFile)
			_ = os.Setenv("PLACEMENT_MAX_PAGE_SIZE", "25")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DataSource, convey.ShouldEqual, config.SourceRemote)
				convey.So(cfg.RemoteBaseURL, convey.ShouldEqual, "https://api.placement.example")
				convey.So(cfg.DeliveryQueueSize, convey.ShouldEqual, 1024)
				convey.So(cfg.MaxPageSize, convey.ShouldEqual, 25)
				convey.So(cfg.ReminderSchedule, convey.ShouldEqual, "@every 15m")
			})
		})

		convey.Convey("When a .env file is named", func() {
			tmpFile := createTempFile("placement-*.env", "PLACEMENT_ADDR=:7070\nPLACEMENT_LOG_FORMAT=json\n")
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PLACEMENT_ENV_FILE", tmpFile)
			_ = os.Setenv("PLACEMENT_LOG_FORMAT", "text")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then its values apply without overriding the environment", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
				convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			})
		})

		convey.Convey("When the named .env file does not exist", func() {
			_ = os.Setenv("PLACEMENT_ENV_FILE", "/non/existent/.env")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			tmpFile := createTempFile("placement-config-*.yaml", `invalid: yaml: content: [`)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("PLACEMENT_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("PLACEMENT_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with empty addr", func() {
			_ = os.Setenv("PLACEMENT_ADDR", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "addr must not be empty")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("PLACEMENT_DELIVERY_QUEUE_SIZE", "invalid")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "PLACEMENT_") {
			_ = os.Unsetenv(key)
		}
	}
}

func createTempFile(pattern, content string) string {
	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
