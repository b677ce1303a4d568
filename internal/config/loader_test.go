package config_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/mkarami/lottostats/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func clearConfigEnvVars(t *testing.T) {
	t.Helper()
	vars := []string{
		"LOTTO_CONFIG",
		"LOTTO_LOG_LEVEL",
		"LOTTO_ADDR",
		"LOTTO_QUEUE_SIZE",
		"LOTTO_WORKER_COUNT",
		"LOTTO_DEDUPE_SIZE",
		"LOTTO_OPTIMIZER_MAX_ATTEMPTS",
		"LOTTO_SCRAPE_BASE_URL",
		"LOTTO_SCRAPE_TIMEOUT_MS",
		"LOTTO_SCRAPE_USER_AGENT",
		"LOTTO_REFRESH_INTERVAL_MIN",
		"LOTTO_POSTGRES_DSN",
		"LOTTO_REDIS_URL",
		"LOTTO_STATS_CACHE_TTL_MIN",
	}
	for _, v := range vars {
		if err := os.Unsetenv(v); err != nil {
			t.Fatalf("unset %s: %v", v, err)
		}
	}
}

func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearConfigEnvVars(t)

	convey.Convey("Given no config file and no env overrides", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then defaults are returned", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.DrawQueueSize, convey.ShouldEqual, 10_000)
			convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			convey.So(cfg.ScrapeBaseURL, convey.ShouldEqual, "https://www.lottery.net")
		})
	})
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearConfigEnvVars(t)
	t.Setenv("LOTTO_ADDR", ":7070")
	t.Setenv("LOTTO_QUEUE_SIZE", "512")
	t.Setenv("LOTTO_OPTIMIZER_MAX_ATTEMPTS", "25")
	t.Setenv("LOTTO_REDIS_URL", "redis://localhost:6379/0")

	convey.Convey("Given env overrides", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then env values win over defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":7070")
			convey.So(cfg.DrawQueueSize, convey.ShouldEqual, 512)
			convey.So(cfg.OptimizerMaxAttempts, convey.ShouldEqual, 25)
			convey.So(cfg.RedisURL, convey.ShouldEqual, "redis://localhost:6379/0")

			convey.Convey("And untouched fields keep defaults", func() {
				convey.So(cfg.DedupeSize, convey.ShouldEqual, 50_000)
				convey.So(cfg.StatsCacheTTLMin, convey.ShouldEqual, 15)
			})
		})
	})
}

func TestLoad_ConfigFile(t *testing.T) {
	clearConfigEnvVars(t)
	path := createTempConfigFile(t, `
addr: ":8088"
queue_size: 2048
scrape_base_url: "https://example.test"
refresh_interval_min: 60
`)
	t.Setenv("LOTTO_CONFIG", path)

	convey.Convey("Given a YAML config file", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then file values override defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8088")
			convey.So(cfg.DrawQueueSize, convey.ShouldEqual, 2048)
			convey.So(cfg.ScrapeBaseURL, convey.ShouldEqual, "https://example.test")
			convey.So(cfg.RefreshIntervalMin, convey.ShouldEqual, 60)

			convey.Convey("And unset fields keep defaults", func() {
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU()*2)
			})
		})
	})
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearConfigEnvVars(t)
	path := createTempConfigFile(t, `
addr: ":8088"
queue_size: 2048
`)
	t.Setenv("LOTTO_CONFIG", path)
	t.Setenv("LOTTO_ADDR", ":7001")

	convey.Convey("Given both a config file and env overrides", t, func() {
		cfg, err := config.Load(context.Background())

		convey.Convey("Then env wins over file, file wins over defaults", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":7001")
			convey.So(cfg.DrawQueueSize, convey.ShouldEqual, 2048)
		})
	})
}

func TestLoad_Errors(t *testing.T) {
	convey.Convey("Given an invalid YAML file", t, func() {
		clearConfigEnvVars(t)
		path := createTempConfigFile(t, "addr: [broken")
		t.Setenv("LOTTO_CONFIG", path)

		cfg, err := config.Load(context.Background())

		convey.Convey("Then loading fails", func() {
			convey.So(cfg, convey.ShouldBeNil)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a config file path that does not exist", t, func() {
		clearConfigEnvVars(t)
		t.Setenv("LOTTO_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

		cfg, err := config.Load(context.Background())

		convey.Convey("Then loading fails", func() {
			convey.So(cfg, convey.ShouldBeNil)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given an empty listen address", t, func() {
		clearConfigEnvVars(t)
		path := createTempConfigFile(t, `addr: ""`)
		t.Setenv("LOTTO_CONFIG", path)

		cfg, err := config.Load(context.Background())

		convey.Convey("Then validation fails", func() {
			convey.So(cfg, convey.ShouldBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given an empty scrape base URL", t, func() {
		clearConfigEnvVars(t)
		path := createTempConfigFile(t, `scrape_base_url: ""`)
		t.Setenv("LOTTO_CONFIG", path)

		cfg, err := config.Load(context.Background())

		convey.Convey("Then validation fails", func() {
			convey.So(cfg, convey.ShouldBeNil)
			convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a non-numeric value for a numeric field", t, func() {
		clearConfigEnvVars(t)
		t.Setenv("LOTTO_QUEUE_SIZE", "lots")

		cfg, err := config.Load(context.Background())

		convey.Convey("Then unmarshalling fails", func() {
			convey.So(cfg, convey.ShouldBeNil)
			convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
		})
	})
}
