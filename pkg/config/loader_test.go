package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fako1024/foodscale/pkg/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()
		clearConfigEnvVars()

		convey.Convey("When loading config with defaults only", func() {
			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should equal the compiled-in configuration", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldResemble, config.Default())
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			path := filepath.Join(t.TempDir(), "foodscale.yaml")
			yamlContent := `
network:
  ssid: pantry
  endpoint: http://collector.local:8090/postjson
  associate_attempts: 0
  retry_delay: 250ms
scale:
  factor: 1980.5
categories:
  - Rice
  - Pasta
log_level: debug
`
			err := os.WriteFile(path, []byte(yamlContent), 0o600)
			convey.So(err, convey.ShouldBeNil)

			cfg, err := config.Load(ctx, path)

			convey.Convey("Then file values should override defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Network.SSID, convey.ShouldEqual, "pantry")
				convey.So(cfg.Network.Password, convey.ShouldEqual, "changeme")
				convey.So(cfg.Network.Endpoint, convey.ShouldEqual, "http://collector.local:8090/postjson")
				convey.So(cfg.Network.AssociateAttempts, convey.ShouldEqual, 0)
				convey.So(cfg.Network.RetryDelay, convey.ShouldEqual, 250*time.Millisecond)
				convey.So(cfg.Scale.Factor, convey.ShouldEqual, 1980.5)
				convey.So(cfg.Scale.Samples, convey.ShouldEqual, 5)
				convey.So(cfg.Categories, convey.ShouldResemble, []string{"Rice", "Pasta"})
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
			})

			convey.Convey("And environment variables override the file", func() {
				_ = os.Setenv("FOODSCALE_NETWORK__SSID", "garage")
				_ = os.Setenv("FOODSCALE_INPUT__DEBOUNCE_WINDOW", "50ms")
				_ = os.Setenv("FOODSCALE_API_ADDR", ":9999")
				defer clearConfigEnvVars()

				cfg, err := config.Load(ctx, path)
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Network.SSID, convey.ShouldEqual, "garage")
				convey.So(cfg.Input.DebounceWindow, convey.ShouldEqual, 50*time.Millisecond)
				convey.So(cfg.APIAddr, convey.ShouldEqual, ":9999")
				convey.So(cfg.Categories, convey.ShouldResemble, []string{"Rice", "Pasta"})
			})
		})

		convey.Convey("When the config file is referenced via environment", func() {
			path := filepath.Join(t.TempDir(), "env.yaml")
			err := os.WriteFile(path, []byte("scale:\n  samples: 10\n"), 0o600)
			convey.So(err, convey.ShouldBeNil)
			_ = os.Setenv(config.EnvConfigFile, path)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx, "")

			convey.Convey("Then it should be loaded", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Scale.Samples, convey.ShouldEqual, 10)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_, err := config.Load(ctx, filepath.Join(t.TempDir(), "missing.yaml"))

			convey.Convey("Then loading should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When the resulting config is invalid", func() {
			path := filepath.Join(t.TempDir(), "invalid.yaml")
			err := os.WriteFile(path, []byte("scale:\n  factor: 0\n"), 0o600)
			convey.So(err, convey.ShouldBeNil)

			_, err = config.Load(ctx, path)

			convey.Convey("Then validation should reject it", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err.Error(), convey.ShouldContainSubstring, "scale factor")
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		config.EnvConfigFile,
		"FOODSCALE_NETWORK__SSID",
		"FOODSCALE_INPUT__DEBOUNCE_WINDOW",
		"FOODSCALE_API_ADDR",
	} {
		_ = os.Unsetenv(key)
	}
}
