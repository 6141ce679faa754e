package config_test

import (
	"errors"
	"runtime"
	"testing"

	"github.com/okian/podium/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New()

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.Season, convey.ShouldEqual, "Summer")
			convey.So(cfg.Warmup, convey.ShouldBeTrue)
			convey.So(cfg.WarmupConcurrency, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.GoldAgeSports, convey.ShouldResemble, config.DefaultGoldAgeSports)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the sport list should not alias the package default", func() {
			cfg.GoldAgeSports[0] = "Curling"
			convey.So(config.DefaultGoldAgeSports[0], convey.ShouldEqual, "Basketball")
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a config with invalid fields", t, func() {
		convey.Convey("When the log format is unknown", func() {
			cfg := config.New()
			cfg.LogFormat = "xml"

			convey.Convey("Then validation should fail with ErrInvalidConfig", func() {
				convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the warm-up concurrency is zero", func() {
			cfg := config.New()
			cfg.WarmupConcurrency = 0

			convey.Convey("Then validation should fail", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When a gold age sport is blank", func() {
			cfg := config.New()
			cfg.GoldAgeSports = []string{"Judo", ""}

			convey.Convey("Then validation should fail", func() {
				convey.So(cfg.Validate(), convey.ShouldNotBeNil)
			})
		})
	})
}
