package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/envcharts/internal/config"
	"github.com/okian/envcharts/internal/domain/variant"
	"github.com/okian/envcharts/pkg/logger"
	"github.com/smartystreets/goconvey/convey"
)

func upstream() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/data/Chicago":
			_, _ = w.Write([]byte(`{"city":"Chicago","air_quality":{"PM2.5":12,"CO2":400}}`))
		case "/api/data":
			_, _ = w.Write([]byte(`{"air_quality":{"Chicago":5,"NYC":7},"water_usage":{"Chicago":100,"NYC":200}}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, http.NoBody))
	return w
}

func TestConfigFromEnv(t *testing.T) {
	convey.Convey("Given environment overrides", t, func() {
		t.Setenv("ENVCHARTS_ADDR", ":8080")
		t.Setenv("ENVCHARTS_VARIANT", "all")
		t.Setenv("ENVCHARTS_CORS_ORIGINS", "https://a.example.com,https://b.example.com")

		convey.Convey("Then configuration should be loadable", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
			convey.So(cfg.Variant, convey.ShouldEqual, variant.NameAll)
			convey.So(cfg.CORSOrigins, convey.ShouldResemble, []string{"https://a.example.com", "https://b.example.com"})
		})
	})
}

func TestNewServer(t *testing.T) {
	convey.Convey("Given a metrics endpoint", t, func() {
		up := upstream()
		defer up.Close()

		ctx := context.Background()
		cfg := config.New()
		cfg.APIBaseURL = up.URL
		log := logger.Nop()

		convey.Convey("When serving the single-city dashboard", func() {
			srv, err := newServer(ctx, cfg, log)
			convey.So(err, convey.ShouldBeNil)
			convey.So(srv.Addr, convey.ShouldEqual, cfg.Addr)
			convey.So(srv.WriteTimeout, convey.ShouldBeGreaterThan, cfg.RequestTimeout())

			page := get(srv.Handler, "/")

			convey.Convey("Then the page should embed the chart", func() {
				convey.So(page.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(page.Body.String(), convey.ShouldContainSubstring, "Air Quality in Chicago")
			})

			convey.Convey("And the rendered image should be served", func() {
				img := get(srv.Handler, "/charts/charts")
				convey.So(img.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(img.Header().Get("Content-Type"), convey.ShouldEqual, "image/png")
			})

			convey.Convey("And the supporting routes should be mounted", func() {
				convey.So(get(srv.Handler, "/healthz").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get(srv.Handler, "/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
				convey.So(get(srv.Handler, "/static/style.css").Code, convey.ShouldEqual, http.StatusOK)
			})
		})

		convey.Convey("When serving the multi-city dashboard as svg", func() {
			cfg.Variant = variant.NameAll
			cfg.ImageFormat = "svg"
			srv, err := newServer(ctx, cfg, log)
			convey.So(err, convey.ShouldBeNil)

			page := get(srv.Handler, "/")

			convey.Convey("Then both series should be grouped", func() {
				convey.So(page.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(page.Body.String(), convey.ShouldContainSubstring, "Water Usage")
				img := get(srv.Handler, "/charts/charts")
				convey.So(img.Header().Get("Content-Type"), convey.ShouldEqual, "image/svg+xml")
			})
		})

		convey.Convey("When the city is unknown upstream", func() {
			cfg.City = "Atlantis"
			srv, err := newServer(ctx, cfg, log)
			convey.So(err, convey.ShouldBeNil)

			page := get(srv.Handler, "/")

			convey.Convey("Then the page should surface the failure", func() {
				convey.So(page.Code, convey.ShouldEqual, http.StatusBadGateway)
				convey.So(page.Body.String(), convey.ShouldContainSubstring, "did not return usable data")
				convey.So(strings.Contains(page.Body.String(), up.URL), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the variant is unknown", func() {
			cfg.Variant = "weekly"
			_, err := newServer(ctx, cfg, log)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

func TestSystemMetrics(t *testing.T) {
	convey.Convey("Given the system metrics updater", t, func() {
		convey.Convey("Then it should stop with its context", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()

			convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
		})

		convey.Convey("Then a single update should not panic", func() {
			convey.So(updateSystemMetrics, convey.ShouldNotPanic)
		})
	})
}
