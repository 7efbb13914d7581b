package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	app "github.com/okian/gradebot/internal/app"
	"github.com/okian/gradebot/internal/config"
	"github.com/okian/gradebot/pkg/logger"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func TestMainFunction(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		convey.Convey("When loading configuration from the environment", func() {
			t.Setenv("GRADEBOT_ADDR", ":8080")
			t.Setenv("GRADEBOT_MAX_SESSIONS", "50")
			t.Setenv("GRADEBOT_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

			convey.Convey("Then the values should be applied", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.MaxSessions, convey.ShouldEqual, 50)
				convey.So(cfg.AllowedOrigins, convey.ShouldResemble, []string{"https://a.example.com", "https://b.example.com"})
			})
		})

		convey.Convey("When the configuration is invalid", func() {
			t.Setenv("GRADEBOT_MAX_SESSIONS", "0")

			convey.Convey("Then loading should fail", func() {
				cfg, err := config.Load(context.Background())
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestNewHandler(t *testing.T) {
	convey.Convey("Given the handler built from default configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()
		svc := newService(cfg, logger.Get())
		convey.So(svc.Start(ctx), convey.ShouldBeNil)
		defer svc.Stop()

		h := newHandler(ctx, cfg, svc)

		get := func(path string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
			return rec
		}

		convey.Convey("Then the chat page, docs and ops routes should all be mounted", func() {
			convey.So(get("/").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/api-docs").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/openapi.yaml").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/healthz").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/stats").Code, convey.ShouldEqual, http.StatusOK)
			convey.So(get("/dashboard").Code, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And a full conversation should work over HTTP", func() {
			srv := httptest.NewServer(h)
			defer srv.Close()

			res, err := http.Post(srv.URL+"/sessions", "application/json", nil)
			convey.So(err, convey.ShouldBeNil)
			convey.So(res.StatusCode, convey.ShouldEqual, http.StatusCreated)
			loc := res.Header.Get("Location")
			_ = res.Body.Close()

			for _, line := range []string{`{"text":"math: 60"}`, `{"text":"english: 80"}`} {
				res, err := http.Post(srv.URL+loc+"/messages", "application/json", strings.NewReader(line))
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.StatusCode, convey.ShouldEqual, http.StatusOK)
				_ = res.Body.Close()
			}

			res, err = http.Get(srv.URL + loc + "/summary")
			convey.So(err, convey.ShouldBeNil)
			defer res.Body.Close()
			convey.So(res.StatusCode, convey.ShouldEqual, http.StatusOK)
		})

		convey.Convey("And CORS headers should be sent for any origin by default", func() {
			req := httptest.NewRequest(http.MethodGet, "/stats", nil)
			req.Header.Set("Origin", "https://somewhere.example.com")
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			convey.So(rec.Header().Get("Access-Control-Allow-Origin"), convey.ShouldEqual, "*")
		})
	})
}

func TestMetricsUpdaters(t *testing.T) {
	convey.Convey("Given the background metrics updaters", t, func() {
		convey.Convey("When they run until their context ends", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
			defer cancel()
			svc := app.New()

			convey.Convey("Then they should return without panicking", func() {
				convey.So(func() { startSystemMetricsUpdater(ctx) }, convey.ShouldNotPanic)
				convey.So(func() { startServiceMetricsUpdater(ctx, svc) }, convey.ShouldNotPanic)
			})
		})

		convey.Convey("When updating once", func() {
			svc := app.New()

			convey.Convey("Then stopped and started services should both be handled", func() {
				convey.So(updateSystemMetrics, convey.ShouldNotPanic)
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
				convey.So(svc.Start(context.Background()), convey.ShouldBeNil)
				defer svc.Stop()
				convey.So(func() { updateServiceMetrics(svc) }, convey.ShouldNotPanic)
			})
		})
	})
}
