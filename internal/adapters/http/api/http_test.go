package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/bikeshare/internal/adapters/http/api"
	"github.com/okian/bikeshare/pkg/logger"
	"github.com/okian/bikeshare/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newRouter() (http.Handler, *metrics.Manager) {
	registry := prometheus.NewRegistry()
	manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))
	return api.NewServer(registry, manager).Router(), manager
}

func TestHealth(t *testing.T) {
	Convey("Given the metrics router", t, func() {
		router, _ := newRouter()

		Convey("When GET /healthz is requested", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then it should report ok as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Header().Get("Content-Type"), ShouldStartWith, "application/json")
				var body map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["status"], ShouldEqual, "ok")
			})
		})

		Convey("When POST /healthz is requested", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/healthz", nil))

			Convey("Then the method should not be allowed", func() {
				So(rec.Code, ShouldEqual, http.StatusMethodNotAllowed)
			})
		})
	})
}

func TestMetricsAndStats(t *testing.T) {
	Convey("Given a registry with recorded sessions", t, func() {
		router, manager := newRouter()
		manager.RecordSessionStarted()
		manager.RecordDatasetLoaded("chicago", 42, 1, 0.02)

		Convey("When GET /metrics is requested", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			Convey("Then the exposition should list the collectors", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "bikeshare_explorer_sessions_started_total 1")
				So(rec.Body.String(), ShouldContainSubstring, `bikeshare_explorer_rows_loaded_total{city="chicago"} 42`)
			})
		})

		Convey("When GET /stats is requested", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then totals should be returned by metric name", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body map[string]float64
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["bikeshare_explorer_rows_loaded_total"], ShouldEqual, 42)
				So(body["bikeshare_explorer_rows_skipped_total"], ShouldEqual, 1)
			})
		})

		Convey("When the listener's own routes have been requested", func() {
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then the requests should be counted on the server's registry", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body map[string]float64
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["bikeshare_explorer_http_requests_total"], ShouldEqual, 2)

				metricsRec := httptest.NewRecorder()
				router.ServeHTTP(metricsRec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
				So(metricsRec.Body.String(), ShouldContainSubstring,
					`bikeshare_explorer_http_requests_total{endpoint="healthz",method="GET",status="200"} 2`)
			})
		})

		Convey("When an unknown path is requested", func() {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/leaderboard", nil))
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestListener(t *testing.T) {
	Convey("Given a listener on an ephemeral port", t, func() {
		ctx := context.Background()
		router, _ := newRouter()
		l, err := api.Listen(ctx, "127.0.0.1:0", router)
		So(err, ShouldBeNil)

		Convey("When requesting /healthz over the network", func() {
			resp, err := http.Get("http://" + l.Addr() + "/healthz")
			So(err, ShouldBeNil)
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()

			Convey("Then it should answer", func() {
				So(resp.StatusCode, ShouldEqual, http.StatusOK)
				So(string(body), ShouldContainSubstring, `"ok"`)
				So(l.Shutdown(ctx), ShouldBeNil)
			})
		})

		Convey("When binding an address already in use", func() {
			_, err := api.Listen(ctx, l.Addr(), router)

			Convey("Then ErrServe should be returned", func() {
				So(err, ShouldWrap, api.ErrServe)
				So(l.Shutdown(ctx), ShouldBeNil)
			})
		})
	})
}
