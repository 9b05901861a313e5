package swagger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/smartystreets/goconvey/convey"
	kyaml "github.com/knadh/koanf/parsers/yaml"
)

func TestRegister(t *testing.T) {
	convey.Convey("Given a router with the spec registered", t, func() {
		r := mux.NewRouter()
		Register(r)

		convey.Convey("When requesting /openapi.yaml", func() {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))

			convey.Convey("Then the embedded spec should be served", func() {
				convey.So(rec.Code, convey.ShouldEqual, http.StatusOK)
				convey.So(rec.Header().Get("Content-Type"), convey.ShouldStartWith, "application/yaml")
				convey.So(rec.Body.String(), convey.ShouldContainSubstring, "/healthz")
			})
		})

		convey.Convey("When registering on a nil router", func() {
			convey.So(func() { Register(nil) }, convey.ShouldPanic)
		})
	})
}

func TestOpenAPIDocument(t *testing.T) {
	convey.Convey("Given the embedded document", t, func() {
		doc, err := kyaml.Parser().Unmarshal(OpenAPI)

		convey.Convey("Then it should list every listener route", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(doc["openapi"], convey.ShouldEqual, "3.0.3")
			paths, ok := doc["paths"].(map[string]interface{})
			convey.So(ok, convey.ShouldBeTrue)
			for _, p := range []string{"/healthz", "/stats", "/metrics", "/openapi.yaml"} {
				convey.So(paths, convey.ShouldContainKey, p)
			}
		})
	})
}
