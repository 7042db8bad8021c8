package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name    string
		loaded  int
		storage bool
		pingErr bool
		path    string
		want    int
	}{
		{name: "healthz ok", path: "/healthz", want: 200},
		{name: "healthz while loading", loaded: 0, path: "/healthz", want: 200},
		{name: "readyz no dictionaries", loaded: 0, path: "/readyz", want: 503},
		{name: "readyz without storage", loaded: 2, path: "/readyz", want: 200},
		{name: "readyz with storage", loaded: 1, storage: true, path: "/readyz", want: 200},
		{name: "readyz degraded", loaded: 1, storage: true, pingErr: true, path: "/readyz", want: 503},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ping func() error
			if tc.storage {
				if tc.pingErr {
					ping = func() error { return assertErr{} }
				} else {
					ping = func() error { return nil }
				}
			}
			loaded := tc.loaded

			r := gin.New()
			NewHealthHandler(func() int { return loaded }, ping).Register(r)
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("want %d got %d", tc.want, w.Code)
			}
		})
	}
}

type assertErr struct{}

func (assertErr) Error() string { return "err" }
