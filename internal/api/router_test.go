package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/fixdict/internal/domain/dto"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(newTestService(t), nil), RouterOptions{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dictionaries/FIX.4.4/fields/35", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	var out dto.FieldResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if out.Name != "MsgType" || out.Location != "header" {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestNewRouter_ErrorEnvelope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(newTestService(t), nil), RouterOptions{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/dictionaries/FIX.9.9/messages/D", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	var body dto.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Message != "version not loaded" || body.Timestamp.IsZero() {
		t.Fatalf("unexpected envelope: %+v", body)
	}
}

func TestNewRouter_RateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(newTestService(t), nil), RouterOptions{RateLimitPerMinute: 2})

	var last int
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/versions", nil))
		last = w.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", last)
	}
}
