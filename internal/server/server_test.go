package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/fernvale/mosaic/pkg/pipeline"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	return New(Config{
		Addr:   "127.0.0.1:0",
		Runner: pipeline.NewRunner(nil, nil, logger),
		Logger: logger,
	})
}

func TestHealthz(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestComputeLayout(t *testing.T) {
	s := testServer(t)

	body := `{
	  "gallery": {"photos": [
	    {"id": "a", "width": 800, "height": 600},
	    {"id": "b", "width": 600, "height": 800},
	    {"id": "c", "width": 1000, "height": 400}
	  ]},
	  "options": {"width": 960, "formats": ["svg", "json"]}
	}`

	req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp layoutResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.GalleryHash == "" || resp.LayoutHash == "" {
		t.Error("response should include both hashes")
	}
	if resp.Layout.ContainerWidth != 960 {
		t.Errorf("container width = %d, want 960", resp.Layout.ContainerWidth)
	}
	if resp.Stats.Photos != 3 || resp.Stats.Rows == 0 {
		t.Errorf("stats = %+v", resp.Stats)
	}
	if !strings.HasPrefix(resp.Artifacts["svg"], "<svg") {
		t.Error("svg artifact missing or malformed")
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("response should carry a request ID")
	}
}

func TestComputeLayoutInvalidGallery(t *testing.T) {
	s := testServer(t)

	body := `{"gallery": {"photos": [{"id": "a", "width": 0, "height": 100}]}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error response: %v", err)
	}
	if resp.Code != "INVALID_GALLERY" {
		t.Errorf("code = %s, want INVALID_GALLERY", resp.Code)
	}
}

func TestComputeLayoutMalformedBody(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(`{"gallery": [`))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestComputeLayoutUnknownFormat(t *testing.T) {
	s := testServer(t)

	body := `{
	  "gallery": {"photos": [{"id": "a", "width": 800, "height": 600}]},
	  "options": {"formats": ["png"]}
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/layout", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetLayoutWithoutStore(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/layout/abc123", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}

func TestRenderLayoutInvalidFormat(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/layout/abc123/artifact?format=png", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	// No store configured, so the route fails before format validation.
	if rec.Code != http.StatusNotImplemented {
		t.Errorf("status = %d, want 501", rec.Code)
	}
}

func TestRequestIDPropagation(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "upstream-42")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "upstream-42" {
		t.Errorf("X-Request-ID = %q, want upstream-42", got)
	}
}
