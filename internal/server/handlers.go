package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fernvale/mosaic/pkg/errors"
	"github.com/fernvale/mosaic/pkg/gallery"
	"github.com/fernvale/mosaic/pkg/pipeline"
	"github.com/fernvale/mosaic/pkg/render"
)

// maxRequestBody bounds gallery uploads (1 MiB of JSON is roughly ten
// thousand photos, far beyond a single page).
const maxRequestBody = 1 << 20

type layoutRequest struct {
	Gallery gallery.Gallery  `json:"gallery"`
	Options pipeline.Options `json:"options"`
}

type layoutResponse struct {
	GalleryHash string            `json:"gallery_hash"`
	LayoutHash  string            `json:"layout_hash"`
	Layout      gallery.Layout    `json:"layout"`
	Artifacts   map[string]string `json:"artifacts,omitempty"`
	Stats       layoutStats       `json:"stats"`
	Cached      bool              `json:"cached"`
}

type layoutStats struct {
	Photos   int   `json:"photos"`
	Rows     int   `json:"rows"`
	LayoutMS int64 `json:"layout_ms"`
	RenderMS int64 `json:"render_ms"`
	Width    int   `json:"width"`
	Height   int   `json:"height"`
}

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleComputeLayout runs the pipeline for an inline gallery and, when
// a store is configured, persists the resulting layout.
func (s *Server) handleComputeLayout(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)

	var req layoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidGallery, err, "decode request body"))
		return
	}

	result, err := s.cfg.Runner.Execute(r.Context(), req.Gallery, req.Options)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	if s.cfg.Store != nil && len(req.Gallery.Photos) > 0 {
		if err := s.cfg.Store.Save(r.Context(), result.Layout); err != nil {
			s.cfg.Logger.Error("store layout", "err", err, "request_id", RequestID(r.Context()))
		}
	}

	resp := layoutResponse{
		GalleryHash: result.GalleryHash,
		LayoutHash:  result.LayoutHash,
		Layout:      result.Layout,
		Cached:      result.CacheInfo.LayoutHit,
		Stats: layoutStats{
			Photos:   result.Stats.PhotoCount,
			Rows:     result.Stats.RowCount,
			LayoutMS: result.Stats.LayoutTime.Milliseconds(),
			RenderMS: result.Stats.RenderTime.Milliseconds(),
			Height:   result.Layout.Height,
			Width:    result.Layout.ContainerWidth,
		},
	}
	if len(result.Artifacts) > 0 {
		resp.Artifacts = make(map[string]string, len(result.Artifacts))
		for format, data := range result.Artifacts {
			resp.Artifacts[format] = string(data)
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleGetLayout fetches a stored layout by gallery hash.
func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "layout store not configured"))
		return
	}

	hash := chi.URLParam(r, "hash")
	l, err := s.cfg.Store.Load(r.Context(), hash)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, l)
}

// handleRenderLayout renders a stored layout in the requested format.
func (s *Server) handleRenderLayout(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "layout store not configured"))
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = render.FormatSVG
	}
	if err := render.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	hash := chi.URLParam(r, "hash")
	l, err := s.cfg.Store.Load(r.Context(), hash)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var opts []render.Option
	if r.URL.Query().Get("images") == "true" {
		opts = append(opts, render.WithImages())
	}
	data, err := render.Render(l, format, opts...)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func contentTypeFor(format string) string {
	switch format {
	case render.FormatSVG:
		return "image/svg+xml"
	case render.FormatHTML:
		return "text/html; charset=utf-8"
	default:
		return "application/json"
	}
}

// statusForCode maps structured error codes to HTTP statuses.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidItem, errors.ErrCodeInvalidGallery,
		errors.ErrCodeInvalidLayout, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeLayoutNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	case errors.ErrCodeStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)
	if status >= 500 {
		s.cfg.Logger.Error("request failed", "err", err, "request_id", RequestID(r.Context()))
	}
	writeJSON(w, status, errorResponse{
		Error:     errors.UserMessage(err),
		Code:      string(code),
		RequestID: RequestID(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
