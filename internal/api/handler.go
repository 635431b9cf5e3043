// internal/api/handler.go
package api

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github-dashboard/internal/dashboard"
	"github-dashboard/internal/render"
)

// Builder performs one dashboard page load.
type Builder interface {
	Account() string
	Build(ctx context.Context) (*render.Page, []dashboard.Settled)
	BuildChart(ctx context.Context, region render.Region) (render.ChartSpec, error)
}

// Handler is the container for API dependencies.
type Handler struct {
	builder Builder
	logger  *slog.Logger
}

// NewRouter creates and configures a new chi router with all API routes.
func NewRouter(builder Builder, logger *slog.Logger) http.Handler {
	h := &Handler{
		builder: builder,
		logger:  logger,
	}

	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger) // Chi's default logger
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", h.healthCheck)
	r.Get("/", h.getPage)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/dashboard", h.getDashboard)
		r.Get("/charts/{chart}", h.getChart)
	})

	return r
}

// healthCheck is a simple health endpoint.
func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// getPage performs a page load and serves the full HTML document.
// GET /
func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	page, _ := h.builder.Build(r.Context())

	var buf bytes.Buffer
	if err := page.Write(&buf); err != nil {
		h.logger.Error("Failed to render page", "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

type loaderStatus struct {
	Loader string `json:"loader"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

type dashboardResponse struct {
	Account string          `json:"account"`
	Page    render.Snapshot `json:"page"`
	Loaders []loaderStatus  `json:"loaders"`
}

// getDashboard performs a page load and serves the regions as JSON.
// GET /v1/dashboard
func (h *Handler) getDashboard(w http.ResponseWriter, r *http.Request) {
	page, results := h.builder.Build(r.Context())

	resp := dashboardResponse{
		Account: h.builder.Account(),
		Page:    page.Snapshot(),
		Loaders: make([]loaderStatus, 0, len(results)),
	}
	for _, res := range results {
		status := loaderStatus{Loader: res.Loader, OK: res.Err == nil}
		if res.Err != nil {
			status.Error = res.Err.Error()
		}
		resp.Loaders = append(resp.Loaders, status)
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// getChart renders one chart region as SVG. Only the loader behind that
// chart runs, not a full page load.
// GET /v1/charts/{region}.svg
func (h *Handler) getChart(w http.ResponseWriter, r *http.Request) {
	name, ok := strings.CutSuffix(chi.URLParam(r, "chart"), ".svg")
	if !ok {
		respondWithError(w, http.StatusNotFound, "Chart not found")
		return
	}
	region := render.Region(name)

	spec, err := h.builder.BuildChart(r.Context(), region)
	if err != nil {
		if errors.Is(err, dashboard.ErrNoChart) {
			respondWithError(w, http.StatusNotFound, "Chart not found")
			return
		}
		h.logger.Warn("Failed to load chart", "region", region, "error", err)
		respondWithError(w, http.StatusBadGateway, "Chart not available")
		return
	}

	var buf bytes.Buffer
	if err := render.RenderSVG(spec, &buf); err != nil {
		if errors.Is(err, render.ErrEmptyChart) {
			respondWithError(w, http.StatusNotFound, "Chart has no data")
			return
		}
		h.logger.Error("Failed to render chart", "region", region, "error", err)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
