package httpadapter

import (
	"log/slog"
	"net/http"

	"campaign-insights/internal/core/port"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes caps dataset uploads.
const maxUploadBytes = 32 << 20

// Handler contains dependencies and routes. It is an inbound adapter for HTTP.
// It holds the analytics use case and a logger for structured logging.
// Routes are registered on a chi.Router under /api/v1.
type Handler struct {
	svc    port.AnalyticsUseCase
	logger *slog.Logger
	router chi.Router
}

// NewHandler creates a handler with all routes configured.
func NewHandler(svc port.AnalyticsUseCase, logger *slog.Logger) *Handler {
	h := &Handler{svc: svc, logger: logger}
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/datasets", func(r chi.Router) {
			r.Post("/", h.handleUpload)
			r.Post("/sample", h.handleSample)
			r.Post("/import", h.handleImport)
			r.Get("/validation", h.handleValidation)
			r.Get("/export", h.handleExport)
			r.Post("/export/object", h.handleExportObject)
		})
		r.Route("/metrics", func(r chi.Router) {
			r.Get("/portfolio", h.handlePortfolio)
			r.Get("/top", h.handleTop)
			r.Get("/channels", h.handleChannels)
			r.Get("/timeseries", h.handleTimeSeries)
			r.Get("/roi", h.handleROI)
			r.Get("/columns", h.handleColumns)
		})
		r.Post("/segments", h.handleSegment)
		r.Post("/insights", h.handleAsk)
		r.Post("/insights/actions/{action}", h.handleQuickAction)
		r.Route("/email", func(r chi.Router) {
			r.Post("/campaigns", h.handleSendEmail)
			r.Get("/campaigns", h.handleEmailHistory)
			r.Get("/report", h.handleEmailReport)
		})
	})
	h.router = r
	return h
}

// Router returns the underlying http.Handler.
func (h *Handler) Router() http.Handler {
	return h.router
}
