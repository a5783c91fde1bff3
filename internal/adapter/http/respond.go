package httpadapter

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"campaign-insights/internal/core/domain"
	"campaign-insights/internal/core/insight"
	"campaign-insights/internal/core/segment"
)

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response error", slog.Any("error", err))
	}
}

// writeError maps use-case errors to status codes. Client mistakes echo the
// error text; anything unexpected is logged and hidden behind a 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var (
		ingestErr *domain.IngestionError
		formatErr *domain.UnsupportedFormatError
		sizeErr   *http.MaxBytesError
	)
	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &sizeErr):
		status = http.StatusRequestEntityTooLarge
	case errors.As(err, &ingestErr),
		errors.As(err, &formatErr),
		errors.Is(err, domain.ErrColumnNotFound),
		errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNoRecipients),
		errors.Is(err, segment.ErrInvalidK):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNoDataset):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrUnavailable):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, insight.ErrUnknownAction),
		errors.Is(err, domain.ErrObjectNotFound),
		errors.Is(err, domain.ErrNoObjectStore):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), op+" error", slog.Any("error", err))
		http.Error(w, "internal error", status)
		return
	}
	h.logger.DebugContext(r.Context(), op+" rejected", slog.Int("status", status), slog.Any("error", err))
	http.Error(w, err.Error(), status)
}
