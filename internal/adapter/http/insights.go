package httpadapter

import (
	"encoding/json"
	"net/http"

	"campaign-insights/internal/core/port"

	"github.com/go-chi/chi/v5"
)

type askRequest struct {
	Query string `json:"query"`
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	report, err := h.svc.Ask(r.Context(), req.Query)
	if err != nil {
		h.writeError(w, r, "ask", err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleQuickAction(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.QuickAction(r.Context(), chi.URLParam(r, "action"))
	if err != nil {
		h.writeError(w, r, "quick action", err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleSendEmail(w http.ResponseWriter, r *http.Request) {
	var msg port.EmailMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	res, err := h.svc.SendEmailCampaign(r.Context(), msg)
	if err != nil {
		h.writeError(w, r, "send email", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, res)
}

// handleEmailHistory returns the ledger, or 204 when nothing was sent yet.
func (h *Handler) handleEmailHistory(w http.ResponseWriter, r *http.Request) {
	entries, ok := h.svc.EmailHistory(r.Context())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	h.writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleEmailReport(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.svc.EmailReport(r.Context()))
}
