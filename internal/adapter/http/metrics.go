package httpadapter

import (
	"net/http"
)

func (h *Handler) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := h.svc.Portfolio(r.Context())
	if err != nil {
		h.writeError(w, r, "portfolio", err)
		return
	}
	h.writeJSON(w, http.StatusOK, p)
}

// handleTop ranks campaigns by ?metric= (default roi) and returns ?n= rows.
func (h *Handler) handleTop(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "n", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	top, err := h.svc.TopCampaigns(r.Context(), r.URL.Query().Get("metric"), n)
	if err != nil {
		h.writeError(w, r, "top campaigns", err)
		return
	}
	h.writeJSON(w, http.StatusOK, top)
}

func (h *Handler) handleChannels(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Channels(r.Context())
	if err != nil {
		h.writeError(w, r, "channels", err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleTimeSeries(w http.ResponseWriter, r *http.Request) {
	ts, err := h.svc.TimeSeries(r.Context())
	if err != nil {
		h.writeError(w, r, "time series", err)
		return
	}
	h.writeJSON(w, http.StatusOK, ts)
}

func (h *Handler) handleROI(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.ROI(r.Context())
	if err != nil {
		h.writeError(w, r, "roi", err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

func (h *Handler) handleColumns(w http.ResponseWriter, r *http.Request) {
	a, err := h.svc.ColumnAnalysis(r.Context())
	if err != nil {
		h.writeError(w, r, "columns", err)
		return
	}
	h.writeJSON(w, http.StatusOK, a)
}

func (h *Handler) handleSegment(w http.ResponseWriter, r *http.Request) {
	k, err := intParam(r, "k", 0)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	res, err := h.svc.Segment(r.Context(), k)
	if err != nil {
		h.writeError(w, r, "segment", err)
		return
	}
	h.writeJSON(w, http.StatusOK, res)
}
