package httpadapter

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"campaign-insights/internal/core/ingest"

	"github.com/go-playground/validator/v10"
)

type objectRequest struct {
	Bucket string `json:"bucket" validate:"required"`
	Key    string `json:"key" validate:"required"`
	Format string `json:"format,omitempty"`
}

var requestValidator = validator.New()

// handleUpload replaces the current dataset with a CSV upload. The CSV is
// either the raw request body or the "file" part of a multipart form.
func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	var (
		body   io.Reader = r.Body
		source           = "upload"
	)
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, "missing 'file' form field", http.StatusBadRequest)
			return
		}
		defer file.Close()
		body, source = file, header.Filename
	} else if name := r.URL.Query().Get("name"); name != "" {
		source = name
	}

	summary, err := h.svc.LoadCSV(r.Context(), body, source)
	if err != nil {
		h.writeError(w, r, "upload", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, summary)
}

func (h *Handler) handleSample(w http.ResponseWriter, r *http.Request) {
	rows, err := intParam(r, "rows", ingest.DefaultSampleRows)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	seed, err := intParam(r, "seed", ingest.DefaultSampleSeed)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summary, err := h.svc.LoadSample(r.Context(), rows, int64(seed))
	if err != nil {
		h.writeError(w, r, "sample", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, summary)
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeObjectRequest(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.ImportObject(r.Context(), req.Bucket, req.Key)
	if err != nil {
		h.writeError(w, r, "import", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, summary)
}

func (h *Handler) handleValidation(w http.ResponseWriter, r *http.Request) {
	report, err := h.svc.Validate(r.Context())
	if err != nil {
		h.writeError(w, r, "validation", err)
		return
	}
	h.writeJSON(w, http.StatusOK, report)
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = ingest.FormatCSV
	}
	file, err := h.svc.Export(r.Context(), format)
	if err != nil {
		h.writeError(w, r, "export", err)
		return
	}
	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Data)))
	_, _ = w.Write(file.Data)
}

func (h *Handler) handleExportObject(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeObjectRequest(w, r)
	if !ok {
		return
	}
	if req.Format == "" {
		req.Format = ingest.FormatCSV
	}
	if err := h.svc.ExportObject(r.Context(), req.Bucket, req.Key, req.Format); err != nil {
		h.writeError(w, r, "export object", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeObjectRequest(w http.ResponseWriter, r *http.Request) (objectRequest, bool) {
	var req objectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return req, false
	}
	if err := requestValidator.Struct(req); err != nil {
		http.Error(w, "bucket and key are required", http.StatusBadRequest)
		return req, false
	}
	return req, true
}

// intParam reads an optional integer query parameter.
func intParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid '%s' parameter", name)
	}
	return v, nil
}
