package handler

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/vaultpass/vaultpass-cli/internal/middleware"
	"github.com/vaultpass/vaultpass-cli/internal/model"
	"github.com/vaultpass/vaultpass-cli/internal/service"
)

// RecordHandler handles HTTP requests for stored passwords.
type RecordHandler struct {
	passwords *service.PasswordService
	settings  *service.SettingsService
}

// NewRecordHandler creates a new RecordHandler.
func NewRecordHandler(passwords *service.PasswordService, settings *service.SettingsService) *RecordHandler {
	return &RecordHandler{passwords: passwords, settings: settings}
}

// HandleListRecords handles GET /api/v1/records requests.
func (h *RecordHandler) HandleListRecords(w http.ResponseWriter, r *http.Request) {
	subject, _ := middleware.SubjectFromContext(r.Context())
	slog.Debug("listing records", "subject", subject)

	records, err := h.passwords.List()
	if err != nil {
		slog.Error("list records failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// HandleGetRecord handles GET /api/v1/records/{label} requests.
func (h *RecordHandler) HandleGetRecord(w http.ResponseWriter, r *http.Request) {
	label, ok := labelParam(w, r)
	if !ok {
		return
	}

	rec, found, err := h.passwords.Find(label)
	if err != nil {
		if service.IsInvalidInput(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		slog.Error("find record failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	if !found {
		writeJSON(w, http.StatusNotFound, errorResponse("record not found"))
		return
	}

	writeJSON(w, http.StatusOK, rec)
}

// HandlePutRecord handles PUT /api/v1/records/{label} requests.
func (h *RecordHandler) HandlePutRecord(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	policy, err := service.ApplyRequest(h.settings.Policy(), req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	label, ok := labelParam(w, r)
	if !ok {
		return
	}

	resp, err := h.passwords.GenerateWith(label, policy)
	if err != nil {
		if service.IsInvalidInput(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	subject, _ := middleware.SubjectFromContext(r.Context())
	slog.Info("record stored via api", "subject", subject, "label", resp.Label)
	writeJSON(w, http.StatusOK, resp)
}

// labelParam returns the {label} path segment decoded exactly once. chi
// matches on the decoded path unless the request carries a distinct RawPath,
// in which case the segment is still escaped.
func labelParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	label := chi.URLParam(r, "label")
	if r.URL.RawPath == "" {
		return label, true
	}

	label, err := url.PathUnescape(label)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid label"))
		return "", false
	}
	return label, true
}

// SettingsHandler handles HTTP requests for the generation policy.
type SettingsHandler struct {
	settings *service.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// HandleGetSettings handles GET /api/v1/settings requests.
func (h *SettingsHandler) HandleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.settings.Policy())
}

// HandlePutSettings handles PUT /api/v1/settings requests.
func (h *SettingsHandler) HandlePutSettings(w http.ResponseWriter, r *http.Request) {
	policy := h.settings.Policy()
	if !decodeOptionalJSON(w, r, &policy) {
		return
	}

	updated, err := h.settings.Update(policy)
	if err != nil {
		if service.IsInvalidInput(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, updated)
}
