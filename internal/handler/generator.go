package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/vaultpass/vaultpass-cli/internal/model"
	"github.com/vaultpass/vaultpass-cli/internal/service"
)

const maxBodyBytes = 1 << 20 // 1MB

// GeneratorHandler handles HTTP requests for password generation.
type GeneratorHandler struct {
	generator *service.GeneratorService
	settings  *service.SettingsService
}

// NewGeneratorHandler creates a new GeneratorHandler.
func NewGeneratorHandler(gen *service.GeneratorService, settings *service.SettingsService) *GeneratorHandler {
	return &GeneratorHandler{generator: gen, settings: settings}
}

// HandleGenerate handles POST /api/v1/generate requests.
func (h *GeneratorHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}

	policy, err := service.ApplyRequest(h.settings.Policy(), req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		return
	}

	resp, err := h.generator.Generate(policy)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// decodeOptionalJSON decodes the request body into v. An empty body leaves v
// untouched. It writes an error response and returns false on bad input.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Body == nil {
		return true
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return true
		}
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse("request body too large"))
			return false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}
