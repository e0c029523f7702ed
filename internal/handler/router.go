package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vaultpass/vaultpass-cli/internal/middleware"
	"github.com/vaultpass/vaultpass-cli/internal/service"
)

// Services are the dependencies of the HTTP API.
type Services struct {
	Generator *service.GeneratorService
	Passwords *service.PasswordService
	Settings  *service.SettingsService
}

// NewRouter builds the local HTTP API. Record and settings routes require a
// bearer token signed with secret.
func NewRouter(svc Services, secret string) http.Handler {
	genHandler := NewGeneratorHandler(svc.Generator, svc.Settings)
	recordHandler := NewRecordHandler(svc.Passwords, svc.Settings)
	settingsHandler := NewSettingsHandler(svc.Settings)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(5, 10))
		r.Post("/api/v1/generate", genHandler.HandleGenerate)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.BearerAuth(secret))
		r.Get("/api/v1/records", recordHandler.HandleListRecords)
		r.Get("/api/v1/records/{label}", recordHandler.HandleGetRecord)
		r.Put("/api/v1/records/{label}", recordHandler.HandlePutRecord)
		r.Get("/api/v1/settings", settingsHandler.HandleGetSettings)
		r.Put("/api/v1/settings", settingsHandler.HandlePutSettings)
	})

	return r
}
