package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/vaultpass/vaultpass-cli/internal/crypto"
)

type contextKey string

const subjectKey contextKey = "subject"

var (
	errMissingAuth = errors.New("missing authorization header")
	errAuthFormat  = errors.New("invalid authorization format")
)

// BearerAuth guards the owner routes of the local API. Requests need an
// "Authorization: Bearer <token>" header signed with secret. While no secret
// is configured the routes answer 503.
func BearerAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				writeJSONError(w, http.StatusServiceUnavailable, "api secret not configured")
				return
			}

			token, err := bearerToken(r.Header.Get("Authorization"))
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, err.Error())
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), subjectKey, claims.Subject)))
		})
	}
}

// bearerToken extracts the token from an Authorization header value.
// The scheme is matched case-insensitively.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingAuth
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", errAuthFormat
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", errAuthFormat
	}
	return token, nil
}

// SubjectFromContext returns the token subject stored by BearerAuth.
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(subjectKey).(string)
	return sub, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
