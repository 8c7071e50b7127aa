package router

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// withAuth requires the configured API token on every /api/ path not listed
// in public. An empty token disables the check.
func withAuth(token string, public map[string]bool, next http.Handler) http.Handler {
	token = strings.TrimSpace(token)
	if token == "" {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/api/") || public[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		provided := tokenFromRequest(r)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) == 1 {
			next.ServeHTTP(w, r)
			return
		}

		message := "Invalid token."
		if provided == "" {
			message = "Authentication credentials were not provided."
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "` + message + `"}`))
	})
}

// tokenFromRequest accepts both "Bearer <token>" and "Token <token>" schemes.
func tokenFromRequest(r *http.Request) string {
	scheme, credentials, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	if !ok {
		return ""
	}
	if !strings.EqualFold(scheme, "Bearer") && !strings.EqualFold(scheme, "Token") {
		return ""
	}
	return strings.TrimSpace(credentials)
}
