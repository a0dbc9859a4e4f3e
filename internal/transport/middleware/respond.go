// Package middleware holds the HTTP middleware mounted on the chi router.
package middleware

import (
	"encoding/json"
	"net/http"
)

// Middleware wraps an http.Handler. Values are passed to chi's Use as-is.
type Middleware func(http.Handler) http.Handler

// writeError writes the same JSON error envelope the REST handlers use.
func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{ //nolint:errcheck
		"code":    code,
		"message": message,
	})
}
