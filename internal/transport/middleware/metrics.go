package middleware

import (
	"net/http"
	"time"

	"github.com/heartmarshall/caseledger-backend/internal/metrics"
)

// Metrics records request count and latency per matched route.
func Metrics(m *metrics.Metrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			m.ObserveHTTP(r.Method, routePattern(r), sw.status, time.Since(start))
		})
	}
}
