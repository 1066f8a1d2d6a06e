package middleware

import (
	"net/http"
	"time"
)

type requestRecorder interface {
	RecordRequest(method, route string, status int, d time.Duration)
}

// Metrics records request counts and latency per route pattern. It must wrap
// the ServeMux directly: the mux sets r.Pattern on the request it receives,
// and the pattern is read back after the handler returns.
func Metrics(rec requestRecorder) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			rec.RecordRequest(r.Method, route, sw.status, time.Since(start))
		})
	}
}
