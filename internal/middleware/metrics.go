package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/lwandle/moneycircles/internal/metrics"
)

// Metrics records request counts and latency. Labels use the mux route
// pattern rather than the raw path so circle IDs don't explode cardinality.
func Metrics(mux *http.ServeMux) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			_, pattern := mux.Handler(r)
			if pattern == "" {
				pattern = "unmatched"
			}
			metrics.RequestsTotal.WithLabelValues(r.Method, pattern, fmt.Sprint(rec.status)).Inc()
			metrics.RequestDuration.WithLabelValues(r.Method, pattern).Observe(time.Since(start).Seconds())
		})
	}
}
