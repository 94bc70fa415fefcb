package middleware

import (
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
)

// TraceMiddleware assigns each request a trace ID and stores it in the
// request context so handlers and error responses can correlate log
// entries with client-visible failures.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		w.Header().Set("X-Trace-ID", shared.GetTraceID(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
