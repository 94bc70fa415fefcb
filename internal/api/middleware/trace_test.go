package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/taskdeck/taskdeck-api/internal/api/middleware"
	"github.com/taskdeck/taskdeck-api/internal/api/shared"
)

func TestTraceMiddleware(t *testing.T) {
	t.Parallel()

	var traceInContext string
	handler := middleware.TraceMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceInContext = shared.GetTraceID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Len(t, traceInContext, shared.TraceIDLength*2, "trace ID is hex-encoded")
	assert.Equal(t, traceInContext, rr.Header().Get("X-Trace-ID"),
		"response header should carry the same trace ID the handler saw")
}
