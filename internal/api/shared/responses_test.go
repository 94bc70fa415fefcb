package shared

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	RespondWithJSON(recorder, req, http.StatusCreated, map[string]string{"hello": "world"})

	assert.Equal(t, http.StatusCreated, recorder.Code)
	assert.Equal(t, "application/json", recorder.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "world", body["hello"])
}

func TestRespondWithJSONNilBody(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/test", nil)

	RespondWithJSON(recorder, req, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, recorder.Body.String())
}

func TestRespondWithErrorIncludesTraceID(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(SetTraceID(req.Context()))

	RespondWithError(recorder, req, http.StatusNotFound, "Task not found")

	assert.Equal(t, http.StatusNotFound, recorder.Code)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "Task not found", body.Error)
	assert.NotEmpty(t, body.TraceID)
	assert.Len(t, body.TraceID, TraceIDLength*2, "trace ID should be hex-encoded")
}

func TestRespondWithErrorAndLogSanitizesResponse(t *testing.T) {
	t.Parallel()

	recorder := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)

	internalErr := errors.New("dial postgres://user:secret@db:5432/app failed")
	RespondWithErrorAndLog(recorder, req, http.StatusInternalServerError, "Something went wrong", internalErr)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
	assert.Equal(t, "Something went wrong", body.Error)
	assert.NotContains(t, recorder.Body.String(), "secret")
}

func TestTraceIDRoundTrip(t *testing.T) {
	t.Parallel()

	ctx := SetTraceID(context.Background())
	traceID := GetTraceID(ctx)
	assert.NotEmpty(t, traceID)
	assert.Len(t, traceID, TraceIDLength*2)

	// Distinct contexts get distinct IDs.
	other := GetTraceID(SetTraceID(context.Background()))
	assert.NotEqual(t, traceID, other)

	assert.Empty(t, GetTraceID(context.Background()))
}
