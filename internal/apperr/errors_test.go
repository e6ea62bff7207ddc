package apperr

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:       http.StatusBadRequest,
		KindMalformed:        http.StatusBadRequest,
		KindUpstreamRejected: http.StatusUnprocessableEntity,
		KindInternal:         http.StatusInternalServerError,
		Kind("unknown"):      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, (&Error{Kind: kind}).HTTPStatus(), "kind %s", kind)
	}
}

func TestFromKeepsStructuredErrors(t *testing.T) {
	orig := Validation("No text provided", "")
	wrapped := fmt.Errorf("handler: %w", orig)

	assert.Same(t, orig, From(wrapped))
	assert.Nil(t, From(nil))
}

func TestFromWrapsPlainErrors(t *testing.T) {
	cause := errors.New("connection refused")
	got := From(cause)

	require.NotNil(t, got)
	assert.Equal(t, KindInternal, got.Kind)
	assert.Equal(t, "connection refused", got.Message)
	assert.ErrorIs(t, got, cause)
}

func TestWriteMalformed(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)

	Writer{}.Write(rr, req, Malformed(errors.New("unexpected EOF")))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.JSONEq(t, `{"error":"Invalid JSON format"}`, rr.Body.String())
}

func TestWriteInternalHidesDescriptionWhenConfigured(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)

	exposed := httptest.NewRecorder()
	Writer{ExposeInternal: true}.Write(exposed, req, errors.New("dial tcp: timeout"))
	assert.Equal(t, http.StatusInternalServerError, exposed.Code)
	assert.JSONEq(t, `{"error":"dial tcp: timeout"}`, exposed.Body.String())

	hidden := httptest.NewRecorder()
	Writer{ExposeInternal: false}.Write(hidden, req, errors.New("dial tcp: timeout"))
	assert.Equal(t, http.StatusInternalServerError, hidden.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, hidden.Body.String())
}

func TestWriteIncludesSuggestion(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/analyze", nil)

	Writer{}.Write(rr, req, UpstreamRejected("too short", "write more", nil))

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "too short", body["error"])
	assert.Equal(t, "write more", body["suggestion"])
}

func captureDefaultLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestWriteLogsInternalErrors(t *testing.T) {
	logs := captureDefaultLogger(t)

	rr := httptest.NewRecorder()
	Writer{}.Write(rr, httptest.NewRequest(http.MethodPost, "/analyze", nil), errors.New("dial tcp: timeout"))

	assert.Contains(t, logs.String(), "request failed")
}

func TestWriteSkipsLogForRecoveredPanics(t *testing.T) {
	logs := captureDefaultLogger(t)

	rr := httptest.NewRecorder()
	Writer{ExposeInternal: true}.Write(rr, httptest.NewRequest(http.MethodPost, "/analyze", nil), Recovered("boom"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"boom"}`, rr.Body.String())
	assert.Empty(t, logs.String())
}
