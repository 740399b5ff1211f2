package rest

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

func ping(err error) func(context.Context) error {
	return func(context.Context) error { return err }
}

func serveHealth(t *testing.T, fn http.HandlerFunc) (int, HealthResponse) {
	t.Helper()

	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	var resp HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec.Code, resp
}

func TestLive_Always200(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1", map[string]func(context.Context) error{"database": ping(errors.New("down"))})

	code, resp := serveHealth(t, h.Live)

	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", resp.Status)
	assert.False(t, resp.Timestamp.IsZero())
}

func TestReady(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		checks     map[string]func(context.Context) error
		wantCode   int
		wantStatus string
	}{
		{"no checks", nil, http.StatusOK, "ok"},
		{"all up", map[string]func(context.Context) error{"database": ping(nil), "redis": ping(nil)}, http.StatusOK, "ok"},
		{"redis down", map[string]func(context.Context) error{"database": ping(nil), "redis": ping(errors.New("refused"))}, http.StatusServiceUnavailable, "down"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, resp := serveHealth(t, NewHealthHandler("v1", tt.checks).Ready)

			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Empty(t, resp.Components)
		})
	}
}

func TestHealth_Components(t *testing.T) {
	t.Parallel()

	h := NewHealthHandler("v1.2.3", map[string]func(context.Context) error{
		"database": ping(nil),
		"redis":    ping(errors.New("refused")),
	})

	code, resp := serveHealth(t, h.Health)

	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "down", resp.Status)
	assert.Equal(t, "v1.2.3", resp.Version)
	require.Len(t, resp.Components, 2)
	assert.Equal(t, "ok", resp.Components["database"].Status)
	assert.NotEmpty(t, resp.Components["database"].Latency)
	assert.Equal(t, CompStatus{Status: "down"}, resp.Components["redis"])
}

func TestHealth_PingHasDeadline(t *testing.T) {
	t.Parallel()

	var hadDeadline bool
	h := NewHealthHandler("v1", map[string]func(context.Context) error{
		"database": func(ctx context.Context) error {
			_, hadDeadline = ctx.Deadline()
			return nil
		},
	})

	code, _ := serveHealth(t, h.Health)

	assert.Equal(t, http.StatusOK, code)
	assert.True(t, hadDeadline)
}
