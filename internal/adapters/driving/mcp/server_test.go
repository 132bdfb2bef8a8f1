package mcp

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	t.Run("nil property service returns error", func(t *testing.T) {
		server, err := NewServer(&Ports{})
		require.Error(t, err)
		assert.Nil(t, server)
		assert.ErrorIs(t, err, ErrMissingPropertyService)
	})

	t.Run("valid ports creates server", func(t *testing.T) {
		server, err := NewServer(&Ports{Property: &mockPropertyService{}})
		require.NoError(t, err)
		assert.NotNil(t, server)
	})

	t.Run("clock option", func(t *testing.T) {
		fixed := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
		server, err := NewServer(&Ports{Property: &mockPropertyService{}}, WithClock(func() time.Time { return fixed }))
		require.NoError(t, err)
		assert.Equal(t, fixed, server.now())
	})

	t.Run("nil clock keeps default", func(t *testing.T) {
		server, err := NewServer(&Ports{Property: &mockPropertyService{}}, WithClock(nil))
		require.NoError(t, err)
		assert.NotNil(t, server.now)
	})
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingPropertyService)
	assert.NoError(t, (&Ports{Property: &mockPropertyService{}}).Validate())
}

func TestServer_Handler_Healthz(t *testing.T) {
	server, err := NewServer(&Ports{Property: &mockPropertyService{}})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_Handler_UnknownPath(t *testing.T) {
	server, err := NewServer(&Ports{Property: &mockPropertyService{}})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/other", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_Serve_StopsOnCancel(t *testing.T) {
	server, err := NewServer(&Ports{Property: &mockPropertyService{}})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_RunHTTP_BadAddress(t *testing.T) {
	server, err := NewServer(&Ports{Property: &mockPropertyService{}})
	require.NoError(t, err)

	err = server.RunHTTP(context.Background(), "not-an-address")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listen on not-an-address")
}
