package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{
			URI: uri,
		},
	}
}

func TestExtractPropertyID(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"valid URI", "propdesk://properties/abc-123", "abc-123"},
		{"list URI", "propdesk://properties", ""},
		{"trailing slash", "propdesk://properties/", ""},
		{"nested path", "propdesk://properties/abc/extra", ""},
		{"wrong scheme", "file://properties/abc", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractPropertyID(tt.uri))
		})
	}
}

func TestServer_handlePropertiesResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists properties as JSON", func(t *testing.T) {
		server := newTestServer(t, &mockPropertyService{properties: []domain.Property{sampleFlat()}})

		result, err := server.handlePropertiesResource(ctx, makeReadResourceRequest(propertiesURI))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)

		var got []PropertyOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "Skyline", got[0].Fields["project"])
	})

	t.Run("empty store yields empty array", func(t *testing.T) {
		server := newTestServer(t, &mockPropertyService{})

		result, err := server.handlePropertiesResource(ctx, makeReadResourceRequest(propertiesURI))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})

	t.Run("list failure", func(t *testing.T) {
		server := newTestServer(t, &mockPropertyService{err: errors.New("db closed")})

		_, err := server.handlePropertiesResource(ctx, makeReadResourceRequest(propertiesURI))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "listing properties")
	})
}

func TestServer_handlePropertyResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns property", func(t *testing.T) {
		p := sampleFlat()
		server := newTestServer(t, &mockPropertyService{property: &p})

		result, err := server.handlePropertyResource(ctx, makeReadResourceRequest("propdesk://properties/prop-1"))

		require.NoError(t, err)
		var got PropertyOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &got))
		assert.Equal(t, "prop-1", got.ID)
	})

	t.Run("malformed URI", func(t *testing.T) {
		server := newTestServer(t, &mockPropertyService{})

		_, err := server.handlePropertyResource(ctx, makeReadResourceRequest("propdesk://properties/"))

		assert.Error(t, err)
	})

	t.Run("unknown id", func(t *testing.T) {
		server := newTestServer(t, &mockPropertyService{err: domain.ErrNotFound})

		_, err := server.handlePropertyResource(ctx, makeReadResourceRequest("propdesk://properties/nope"))

		assert.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrNotFound))
	})

	t.Run("store failure", func(t *testing.T) {
		server := newTestServer(t, &mockPropertyService{err: errors.New("timeout")})

		_, err := server.handlePropertyResource(ctx, makeReadResourceRequest("propdesk://properties/x"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "getting property")
	})
}
