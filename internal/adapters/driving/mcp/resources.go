package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for propdesk resources.
	uriScheme = "propdesk://"

	propertiesURI = uriScheme + "properties"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         propertiesURI,
		Name:        "properties",
		Description: "All stored property listings, newest first",
		MIMEType:    "application/json",
	}, s.handlePropertiesResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: propertiesURI + "/{id}",
		Name:        "property",
		Description: "A single property listing",
		MIMEType:    "application/json",
	}, s.handlePropertyResource)
}

func (s *Server) handlePropertiesResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	properties, err := s.ports.Property.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}

	outputs := make([]PropertyOutput, len(properties))
	for i := range properties {
		outputs[i] = toOutput(&properties[i])
	}
	return jsonResource(req.Params.URI, outputs)
}

func (s *Server) handlePropertyResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractPropertyID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	p, err := s.ports.Property.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("getting property: %w", err)
	}
	return jsonResource(req.Params.URI, toOutput(p))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling resource: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPropertyID extracts the ID from a URI like propdesk://properties/{id}.
func extractPropertyID(uri string) string {
	const prefix = propertiesURI + "/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}
	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
