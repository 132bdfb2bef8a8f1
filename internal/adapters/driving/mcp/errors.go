// Package mcp provides an MCP (Model Context Protocol) server adapter for propdesk.
// It gives AI assistants read-only access to the stored property listings.
package mcp

import "errors"

// ErrMissingPropertyService is returned when the property service is not provided.
var ErrMissingPropertyService = errors.New("mcp: property service is required")
