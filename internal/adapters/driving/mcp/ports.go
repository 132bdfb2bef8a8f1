package mcp

import (
	"github.com/custodia-labs/propdesk/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Property provides listing, lookup, search and stats.
	Property driving.PropertyService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Property == nil {
		return ErrMissingPropertyService
	}
	return nil
}
