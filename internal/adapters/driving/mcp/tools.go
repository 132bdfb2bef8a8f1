package mcp

import (
	"context"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/propdesk/internal/core/domain"
)

const defaultSearchLimit = 20

// SearchInput is the input schema for the search_properties tool.
type SearchInput struct {
	Query         string `json:"query,omitempty" jsonschema:"free text matched against sector/phase, CP name, contact number, CP firm and project"`
	PropertyType  string `json:"property_type,omitempty" jsonschema:"one of Kothi, Flat, Commercial, Plot"`
	SectorPhase   string `json:"sector_phase,omitempty" jsonschema:"exact sector or phase"`
	CPName        string `json:"cp_name,omitempty" jsonschema:"exact channel partner name"`
	Project       string `json:"project,omitempty" jsonschema:"exact project name (Flat only)"`
	ContactNumber string `json:"contact_number,omitempty" jsonschema:"exact contact number"`
	MinDemand     string `json:"min_demand,omitempty" jsonschema:"lower demand bound, e.g. 40 lakh"`
	MaxDemand     string `json:"max_demand,omitempty" jsonschema:"upper demand bound, e.g. 1.5 crore"`
	Limit         int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

// SearchOutput is the output schema for the search_properties tool.
type SearchOutput struct {
	Properties []PropertyOutput `json:"properties"`
	Count      int              `json:"count"`
	Total      int              `json:"total"`
}

// PropertyOutput is a stored property in tool and resource output.
type PropertyOutput struct {
	ID           string            `json:"id"`
	PropertyType string            `json:"property_type"`
	Fields       map[string]string `json:"fields"`
	CreatedAt    string            `json:"created_at"`
	UpdatedAt    string            `json:"updated_at"`
}

// GetInput is the input schema for the get_property tool.
type GetInput struct {
	ID string `json:"id" jsonschema:"the property ID"`
}

// StatsInput is the input schema for the property_stats tool.
type StatsInput struct{}

// StatsOutput is the output schema for the property_stats tool.
type StatsOutput struct {
	Total  int            `json:"total"`
	ByType map[string]int `json:"by_type"`
	Recent int            `json:"recent"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_properties",
		Description: "Search stored property listings by text, type, location, contact or demand range",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_property",
		Description: "Get a single property listing by ID",
	}, s.handleGet)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "property_stats",
		Description: "Count stored properties in total, per type, and dated within the last seven days",
	}, s.handleStats)
}

func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	filters := domain.SearchFilters{
		Term:          input.Query,
		SectorPhase:   input.SectorPhase,
		CPName:        input.CPName,
		Project:       input.Project,
		ContactNumber: input.ContactNumber,
		MinDemand:     input.MinDemand,
		MaxDemand:     input.MaxDemand,
	}
	if input.PropertyType != "" {
		pt, _ := domain.ParsePropertyType(input.PropertyType)
		filters.PropertyType = pt
	}

	results, err := s.ports.Property.Search(ctx, filters)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	output := SearchOutput{Total: len(results)}
	if len(results) > limit {
		results = results[:limit]
	}
	output.Properties = make([]PropertyOutput, len(results))
	for i := range results {
		output.Properties[i] = toOutput(&results[i])
	}
	output.Count = len(output.Properties)

	return nil, output, nil
}

func (s *Server) handleGet(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetInput,
) (*mcp.CallToolResult, PropertyOutput, error) {
	p, err := s.ports.Property.Get(ctx, input.ID)
	if err != nil {
		return nil, PropertyOutput{}, err
	}
	return nil, toOutput(p), nil
}

func (s *Server) handleStats(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ StatsInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	stats, err := s.ports.Property.Stats(ctx, s.now())
	if err != nil {
		return nil, StatsOutput{}, err
	}

	output := StatsOutput{
		Total:  stats.Total,
		ByType: make(map[string]int, len(stats.ByType)),
		Recent: stats.Recent,
	}
	for pt, n := range stats.ByType {
		output.ByType[pt.String()] = n
	}
	return nil, output, nil
}

func toOutput(p *domain.Property) PropertyOutput {
	fields := p.Fields()
	out := PropertyOutput{
		ID:           p.ID,
		PropertyType: p.Type().String(),
		Fields:       make(map[string]string, len(fields)),
		CreatedAt:    p.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:    p.UpdatedAt.UTC().Format(time.RFC3339),
	}
	for k, v := range fields {
		out.Fields[k.String()] = v
	}
	return out
}
