// Package mcpserver exposes the event tools to MCP clients over the official
// go-sdk, for tool-calling agents that speak the full protocol.
package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/radutopala/eventscout/internal/search"
	"github.com/radutopala/eventscout/internal/tools"
)

// Server wraps an MCP server around the search engine and index refresher.
type Server struct {
	server    *mcp.Server
	engine    *search.Engine
	refresher *search.Refresher
	logger    *slog.Logger
}

// New creates the MCP server and registers the event tools.
func New(name, version string, engine *search.Engine, refresher *search.Refresher, logger *slog.Logger) *Server {
	s := &Server{
		engine:    engine,
		refresher: refresher,
		logger:    logger,
	}

	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    name,
			Version: version,
		},
		nil,
	)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_events",
		Description: "Search for events using natural language query with filters",
	}, s.handleSearchEvents)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_all_events",
		Description: "Get all available events without filtering",
	}, s.handleGetAllEvents)

	s.server = server
	return s
}

// Run starts the MCP server with the given transport.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.server.Run(ctx, transport)
}

// SearchEventsInput defines the input for search_events
type SearchEventsInput struct {
	Query  string `json:"query" jsonschema:"Natural language query for events"`
	UserID string `json:"user_id,omitempty" jsonschema:"User identifier. Defaults to 'default'."`
}

func (s *Server) handleSearchEvents(ctx context.Context, req *mcp.CallToolRequest, input SearchEventsInput) (*mcp.CallToolResult, any, error) {
	results, err := s.engine.Search(ctx, input.Query, input.UserID)
	if err != nil {
		s.logger.Error("search_events failed", "query", input.Query, "error", err)
		return errorResult(err), nil, nil
	}

	capped := min(len(results), tools.SearchResultCap)
	summaries := make([]tools.EventSummary, 0, capped)
	for _, metadata := range results[:capped] {
		summaries = append(summaries, tools.SummaryFromMetadata(metadata))
	}

	payload := tools.SearchPayload{
		Query:        input.Query,
		ResultsCount: len(results),
		Events:       summaries,
	}
	return textResult(payload), nil, nil
}

// GetAllEventsInput defines the input for get_all_events
type GetAllEventsInput struct{}

func (s *Server) handleGetAllEvents(ctx context.Context, req *mcp.CallToolRequest, input GetAllEventsInput) (*mcp.CallToolResult, any, error) {
	catalog, err := s.refresher.Events(ctx)
	if err != nil {
		s.logger.Error("get_all_events failed", "error", err)
		return errorResult(err), nil, nil
	}

	payload := tools.CatalogPayload{
		TotalEvents: len(catalog),
		Events:      catalog[:min(len(catalog), tools.CatalogCap)],
	}
	return textResult(payload), nil, nil
}

func textResult(payload any) *mcp.CallToolResult {
	encoded, _ := json.MarshalIndent(payload, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(encoded)},
		},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: err.Error()},
		},
	}
}
