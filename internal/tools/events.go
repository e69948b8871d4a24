package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/radutopala/eventscout/internal/events"
	"github.com/radutopala/eventscout/internal/search"
	"github.com/radutopala/eventscout/internal/vectorstore"
)

// Page caps for tool payloads.
const (
	SearchResultCap = 10
	CatalogCap      = 20
)

// EventSummary is the reduced event shape returned by search_events.
type EventSummary struct {
	Title         string `json:"title"`
	Category      string `json:"category"`
	Location      string `json:"location"`
	StartDateTime string `json:"startDateTime"`
	EndDateTime   string `json:"endDateTime"`
	Price         string `json:"price"`
	IsFree        bool   `json:"isFree"`
	Organizer     string `json:"organizer"`
	Tags          string `json:"tags"`
}

// SummaryFromMetadata projects stored metadata into an EventSummary.
func SummaryFromMetadata(m vectorstore.Metadata) EventSummary {
	str := func(key string) string {
		if v, ok := m[key].(string); ok {
			return v
		}
		return ""
	}
	isFree, _ := m["isFree"].(bool)

	return EventSummary{
		Title:         str("title"),
		Category:      str("category"),
		Location:      str("location"),
		StartDateTime: str("startDateTime"),
		EndDateTime:   str("endDateTime"),
		Price:         str("price"),
		IsFree:        isFree,
		Organizer:     str("organizer"),
		Tags:          str("tags"),
	}
}

// SearchPayload is the search_events tool result.
type SearchPayload struct {
	Query        string         `json:"query"`
	ResultsCount int            `json:"results_count"`
	Events       []EventSummary `json:"events"`
}

// CatalogPayload is the get_all_events tool result.
type CatalogPayload struct {
	TotalEvents int            `json:"total_events"`
	Events      []events.Event `json:"events"`
}

// NewEventRegistry builds the registry exposing the event tools.
func NewEventRegistry(engine *search.Engine, refresher *search.Refresher, logger *slog.Logger) (*Registry, error) {
	registry := NewRegistry(logger)

	searchTool := &Tool{
		Name:        "search_events",
		Description: "Search for events using natural language query with filters",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "Natural language query for events",
				},
				"user_id": map[string]any{
					"type":        "string",
					"description": "User identifier",
					"default":     search.DefaultScope,
				},
			},
			"required": []any{"query"},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			query, _ := args["query"].(string)
			scope, _ := args["user_id"].(string)

			results, err := engine.Search(ctx, query, scope)
			if err != nil {
				return "", fmt.Errorf("search events: %w", err)
			}

			summaries := make([]EventSummary, 0, min(len(results), SearchResultCap))
			for _, metadata := range results[:min(len(results), SearchResultCap)] {
				summaries = append(summaries, SummaryFromMetadata(metadata))
			}

			payload := SearchPayload{
				Query:        query,
				ResultsCount: len(results),
				Events:       summaries,
			}
			return encodePayload(payload)
		},
	}

	catalogTool := &Tool{
		Name:        "get_all_events",
		Description: "Get all available events without filtering",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			catalog, err := refresher.Events(ctx)
			if err != nil {
				return "", fmt.Errorf("get events: %w", err)
			}

			payload := CatalogPayload{
				TotalEvents: len(catalog),
				Events:      catalog[:min(len(catalog), CatalogCap)],
			}
			return encodePayload(payload)
		},
	}

	for _, tool := range []*Tool{searchTool, catalogTool} {
		if err := registry.Register(tool); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func encodePayload(payload any) (string, error) {
	encoded, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode payload: %w", err)
	}
	return string(encoded), nil
}
