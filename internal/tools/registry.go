package tools

import (
	"context"
	"fmt"
	"log/slog"
)

// Handler executes a tool call and returns its text payload.
type Handler func(ctx context.Context, args map[string]any) (string, error)

// Tool is a named, schema-described operation.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handler     Handler
}

// Descriptor is the wire form of a tool for listing.
type Descriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

// Registry manages the available tools and routes calls to them.
type Registry struct {
	order  []string
	tools  map[string]*Tool
	logger *slog.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		tools:  make(map[string]*Tool),
		logger: logger,
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool *Tool) error {
	if tool.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	if tool.Handler == nil {
		return fmt.Errorf("tool handler cannot be nil")
	}
	if _, exists := r.tools[tool.Name]; exists {
		return fmt.Errorf("tool %s already registered", tool.Name)
	}

	r.order = append(r.order, tool.Name)
	r.tools[tool.Name] = tool
	r.logger.Info("Registered tool", "name", tool.Name)
	return nil
}

// List returns descriptors for all tools in registration order.
func (r *Registry) List() []Descriptor {
	descriptors := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		tool := r.tools[name]
		descriptors = append(descriptors, Descriptor{
			Name:        tool.Name,
			Description: tool.Description,
			InputSchema: tool.InputSchema,
		})
	}
	return descriptors
}

// Call runs the named tool with the given arguments.
func (r *Registry) Call(ctx context.Context, name string, args map[string]any) (string, error) {
	tool, exists := r.tools[name]
	if !exists {
		return "", fmt.Errorf("unknown tool: %s", name)
	}

	r.logger.InfoContext(ctx, "Executing tool", "name", name)
	result, err := tool.Handler(ctx, args)
	if err != nil {
		r.logger.ErrorContext(ctx, "Tool execution failed", "name", name, "error", err)
		return "", err
	}
	return result, nil
}
