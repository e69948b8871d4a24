// Package rpc implements a minimal JSON-RPC tool dispatcher over a
// line-oriented byte stream: one request per line in, one response per line
// out. It is the dependency-free alternative to the MCP server for callers
// that just want the two event tools.
package rpc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/radutopala/eventscout/internal/tools"
)

const protocolVersion = "2.0"

// JSON-RPC error codes.
const (
	codeMethodNotFound = -32601
	codeInternalError  = -32603
)

// Request is the incoming envelope. ID is kept raw so it is echoed back
// verbatim, including when absent.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  Params          `json:"params"`
}

// Params carries the tools/call arguments.
type Params struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

// Response is the outgoing envelope. ID is always present: requests without
// one are answered with "id": null.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *Error          `json:"error,omitempty"`
}

// Error is a structured per-request failure.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Dispatcher routes requests to the tool registry.
type Dispatcher struct {
	registry *tools.Registry
	logger   *slog.Logger
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *tools.Registry, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, logger: logger}
}

// Handle dispatches one request and always produces a response; failures
// become structured error objects, never panics or dropped requests.
func (d *Dispatcher) Handle(ctx context.Context, req Request) Response {
	resp := Response{JSONRPC: protocolVersion, ID: req.ID}

	switch req.Method {
	case "tools/list":
		resp.Result = map[string]any{"tools": d.registry.List()}

	case "tools/call":
		text, err := d.registry.Call(ctx, req.Params.Name, req.Params.Arguments)
		if err != nil {
			resp.Error = &Error{Code: codeInternalError, Message: err.Error()}
			break
		}
		resp.Result = map[string]any{
			"content": []textContent{{Type: "text", Text: text}},
		}

	default:
		resp.Error = &Error{
			Code:    codeMethodNotFound,
			Message: fmt.Sprintf("unknown method: %s", req.Method),
		}
	}

	return resp
}

// Serve reads newline-delimited requests until EOF or ctx cancellation.
// Lines that are not valid JSON are skipped without a response; per-request
// failures never terminate the loop.
func (d *Dispatcher) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			d.logger.Warn("Skipping malformed request line", "error", err)
			continue
		}

		resp := d.Handle(ctx, req)
		encoded, err := json.Marshal(resp)
		if err != nil {
			d.logger.Error("Failed to encode response", "error", err)
			continue
		}
		if _, err := fmt.Fprintf(w, "%s\n", encoded); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	return scanner.Err()
}
