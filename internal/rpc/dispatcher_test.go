package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/radutopala/eventscout/internal/events"
	"github.com/radutopala/eventscout/internal/search"
	"github.com/radutopala/eventscout/internal/tools"
	"github.com/radutopala/eventscout/internal/vectorstore"
)

type DispatcherTestSuite struct {
	suite.Suite
	ctx        context.Context
	dispatcher *Dispatcher
}

func TestDispatcherTestSuite(t *testing.T) {
	suite.Run(t, new(DispatcherTestSuite))
}

func (s *DispatcherTestSuite) SetupTest() {
	s.ctx = context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	refresher := search.NewRefresher(search.RefresherConfig{
		Source: &events.StaticSource{Events: events.SampleEvents()},
		Store:  vectorstore.NewInMemoryStore(logger),
		Logger: logger,
	})
	engine := search.NewEngine(refresher, logger, nil)

	registry, err := tools.NewEventRegistry(engine, refresher, logger)
	require.NoError(s.T(), err)
	s.dispatcher = NewDispatcher(registry, logger)
}

// serve runs the dispatcher over the given input and returns one decoded
// response per output line.
func (s *DispatcherTestSuite) serve(input string) []map[string]any {
	var out bytes.Buffer
	require.NoError(s.T(), s.dispatcher.Serve(s.ctx, strings.NewReader(input), &out))

	var responses []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var resp map[string]any
		require.NoError(s.T(), json.Unmarshal([]byte(line), &resp))
		responses = append(responses, resp)
	}
	return responses
}

func (s *DispatcherTestSuite) TestToolsList() {
	responses := s.serve(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}` + "\n")
	require.Len(s.T(), responses, 1)

	resp := responses[0]
	require.Equal(s.T(), "2.0", resp["jsonrpc"])
	require.Equal(s.T(), float64(1), resp["id"])

	result := resp["result"].(map[string]any)
	listed := result["tools"].([]any)
	require.Len(s.T(), listed, 2)
	first := listed[0].(map[string]any)
	require.Equal(s.T(), "search_events", first["name"])
	require.Contains(s.T(), first, "inputSchema")
}

func (s *DispatcherTestSuite) TestSearchEventsCall() {
	responses := s.serve(`{"jsonrpc":"2.0","id":7,"method":"tools/call","params":{"name":"search_events","arguments":{"query":"jazz festival"}}}` + "\n")
	require.Len(s.T(), responses, 1)

	resp := responses[0]
	require.Equal(s.T(), float64(7), resp["id"])
	require.NotContains(s.T(), resp, "error")

	content := resp["result"].(map[string]any)["content"].([]any)
	require.Len(s.T(), content, 1)
	block := content[0].(map[string]any)
	require.Equal(s.T(), "text", block["type"])

	var payload tools.SearchPayload
	require.NoError(s.T(), json.Unmarshal([]byte(block["text"].(string)), &payload))
	require.NotEmpty(s.T(), payload.Events)
	require.Equal(s.T(), "Jazz Festival", payload.Events[0].Title)
}

func (s *DispatcherTestSuite) TestGetAllEventsCall() {
	responses := s.serve(`{"jsonrpc":"2.0","id":2,"method":"tools/call","params":{"name":"get_all_events"}}` + "\n")
	require.Len(s.T(), responses, 1)

	content := responses[0]["result"].(map[string]any)["content"].([]any)
	var payload tools.CatalogPayload
	require.NoError(s.T(), json.Unmarshal([]byte(content[0].(map[string]any)["text"].(string)), &payload))
	require.Equal(s.T(), 10, payload.TotalEvents)
	require.Len(s.T(), payload.Events, 10)
}

func (s *DispatcherTestSuite) TestUnknownMethod() {
	responses := s.serve(`{"jsonrpc":"2.0","id":3,"method":"bogus/method"}` + "\n")
	require.Len(s.T(), responses, 1)

	resp := responses[0]
	require.Equal(s.T(), float64(3), resp["id"])
	rpcErr := resp["error"].(map[string]any)
	require.Equal(s.T(), float64(-32601), rpcErr["code"])
}

func (s *DispatcherTestSuite) TestUnknownToolDoesNotStopTheLoop() {
	input := `{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"nope"}}` + "\n" +
		`{"jsonrpc":"2.0","id":5,"method":"tools/list"}` + "\n"
	responses := s.serve(input)
	require.Len(s.T(), responses, 2)

	rpcErr := responses[0]["error"].(map[string]any)
	require.Equal(s.T(), float64(-32603), rpcErr["code"])
	require.Equal(s.T(), float64(4), responses[0]["id"])

	require.Equal(s.T(), float64(5), responses[1]["id"])
	require.NotContains(s.T(), responses[1], "error")
}

func (s *DispatcherTestSuite) TestMalformedLinesAreSkipped() {
	input := "{not json\n\n" + `{"jsonrpc":"2.0","id":6,"method":"tools/list"}` + "\n"
	responses := s.serve(input)
	require.Len(s.T(), responses, 1)
	require.Equal(s.T(), float64(6), responses[0]["id"])
}

func (s *DispatcherTestSuite) TestMissingIDEchoedAsNull() {
	var out bytes.Buffer
	input := `{"jsonrpc":"2.0","method":"tools/list"}` + "\n"
	require.NoError(s.T(), s.dispatcher.Serve(s.ctx, strings.NewReader(input), &out))

	line := strings.TrimSpace(out.String())
	require.Contains(s.T(), line, `"id":null`)

	var resp map[string]any
	require.NoError(s.T(), json.Unmarshal([]byte(line), &resp))
	require.Contains(s.T(), resp, "id")
	require.Nil(s.T(), resp["id"])
}

func (s *DispatcherTestSuite) TestStringIDEchoedVerbatim() {
	responses := s.serve(`{"jsonrpc":"2.0","id":"req-9","method":"tools/list"}` + "\n")
	require.Len(s.T(), responses, 1)
	require.Equal(s.T(), "req-9", responses[0]["id"])
}

func TestHandleDirectly(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	refresher := search.NewRefresher(search.RefresherConfig{
		Source: &events.StaticSource{Events: events.SampleEvents()},
		Store:  vectorstore.NewInMemoryStore(logger),
		Logger: logger,
	})
	registry, err := tools.NewEventRegistry(search.NewEngine(refresher, logger, nil), refresher, logger)
	require.NoError(t, err)

	d := NewDispatcher(registry, logger)
	resp := d.Handle(context.Background(), Request{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`42`),
		Method:  "tools/list",
	})
	require.Equal(t, "2.0", resp.JSONRPC)
	require.Equal(t, json.RawMessage(`42`), resp.ID)
	require.Nil(t, resp.Error)
	require.NotNil(t, resp.Result)
}
