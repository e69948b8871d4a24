package transporthttp

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/radutopala/eventscout/internal/events"
	"github.com/radutopala/eventscout/internal/metrics"
	"github.com/radutopala/eventscout/internal/search"
	"github.com/radutopala/eventscout/internal/vectorstore"
)

type HandlersTestSuite struct {
	suite.Suite
	server *httptest.Server
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	refresher := search.NewRefresher(search.RefresherConfig{
		Source:  &events.StaticSource{Events: events.SampleEvents()},
		Store:   vectorstore.NewInMemoryStore(logger),
		Logger:  logger,
		Metrics: m,
	})
	engine := search.NewEngine(refresher, logger, m)

	deps := &ServerDeps{
		Engine:    engine,
		Refresher: refresher,
		Logger:    logger,
		Gatherer:  registry,
	}
	s.server = httptest.NewServer(deps.Routes())
}

func (s *HandlersTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *HandlersTestSuite) getJSON(path string) (int, map[string]any) {
	resp, err := http.Get(s.server.URL + path)
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func (s *HandlersTestSuite) postJSON(path, payload string) (int, map[string]any) {
	resp, err := http.Post(s.server.URL+path, "application/json", strings.NewReader(payload))
	require.NoError(s.T(), err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(s.T(), json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func (s *HandlersTestSuite) TestHealthz() {
	status, body := s.getJSON("/healthz")
	require.Equal(s.T(), http.StatusOK, status)
	require.Equal(s.T(), "healthy", body["status"])
}

func (s *HandlersTestSuite) TestSearch() {
	status, body := s.postJSON("/search", `{"query":"jazz festival"}`)
	require.Equal(s.T(), http.StatusOK, status)

	results := body["results"].([]any)
	require.NotEmpty(s.T(), results)
	require.Equal(s.T(), float64(len(results)), body["count"])

	first := results[0].(map[string]any)
	require.Equal(s.T(), "Jazz Festival", first["title"])
}

func (s *HandlersTestSuite) TestSearchNoMatches() {
	status, body := s.postJSON("/search", `{"query":"underwater basket weaving"}`)
	require.Equal(s.T(), http.StatusOK, status)
	require.Empty(s.T(), body["results"])
	require.Equal(s.T(), "no matches", body["message"])
}

func (s *HandlersTestSuite) TestSearchRejectsUnknownFields() {
	status, body := s.postJSON("/search", `{"query":"jazz","bogus":true}`)
	require.Equal(s.T(), http.StatusBadRequest, status)
	require.Equal(s.T(), "invalid json", body["title"])
}

func (s *HandlersTestSuite) TestSearchRejectsMalformedBody() {
	status, _ := s.postJSON("/search", `{"query":`)
	require.Equal(s.T(), http.StatusBadRequest, status)
}

func (s *HandlersTestSuite) TestEvents() {
	status, body := s.getJSON("/events")
	require.Equal(s.T(), http.StatusOK, status)
	require.Equal(s.T(), float64(10), body["total_count"])
	require.Equal(s.T(), float64(10), body["returned_count"])
	require.Len(s.T(), body["events"].([]any), 10)
}

func (s *HandlersTestSuite) TestRefresh() {
	status, body := s.postJSON("/refresh", "")
	require.Equal(s.T(), http.StatusOK, status)
	require.Equal(s.T(), "success", body["status"])
}

func (s *HandlersTestSuite) TestMetricsEndpoint() {
	// Generate some traffic first so counters exist.
	_, _ = s.postJSON("/search", `{"query":"jazz"}`)

	resp, err := http.Get(s.server.URL + "/metrics")
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(s.T(), err)
	require.Contains(s.T(), string(raw), "eventscout_searches_total")
}

func (s *HandlersTestSuite) TestRequestIDGenerated() {
	resp, err := http.Get(s.server.URL + "/healthz")
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.NotEmpty(s.T(), resp.Header.Get("X-Request-ID"))
}

func (s *HandlersTestSuite) TestRequestIDEchoed() {
	req, err := http.NewRequest(http.MethodGet, s.server.URL+"/healthz", nil)
	require.NoError(s.T(), err)
	req.Header.Set("X-Request-ID", "req-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), "req-123", resp.Header.Get("X-Request-ID"))
}

func (s *HandlersTestSuite) TestMethodNotAllowed() {
	resp, err := http.Get(s.server.URL + "/search")
	require.NoError(s.T(), err)
	defer resp.Body.Close()
	require.Equal(s.T(), http.StatusMethodNotAllowed, resp.StatusCode)
}
