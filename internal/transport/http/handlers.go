package transporthttp

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/radutopala/eventscout/internal/search"
)

// EventsPageCap bounds the GET /events page size.
const EventsPageCap = 50

// ServerDeps holds what the HTTP handlers need.
type ServerDeps struct {
	Engine    *search.Engine
	Refresher *search.Refresher
	Logger    *slog.Logger
	Gatherer  prometheus.Gatherer
}

// Routes builds the HTTP handler with middleware applied.
func (d *ServerDeps) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", d.HandleHealthz)
	mux.HandleFunc("POST /search", d.HandleSearch)
	mux.HandleFunc("GET /events", d.HandleEvents)
	mux.HandleFunc("POST /refresh", d.HandleRefresh)
	mux.Handle("GET /metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))

	var handler http.Handler = mux
	handler = Logging(d.Logger)(handler)
	handler = RequestID(handler)
	return handler
}

func (d *ServerDeps) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "healthy",
		"message": "Semantic event search API is running",
	})
}

type searchRequest struct {
	Query  string `json:"query"`
	UserID string `json:"user_id"`
}

func (d *ServerDeps) HandleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		WriteProblem(w, http.StatusBadRequest, "invalid json", err.Error())
		return
	}

	results, err := d.Engine.Search(r.Context(), req.Query, req.UserID)
	if err != nil {
		d.Logger.Error("Search request failed", "query", req.Query, "error", err)
		WriteProblem(w, http.StatusInternalServerError, "search failed", err.Error())
		return
	}

	if len(results) == 0 {
		writeJSON(w, http.StatusOK, map[string]any{
			"results": []any{},
			"message": "no matches",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"results": results,
		"count":   len(results),
	})
}

func (d *ServerDeps) HandleEvents(w http.ResponseWriter, r *http.Request) {
	catalog, err := d.Refresher.Events(r.Context())
	if err != nil {
		WriteProblem(w, http.StatusInternalServerError, "events unavailable", err.Error())
		return
	}

	page := catalog[:min(len(catalog), EventsPageCap)]
	writeJSON(w, http.StatusOK, map[string]any{
		"events":         page,
		"total_count":    len(catalog),
		"returned_count": len(page),
	})
}

func (d *ServerDeps) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := d.Refresher.Refresh(r.Context()); err != nil {
		d.Logger.Error("Manual refresh failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": "error"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
