package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"liveable/internal/alert"
	"liveable/internal/district"
	"liveable/internal/readings"
	"liveable/internal/score/scorer"
	"liveable/internal/snapshot"
)

// ApiV1Router manages routes for API version 1: the two scoring entry
// points, the district catalog, computed alerts, batch history, forced
// refresh, and optional static file serving.
type ApiV1Router struct {
	scores   *scorer.CachedAggregator
	readings *readings.Client
	alerts   *alert.Evaluator   // nil when no rules are configured
	recorder *snapshot.Recorder // nil disables the history endpoint
	static   string
}

// Mux returns a configured *http.ServeMux with registered handlers:
// - GET  /api/v1/scores            — all districts' composites
// - GET  /api/v1/scores/{district} — one district's composite
// - GET  /api/v1/districts         — the district catalog
// - GET  /api/v1/alerts            — alert rules evaluated over the current batch
// - GET  /api/v1/history           — recent batch summaries
// - POST /api/v1/cache/clear       — forced refresh
// - GET  /static/...               — static files (if enabled)
func (ar *ApiV1Router) Mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/scores", ar.allScoresHandler)
	mux.HandleFunc("GET /api/v1/scores/{district}", ar.scoreHandler)
	mux.HandleFunc("GET /api/v1/districts", ar.districtsHandler)
	mux.HandleFunc("GET /api/v1/alerts", ar.alertsHandler)
	mux.HandleFunc("GET /api/v1/history", ar.historyHandler)
	mux.HandleFunc("POST /api/v1/cache/clear", ar.clearCacheHandler)

	if len(ar.static) != 0 {
		fs := http.FileServer(http.Dir(ar.static))
		mux.Handle("GET /static/", http.StripPrefix("/static/", fs))
	}

	return mux
}

func (ar *ApiV1Router) allScoresHandler(w http.ResponseWriter, r *http.Request) {
	batch := ar.scores.ComputeAll(r.Context())
	writeJSON(w, batch)
}

func (ar *ApiV1Router) scoreHandler(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("district")
	if len(name) == 0 {
		w.WriteHeader(http.StatusUnprocessableEntity)
		return
	}

	composite, err := ar.scores.ComputeOne(r.Context(), name)
	if err != nil {
		var unknown *scorer.UnknownDistrictError
		if errors.As(err, &unknown) {
			slog.Warn("Score requested for unknown district", "district", name)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		slog.Error("Score computation failed", "district", name, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	writeJSON(w, composite)
}

func (ar *ApiV1Router) districtsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, district.Names())
}

// alertsHandler evaluates the configured rules against the current batch.
// Served from the score cache when warm, so repeated polling is cheap.
func (ar *ApiV1Router) alertsHandler(w http.ResponseWriter, r *http.Request) {
	if ar.alerts == nil {
		writeJSON(w, []alert.Alert{})
		return
	}
	batch := ar.scores.ComputeAll(r.Context())
	writeJSON(w, ar.alerts.Evaluate(batch))
}

func (ar *ApiV1Router) historyHandler(w http.ResponseWriter, _ *http.Request) {
	if ar.recorder == nil {
		writeJSON(w, []snapshot.Summary{})
		return
	}
	writeJSON(w, ar.recorder.History())
}

// clearCacheHandler drops the memoized scores and the readings cache.
// Static feature datasets keep their own longer TTL.
func (ar *ApiV1Router) clearCacheHandler(w http.ResponseWriter, _ *http.Request) {
	ar.scores.ClearCache()
	ar.readings.Clear()
	slog.Info("Score cache cleared")
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Error("Unable to marshal response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(body)
}

// NewApiV1Router creates a new API v1 router.
func NewApiV1Router(
	static string,
	scores *scorer.CachedAggregator,
	readingsClient *readings.Client,
	alerts *alert.Evaluator,
	recorder *snapshot.Recorder,
) *ApiV1Router {
	return &ApiV1Router{
		scores:   scores,
		readings: readingsClient,
		alerts:   alerts,
		recorder: recorder,
		static:   static,
	}
}
