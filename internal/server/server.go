package server

import (
	"context"
	"net/http"
	"time"

	"liveable/internal/alert"
	"liveable/internal/readings"
	"liveable/internal/score/scorer"
	"liveable/internal/snapshot"
)

// Server encapsulates the HTTP server of the application, providing
// controlled startup and shutdown. Uses a customizable router and ensures
// timeouts for security and stability.
type Server struct {
	server *http.Server
}

// ListenAndServe starts the HTTP server and blocks until it is stopped or
// fails. Returns http.ErrServerClosed after a graceful Shutdown.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server, letting active connections finish
// within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// NewServer creates and configures a new server instance.
//
// Parameters:
// - address: address and port to listen on (e.g. ":8080").
// - static: path to directory with dashboard static files, empty to disable.
// - scores: the cached aggregator serving score requests.
// - readingsClient: readings client, cleared together with scores on forced refresh.
// - alerts: alert rule evaluator, nil when no rules are configured.
// - recorder: batch history recorder, nil to disable the history endpoint.
//
// The write timeout leaves room for a cold batch computation, which awaits
// several upstream fetches.
func NewServer(
	address string,
	static string,
	scores *scorer.CachedAggregator,
	readingsClient *readings.Client,
	alerts *alert.Evaluator,
	recorder *snapshot.Recorder,
) *Server {
	router := NewApiV1Router(static, scores, readingsClient, alerts, recorder)
	s := Server{&http.Server{
		Addr:           address,
		Handler:        router.Mux(),
		ReadTimeout:    time.Second * 3,
		WriteTimeout:   time.Second * 30,
		MaxHeaderBytes: 1024 * 10,
	}}

	return &s
}
