package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"liveable/internal/alert"
	"liveable/internal/configuration"
	"liveable/internal/feature"
	"liveable/internal/publish"
	"liveable/internal/readings"
	"liveable/internal/score/scorer"
	"liveable/internal/server"
	"liveable/internal/snapshot"
)

// prepareLogger configures the global slog logger. Takes a string log level
// (e.g. "debug", "info", "warn", "error") and installs JSON-formatted output
// on os.Stdout. Unrecognized levels fall back to Info.
func prepareLogger(level string) {
	var logLevel slog.Level

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)
}

// On errors during configuration loading, rule reading, or component
// initialization the application exits with code 1.
func main() {
	configPath := flag.String("config", "/etc/liveable/config.yaml", "configuration file")
	flag.Parse()
	config, err := configuration.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Unable to load configuration", "error", err)
		os.Exit(1)
	}
	prepareLogger(config.Logger.Level)

	appCtx, appCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer appCancel()

	fetcher := feature.NewHTTPFetcher(config.Datasets.BaseURL, config.Readings.Timeout)
	store := feature.NewStore(fetcher, config.Datasets.Ttl)
	defer store.Close()

	client := readings.NewClient(config.Readings.BaseURL, config.Readings.Ttl, config.Readings.Timeout)
	defer client.Close()

	var publisher scorer.Publisher
	if config.Publish.RedisAddr != "" {
		redisPublisher := publish.NewRedisPublisher(
			config.Publish.RedisAddr,
			config.Publish.Password,
			config.Publish.Db,
			config.Publish.Key,
		)
		defer redisPublisher.Close()
		publisher = redisPublisher
		slog.Info("Publishing batches to Redis", "addr", config.Publish.RedisAddr, "key", config.Publish.Key)
	}

	var log *snapshot.Log
	if config.Snapshot.File != "" {
		log = snapshot.NewLog(config.Snapshot.File, config.Snapshot.Size, config.Snapshot.Amount)
		defer log.Close()
	}
	recorder := snapshot.NewRecorder(config.Snapshot.History, log)

	var evaluator *alert.Evaluator
	if config.Alerts.Rules != "" {
		rules, err := alert.LoadRulesFromFile(config.Alerts.Rules)
		if err != nil {
			slog.Error("Unable to load alert rules", "error", err)
			os.Exit(1)
		}
		evaluator = alert.NewEvaluator(rules)
		slog.Info("Alert rules loaded", "rules", len(rules))
	}

	scores := scorer.NewCachedAggregator(
		scorer.NewAggregator(store, client),
		config.Scores.Ttl,
		publisher,
		recorder,
	)
	defer scores.Close()

	srv := server.NewServer(
		config.Server.Address,
		config.Server.Static,
		scores,
		client,
		evaluator,
		recorder,
	)
	go srv.ListenAndServe()
	slog.Info("Server listening " + config.Server.Address)
	<-appCtx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Second*10)
	defer shutdownCancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		slog.Error("Server shutdown", "error", err)
	}
	slog.Info("Server stopped")
}
