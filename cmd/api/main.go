package main

import (
	"context"
	"math/rand"
	"net/http"
	"time"

	"store-insights-go/internal/assistant"
	"store-insights-go/internal/config"
	"store-insights-go/internal/export"
	"store-insights-go/internal/handler"
	"store-insights-go/internal/logger"
	"store-insights-go/internal/mockstore"
	"store-insights-go/internal/router"
	"store-insights-go/internal/square"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(cfg.App.Environment, cfg.App.LogLevel)
	log.WithField("service", cfg.App.Name).Info("starting service")

	source := snapshotSource(cfg, log)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	snap, err := source.Snapshot(ctx)
	cancel()
	if err != nil {
		log.WithError(err).Fatal("failed to load initial snapshot")
	}
	log.WithField("catalog", len(snap.Catalog)).
		WithField("orders", len(snap.Orders)).
		WithField("customers", len(snap.Customers)).
		Info("snapshot loaded")

	chat := assistant.NewClient(cfg.LLM, log)
	h := handler.New(log, source, chat, snap)

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router.New(h, log),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	log.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.WithError(err).Fatal("server terminated")
	}
}

// snapshotSource picks where store data comes from: the live provider when a
// token is configured, an offline workbook when a path is, and a generated
// demo store otherwise.
func snapshotSource(cfg *config.Config, log *logger.Logger) handler.SnapshotSource {
	switch {
	case cfg.Square.AccessToken != "":
		log.Info("using provider snapshot source")
		return square.NewClient(cfg.Square, log)
	case cfg.Data.SnapshotPath != "":
		log.WithField("path", cfg.Data.SnapshotPath).Info("using workbook snapshot source")
		snap, err := export.LoadSnapshot(cfg.Data.SnapshotPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load snapshot workbook")
		}
		return handler.StaticSource{Snap: snap}
	default:
		log.WithField("seed", cfg.Data.MockSeed).Info("no provider token or snapshot path; using generated demo store")
		rng := rand.New(rand.NewSource(cfg.Data.MockSeed))
		return handler.StaticSource{Snap: mockstore.Snapshot(rng, 12, 40, 200, time.Now())}
	}
}
