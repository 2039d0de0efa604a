// genstore writes a generated demo-store workbook that the api service can
// load through SNAPSHOT_PATH, for running without provider credentials.
package main

import (
	"flag"
	"math/rand"
	"time"

	"store-insights-go/internal/export"
	"store-insights-go/internal/logger"
	"store-insights-go/internal/mockstore"
)

func main() {
	var (
		out       = flag.String("out", "demo-store.xlsx", "output workbook path")
		seed      = flag.Int64("seed", 1, "random seed")
		items     = flag.Int("items", 12, "number of catalog items")
		customers = flag.Int("customers", 40, "number of customers")
		orders    = flag.Int("orders", 200, "number of orders")
	)
	flag.Parse()

	// Always a human at the terminal here, so console formatting is fine.
	log := logger.New("local", "info").WithComponent("genstore")

	rng := rand.New(rand.NewSource(*seed))
	now := time.Now()
	snap := mockstore.Snapshot(rng, *items, *customers, *orders, now)

	if err := export.WriteReport(*out, snap, now); err != nil {
		log.WithField("error", err.Error()).Fatal("failed to write workbook")
	}
	log.WithField("path", *out).
		WithField("items", len(snap.Catalog)).
		WithField("customers", len(snap.Customers)).
		WithField("orders", len(snap.Orders)).
		Info("demo store written")
}
