// Package handler exposes the dashboard API. Handlers hold one snapshot in
// memory and recompute every derived dataset from it on demand; refresh
// swaps in a fresh pull from the snapshot source.
package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"store-insights-go/internal/assistant"
	"store-insights-go/internal/insights"
	"store-insights-go/internal/llmctx"
	"store-insights-go/internal/logger"
	"store-insights-go/internal/ranking"
	"store-insights-go/internal/types"
	"store-insights-go/pkg/response"
)

// SnapshotSource produces a fresh snapshot of the store's collections.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (types.Snapshot, error)
}

// StaticSource serves a fixed snapshot, used for offline demo data.
type StaticSource struct {
	Snap types.Snapshot
}

func (s StaticSource) Snapshot(context.Context) (types.Snapshot, error) {
	return s.Snap, nil
}

// Handler carries the shared state of the dashboard API.
type Handler struct {
	log       *logger.Logger
	source    SnapshotSource
	assistant *assistant.Client

	mu   sync.RWMutex
	snap types.Snapshot
}

func New(log *logger.Logger, source SnapshotSource, chat *assistant.Client, initial types.Snapshot) *Handler {
	return &Handler{
		log:       log,
		source:    source,
		assistant: chat,
		snap:      initial,
	}
}

func (h *Handler) snapshot() types.Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap
}

// Health reports liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.log.WithRequest(r).Info("health check")
	response.OK(w, map[string]string{"status": "ok"})
}

// Refresh re-pulls the snapshot from the source and swaps it in.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	log := h.log.WithRequest(r).WithField("handler", "refresh")

	snap, err := h.source.Snapshot(r.Context())
	if err != nil {
		log.WithField("error", err.Error()).Error("snapshot refresh failed")
		response.Error(w, http.StatusBadGateway, "snapshot refresh failed")
		return
	}

	h.mu.Lock()
	h.snap = snap
	h.mu.Unlock()

	log.WithField("orders", len(snap.Orders)).Info("snapshot refreshed")
	response.OK(w, map[string]int{
		"catalog":   len(snap.Catalog),
		"orders":    len(snap.Orders),
		"customers": len(snap.Customers),
	})
}

// Catalog returns the normalized catalog collection.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.snapshot().Catalog)
}

// Orders returns the normalized order collection.
func (h *Handler) Orders(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.snapshot().Orders)
}

// Customers returns the normalized customer collection.
func (h *Handler) Customers(w http.ResponseWriter, r *http.Request) {
	response.OK(w, h.snapshot().Customers)
}

// Merchant returns the store profile.
func (h *Handler) Merchant(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot()
	if snap.Merchant == nil {
		response.Error(w, http.StatusNotFound, "no merchant profile")
		return
	}
	response.OK(w, snap.Merchant)
}

// Rankings returns the product popularity table. ?dir=desc or ?dir=asc sorts
// by total sales value; without the parameter rows stay in catalog order.
func (h *Handler) Rankings(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot()
	catalog := snap.Catalog
	switch r.URL.Query().Get("dir") {
	case "asc":
		catalog = ranking.SortBySalesValue(catalog, snap.Orders, false)
	case "desc":
		catalog = ranking.SortBySalesValue(catalog, snap.Orders, true)
	}
	response.OK(w, ranking.Rows(catalog, snap.Orders, snap.Customers, time.Now()))
}

// PopularItem returns the single most popular product.
func (h *Handler) PopularItem(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot()
	item, ok := ranking.MostPopularItem(snap.Catalog, snap.Orders)
	if !ok {
		response.Error(w, http.StatusNotFound, "catalog is empty")
		return
	}
	response.OK(w, item)
}

// Insights returns the headline cards.
func (h *Handler) Insights(w http.ResponseWriter, r *http.Request) {
	response.OK(w, insights.Generate(h.snapshot(), time.Now()))
}

// Context returns the flattened store data block the assistant grounds on.
func (h *Handler) Context(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(llmctx.Build(h.snapshot())))
}
