package handler

import (
	"math/rand"
	"net/http"
	"time"

	"store-insights-go/internal/chart"
	"store-insights-go/pkg/response"
)

// Chart endpoints return the labels/datasets shapes the renderers consume.
// Pie palettes are re-rolled per request, matching the dashboard's historical
// behavior; everything else is deterministic for a given snapshot.

func (h *Handler) RevenueChart(w http.ResponseWriter, r *http.Request) {
	response.OK(w, chart.RevenueSeries(h.snapshot().Orders))
}

func (h *Handler) PopularityChart(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot()
	response.OK(w, chart.PopularitySeries(snap.Orders, snap.Catalog))
}

func (h *Handler) AgeChart(w http.ResponseWriter, r *http.Request) {
	response.OK(w, chart.AgeDistributionSeries(h.snapshot().Customers, time.Now()))
}

func (h *Handler) OrderFrequencyChart(w http.ResponseWriter, r *http.Request) {
	response.OK(w, chart.OrderFrequencySeries(h.snapshot().Customers, time.Now()))
}

func (h *Handler) PriceChart(w http.ResponseWriter, r *http.Request) {
	response.OK(w, chart.PriceDistributionSeries(h.snapshot().Catalog))
}

func (h *Handler) CategoryChart(w http.ResponseWriter, r *http.Request) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	response.OK(w, chart.CategorySeries(h.snapshot().Catalog, rng))
}

func (h *Handler) SourceChart(w http.ResponseWriter, r *http.Request) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	response.OK(w, chart.SourceSeries(h.snapshot().Orders, rng))
}

func (h *Handler) LifetimeValueChart(w http.ResponseWriter, r *http.Request) {
	snap := h.snapshot()
	response.OK(w, chart.LifetimeValueSeries(snap.Orders, snap.Customers))
}
