// Package timeseries buckets orders into calendar-month periods for the
// revenue and product-popularity charts. Periods run gap-free from the
// earliest to the latest order month, padded forward to a nine-period floor
// so the charts keep a usable shape on sparse stores.
package timeseries

import (
	"sort"
	"time"

	"store-insights-go/internal/join"
	"store-insights-go/internal/types"
)

// MinPeriods is the display-stability floor: series shorter than this are
// extended with synthetic zero/empty trailing months.
const MinPeriods = 9

// RevenuePoint is one month of summed revenue.
type RevenuePoint struct {
	Period  string  `json:"period"` // YYYY-MM
	Revenue float64 `json:"revenue"`
}

// ProductCount is one product's units sold within a period.
type ProductCount struct {
	ProductTitle string `json:"product_title"`
	UnitsSold    int    `json:"units_sold"`
}

// PopularityPoint is one month's top products by units sold.
type PopularityPoint struct {
	Period string         `json:"period"`
	Top    []ProductCount `json:"top"`
}

// MonthlyRevenue sums order revenue per calendar month. Revenue is
// money.amount times the parsed quantity; an unparseable or absent quantity
// counts as 1 here (not 0 — this call site's historical default, see the
// quantity-parsing note in internal/types). Orders without a created-at
// timestamp are excluded entirely. Returns nil when no order carries a
// timestamp.
func MonthlyRevenue(orders []types.Order) []RevenuePoint {
	months := periodRange(orders)
	if months == nil {
		return nil
	}

	revenue := make(map[string]float64, len(months))
	for _, order := range orders {
		if order.CreatedAt.IsZero() {
			continue
		}
		amount := 0.0
		if order.Money != nil {
			amount = order.Money.Amount
		}
		quantity := types.ParseQuantity(order.ItemQuantity, 1)
		revenue[periodOf(order.CreatedAt)] += amount * float64(quantity)
	}

	points := make([]RevenuePoint, len(months))
	for i, period := range months {
		points[i] = RevenuePoint{Period: period, Revenue: revenue[period]}
	}
	return points
}

// MonthlyTopProducts ranks products by units sold within each month and
// keeps the top topN. Orders whose item id resolves to no catalog item are
// excluded; unparseable quantities count as 0. Ties keep the order products
// were first seen in within the month.
func MonthlyTopProducts(orders []types.Order, catalog []types.CatalogItem, topN int) []PopularityPoint {
	months := periodRange(orders)
	if months == nil {
		return nil
	}

	titles := join.TitleByVariation(catalog)

	type monthTally struct {
		units []int
		index map[string]int // variation id -> position in units/titles
		names []string
	}
	tallies := make(map[string]*monthTally, len(months))

	for _, order := range orders {
		if order.CreatedAt.IsZero() || order.ItemID == "" {
			continue
		}
		title, ok := titles[order.ItemID]
		if !ok {
			continue
		}
		period := periodOf(order.CreatedAt)
		tally := tallies[period]
		if tally == nil {
			tally = &monthTally{index: map[string]int{}}
			tallies[period] = tally
		}
		pos, seen := tally.index[order.ItemID]
		if !seen {
			pos = len(tally.units)
			tally.index[order.ItemID] = pos
			tally.units = append(tally.units, 0)
			tally.names = append(tally.names, title)
		}
		tally.units[pos] += types.ParseQuantity(order.ItemQuantity, 0)
	}

	points := make([]PopularityPoint, len(months))
	for i, period := range months {
		points[i] = PopularityPoint{Period: period, Top: []ProductCount{}}
		tally := tallies[period]
		if tally == nil {
			continue
		}
		ranked := make([]int, len(tally.units))
		for j := range ranked {
			ranked[j] = j
		}
		sort.SliceStable(ranked, func(a, b int) bool {
			return tally.units[ranked[a]] > tally.units[ranked[b]]
		})
		if len(ranked) > topN {
			ranked = ranked[:topN]
		}
		for _, j := range ranked {
			points[i].Top = append(points[i].Top, ProductCount{
				ProductTitle: tally.names[j],
				UnitsSold:    tally.units[j],
			})
		}
	}
	return points
}

// periodRange lists the YYYY-MM labels from the earliest to the latest order
// month, consecutively and inclusively, then pads forward to MinPeriods.
// Orders without a created-at timestamp do not contribute to the range.
func periodRange(orders []types.Order) []string {
	var min, max time.Time
	for _, order := range orders {
		if order.CreatedAt.IsZero() {
			continue
		}
		t := order.CreatedAt.UTC()
		if min.IsZero() || t.Before(min) {
			min = t
		}
		if max.IsZero() || t.After(max) {
			max = t
		}
	}
	if min.IsZero() {
		return nil
	}

	var months []string
	cur := time.Date(min.Year(), min.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(max.Year(), max.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cur.After(end) {
		months = append(months, periodOf(cur))
		cur = cur.AddDate(0, 1, 0)
	}
	for len(months) < MinPeriods {
		months = append(months, periodOf(cur))
		cur = cur.AddDate(0, 1, 0)
	}
	return months
}

func periodOf(t time.Time) string {
	return t.UTC().Format("2006-01")
}
