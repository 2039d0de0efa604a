// Package insights condenses the aggregation results into the headline cards
// shown at the top of the dashboard.
package insights

import (
	"fmt"
	"time"

	"store-insights-go/internal/binning"
	"store-insights-go/internal/ranking"
	"store-insights-go/internal/timeseries"
	"store-insights-go/internal/types"
)

// Card is one headline insight plus the follow-up prompt the assistant can
// expand it with.
type Card struct {
	Insight string `json:"insight"`
	Detail  string `json:"detail"`
	Prompt  string `json:"prompt"`
}

// Generate builds the headline cards for a snapshot. Sections without enough
// data are omitted rather than filled with placeholders.
func Generate(snap types.Snapshot, asOf time.Time) []Card {
	var cards []Card

	if popular, ok := ranking.MostPopularItem(snap.Catalog, snap.Orders); ok {
		cards = append(cards, Card{
			Insight: fmt.Sprintf("Your most popular item is %s", popular.Title),
			Detail:  fmt.Sprintf("%d units sold", ranking.TotalQuantitySold(popular, snap.Orders)),
			Prompt:  fmt.Sprintf("The most popular item is %s. Analyse my most popular item. Give me the results. Keep it brief.", popular.Title),
		})
	}

	if label, count := dominantAgeGroup(snap.Customers, asOf); count > 0 {
		cards = append(cards, Card{
			Insight: fmt.Sprintf("Most of your customers are aged %s", label),
			Detail:  fmt.Sprintf("%d customers in this group", count),
			Prompt:  "Analyse my customers' age distribution. Provide me with insights into the age demographics of my customer base. Keep it brief.",
		})
	}

	if period, revenue, ok := peakRevenueMonth(snap.Orders); ok {
		cards = append(cards, Card{
			Insight: fmt.Sprintf("Your best month was %s", period),
			Detail:  fmt.Sprintf("%.2f in revenue", revenue),
			Prompt:  "Analyse my store's sales revenue trends over time. Keep it brief.",
		})
	}

	return cards
}

func dominantAgeGroup(customers []types.Customer, asOf time.Time) (string, int) {
	var birthdays []time.Time
	for _, customer := range customers {
		if !customer.Birthday.IsZero() {
			birthdays = append(birthdays, customer.Birthday)
		}
	}
	counts := binning.BucketAges(birthdays, asOf)

	best, max := "", 0
	for _, label := range binning.AgeGroups {
		if counts[label] > max {
			best = label
			max = counts[label]
		}
	}
	return best, max
}

func peakRevenueMonth(orders []types.Order) (string, float64, bool) {
	points := timeseries.MonthlyRevenue(orders)
	if len(points) == 0 {
		return "", 0, false
	}
	best := points[0]
	for _, p := range points[1:] {
		if p.Revenue > best.Revenue {
			best = p
		}
	}
	return best.Period, best.Revenue, true
}
