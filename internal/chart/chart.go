// Package chart turns aggregation results into the labels/datasets shapes
// the dashboard's renderers consume. All builders are pure given their
// inputs; the only randomness is the pie palettes, which take an explicit
// *rand.Rand so callers control determinism.
package chart

import (
	"fmt"
	"math/rand"
	"time"

	"store-insights-go/internal/binning"
	"store-insights-go/internal/ranking"
	"store-insights-go/internal/timeseries"
	"store-insights-go/internal/types"
)

// Dataset is one renderable series.
type Dataset struct {
	Label           string    `json:"label"`
	Data            []float64 `json:"data"`
	BackgroundColor []string  `json:"backgroundColor,omitempty"`
	BorderColor     []string  `json:"borderColor,omitempty"`
}

// Series is a chart-ready bundle of labels plus datasets.
type Series struct {
	Labels   []string  `json:"labels"`
	Datasets []Dataset `json:"datasets"`
}

// RevenueSeries is the monthly sales revenue line.
func RevenueSeries(orders []types.Order) Series {
	points := timeseries.MonthlyRevenue(orders)
	labels := make([]string, len(points))
	data := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Period
		data[i] = p.Revenue
	}
	return Series{
		Labels:   labels,
		Datasets: []Dataset{{Label: "Sales Volume", Data: data}},
	}
}

// PopularitySeries is the product-popularity-over-time chart: one dataset per
// product that ever reached a monthly top three, zero-filled in months it
// did not.
func PopularitySeries(orders []types.Order, catalog []types.CatalogItem) Series {
	points := timeseries.MonthlyTopProducts(orders, catalog, 3)
	labels := make([]string, len(points))
	for i, p := range points {
		labels[i] = p.Period
	}

	var productOrder []string
	perProduct := map[string][]float64{}
	for i, p := range points {
		for _, top := range p.Top {
			data, seen := perProduct[top.ProductTitle]
			if !seen {
				data = make([]float64, len(points))
				perProduct[top.ProductTitle] = data
				productOrder = append(productOrder, top.ProductTitle)
			}
			data[i] = float64(top.UnitsSold)
		}
	}

	datasets := make([]Dataset, 0, len(productOrder))
	for _, title := range productOrder {
		datasets = append(datasets, Dataset{Label: title, Data: perProduct[title]})
	}
	return Series{Labels: labels, Datasets: datasets}
}

// AgeDistributionSeries is the customer age histogram, always six bars in
// fixed label order.
func AgeDistributionSeries(customers []types.Customer, asOf time.Time) Series {
	var birthdays []time.Time
	for _, customer := range customers {
		if !customer.Birthday.IsZero() {
			birthdays = append(birthdays, customer.Birthday)
		}
	}
	counts := binning.BucketAges(birthdays, asOf)

	data := make([]float64, len(binning.AgeGroups))
	for i, label := range binning.AgeGroups {
		data[i] = float64(counts[label])
	}
	return Series{
		Labels: append([]string(nil), binning.AgeGroups...),
		Datasets: []Dataset{{
			Label:           "Customers",
			Data:            data,
			BackgroundColor: []string{"#60a5fa"},
		}},
	}
}

// OrderFrequencySeries is the order-frequency-by-age histogram. It shares the
// age bucketing with AgeDistributionSeries rather than carrying its own copy.
func OrderFrequencySeries(customers []types.Customer, asOf time.Time) Series {
	return AgeDistributionSeries(customers, asOf)
}

// PriceDistributionSeries bins catalog unit prices into 5 requested buckets
// (6 produced, see binning.CreateBins). Items without a price are excluded.
func PriceDistributionSeries(catalog []types.CatalogItem) Series {
	var prices []float64
	for _, item := range catalog {
		if item.Money != nil {
			prices = append(prices, item.Money.Amount)
		}
	}
	bins := binning.CreateBins(prices, 5)

	labels := make([]string, len(bins))
	data := make([]float64, len(bins))
	for i, bin := range bins {
		labels[i] = fmt.Sprintf("$ %.2f - %.2f", bin.Range[0], bin.Range[1])
		data[i] = float64(bin.Count)
	}
	return Series{
		Labels: labels,
		Datasets: []Dataset{{
			Label:           "Products",
			Data:            data,
			BackgroundColor: []string{"#38bdf8"},
		}},
	}
}

// CategorySeries is the products-per-category pie. Items without a category
// group under "Uncategorized". Slice order is first-encounter order over the
// catalog, so the result is stable for a given snapshot.
func CategorySeries(catalog []types.CatalogItem, rng *rand.Rand) Series {
	var order []string
	counts := map[string]int{}
	for _, item := range catalog {
		category := item.Category
		if category == "" {
			category = "Uncategorized"
		}
		if _, seen := counts[category]; !seen {
			order = append(order, category)
		}
		counts[category]++
	}
	return pieSeries("# of Products", order, counts, rng)
}

// SourceSeries is the orders-per-sales-channel pie. Orders without a source
// group under "Unknown".
func SourceSeries(orders []types.Order, rng *rand.Rand) Series {
	var order []string
	counts := map[string]int{}
	for _, o := range orders {
		source := o.Source
		if source == "" {
			source = "Unknown"
		}
		if _, seen := counts[source]; !seen {
			order = append(order, source)
		}
		counts[source]++
	}
	return pieSeries("# of Orders", order, counts, rng)
}

// LifetimeValueSeries is the top-ten customer lifetime value line, labelled
// by given name.
func LifetimeValueSeries(orders []types.Order, customers []types.Customer) Series {
	top := ranking.TopCustomersByValue(customers, orders, 10)
	labels := make([]string, len(top))
	data := make([]float64, len(top))
	for i, cv := range top {
		labels[i] = cv.Customer.GivenName
		data[i] = cv.Value
	}
	return Series{
		Labels:   labels,
		Datasets: []Dataset{{Label: "Customer Lifetime Value", Data: data}},
	}
}

func pieSeries(label string, order []string, counts map[string]int, rng *rand.Rand) Series {
	data := make([]float64, len(order))
	bg := make([]string, len(order))
	border := make([]string, len(order))
	for i, key := range order {
		data[i] = float64(counts[key])
		base := RandomColor(rng)
		bg[i] = WithAlpha(HSLToHex(base), 0.5)
		border[i] = Darken(HSLToHex(base))
	}
	return Series{
		Labels: order,
		Datasets: []Dataset{{
			Label:           label,
			Data:            data,
			BackgroundColor: bg,
			BorderColor:     border,
		}},
	}
}
