// Package ranking derives per-entity metrics from the joined collections:
// units sold and sales value per product, the most popular item, customer
// lifetime value and the dominant buyer age group per product.
package ranking

import (
	"fmt"
	"sort"
	"time"

	"store-insights-go/internal/binning"
	"store-insights-go/internal/join"
	"store-insights-go/internal/types"
)

// TotalQuantitySold sums the parsed quantities of every order joined to the
// item. Unparseable quantities count as 0 here.
func TotalQuantitySold(item types.CatalogItem, orders []types.Order) int {
	total := 0
	for _, order := range join.OrdersForItem(item, orders) {
		total += types.ParseQuantity(order.ItemQuantity, 0)
	}
	return total
}

// TotalSalesValue is the item's units sold times its unit price. An item
// without a price is worth 0 regardless of volume.
func TotalSalesValue(item types.CatalogItem, orders []types.Order) float64 {
	price := 0.0
	if item.Money != nil {
		price = item.Money.Amount
	}
	return float64(TotalQuantitySold(item, orders)) * price
}

// MostPopularItem returns the catalog item with the highest total quantity
// sold. Ties resolve to the item appearing later in the catalog: the ranking
// is an ascending stable sort by quantity and the final entry wins. That
// tie-break is a documented behavior of the shipped dashboard; do not replace
// it with a max-by scan.
func MostPopularItem(catalog []types.CatalogItem, orders []types.Order) (types.CatalogItem, bool) {
	if len(catalog) == 0 {
		return types.CatalogItem{}, false
	}

	type itemVolume struct {
		item   types.CatalogItem
		volume int
	}
	ranked := make([]itemVolume, len(catalog))
	for i, item := range catalog {
		ranked[i] = itemVolume{item: item, volume: TotalQuantitySold(item, orders)}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].volume < ranked[j].volume
	})
	return ranked[len(ranked)-1].item, true
}

// CustomerLifetimeValue is the customer's average order revenue. A customer
// with zero orders yields NaN (0/0); callers ranking by CLV must filter
// zero-order customers first.
func CustomerLifetimeValue(customer types.Customer, orders []types.Order) float64 {
	var sum float64
	count := 0
	for _, order := range orders {
		if order.CustomerID != customer.ID {
			continue
		}
		if order.Money != nil {
			sum += order.Money.Amount
		}
		count++
	}
	return sum / float64(count)
}

// CustomerValue pairs a customer with their lifetime value for ranking.
type CustomerValue struct {
	Customer types.Customer `json:"customer"`
	Value    float64        `json:"value"`
}

// TopCustomersByValue ranks customers by lifetime value, descending, and
// keeps the first n. Customers with no orders are skipped so the sort
// comparator never sees NaN.
func TopCustomersByValue(customers []types.Customer, orders []types.Order, n int) []CustomerValue {
	ordersByCustomer := map[string]int{}
	for _, order := range orders {
		if order.CustomerID != "" {
			ordersByCustomer[order.CustomerID]++
		}
	}

	var ranked []CustomerValue
	for _, customer := range customers {
		if ordersByCustomer[customer.ID] == 0 {
			continue
		}
		ranked = append(ranked, CustomerValue{
			Customer: customer,
			Value:    CustomerLifetimeValue(customer, orders),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// MostCommonAgeGroupAmongBuyers joins item -> orders -> customers, buckets
// the buyers' birthdays and returns the label with the highest count. Ties
// resolve to the first label reaching the maximum in display order. Returns
// "-" when no buyer has a known birthday.
func MostCommonAgeGroupAmongBuyers(item types.CatalogItem, orders []types.Order, customers []types.Customer, asOf time.Time) string {
	var birthdays []time.Time
	for _, customer := range join.CustomersForItem(item, orders, customers) {
		if !customer.Birthday.IsZero() {
			birthdays = append(birthdays, customer.Birthday)
		}
	}
	counts := binning.BucketAges(birthdays, asOf)

	best := "-"
	max := 0
	for _, label := range binning.AgeGroups {
		if counts[label] > max {
			best = label
			max = counts[label]
		}
	}
	return best
}

// SortBySalesValue returns a copy of the catalog ordered by total sales
// value. Ascending by default; descending is the ranking column's toggled
// direction. Equal values keep their relative catalog order.
func SortBySalesValue(catalog []types.CatalogItem, orders []types.Order, descending bool) []types.CatalogItem {
	sorted := append([]types.CatalogItem(nil), catalog...)
	values := make(map[string]float64, len(sorted))
	for _, item := range sorted {
		values[item.ID] = TotalSalesValue(item, orders)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return values[sorted[i].ID] > values[sorted[j].ID]
		}
		return values[sorted[i].ID] < values[sorted[j].ID]
	})
	return sorted
}

// Row is one line of the product popularity table.
type Row struct {
	Item              types.CatalogItem `json:"item"`
	MostCommonAges    string            `json:"most_common_ages"`
	TotalQuantitySold int               `json:"total_quantity_sold"`
	TotalSalesValue   float64           `json:"total_sales_value"`
	TotalSalesDisplay string            `json:"total_sales_display"`
}

// Rows builds the popularity table, one row per catalog item in catalog
// order.
func Rows(catalog []types.CatalogItem, orders []types.Order, customers []types.Customer, asOf time.Time) []Row {
	rows := make([]Row, len(catalog))
	for i, item := range catalog {
		quantity := TotalQuantitySold(item, orders)
		value := TotalSalesValue(item, orders)
		currency := ""
		if item.Money != nil {
			currency = item.Money.Currency
		}
		rows[i] = Row{
			Item:              item,
			MostCommonAges:    MostCommonAgeGroupAmongBuyers(item, orders, customers, asOf),
			TotalQuantitySold: quantity,
			TotalSalesValue:   value,
			TotalSalesDisplay: fmt.Sprintf("%s %.2f", currency, value),
		}
	}
	return rows
}
