// Package join resolves the relationships between the three record
// collections: orders reference catalog items through variation ids and
// customers through customer ids. Dangling references are silently excluded
// so a dashboard keeps rendering with partial data.
package join

import "store-insights-go/internal/types"

// OrdersForItem returns every order whose item id is one of the item's
// variation ids, in the orders' original order. An order without an item id
// never matches.
func OrdersForItem(item types.CatalogItem, orders []types.Order) []types.Order {
	variations := make(map[string]struct{}, len(item.VariationIDs))
	for _, id := range item.VariationIDs {
		variations[id] = struct{}{}
	}

	var matched []types.Order
	for _, order := range orders {
		if order.ItemID == "" {
			continue
		}
		if _, ok := variations[order.ItemID]; ok {
			matched = append(matched, order)
		}
	}
	return matched
}

// CustomersForItem returns the customers that placed at least one order for
// the item, de-duplicated, in the customer collection's original order. An
// order whose customer id matches no known customer contributes nothing.
func CustomersForItem(item types.CatalogItem, orders []types.Order, customers []types.Customer) []types.Customer {
	buyerIDs := map[string]struct{}{}
	for _, order := range OrdersForItem(item, orders) {
		if order.CustomerID != "" {
			buyerIDs[order.CustomerID] = struct{}{}
		}
	}

	var matched []types.Customer
	for _, customer := range customers {
		if _, ok := buyerIDs[customer.ID]; ok {
			matched = append(matched, customer)
		}
	}
	return matched
}

// TitleByVariation indexes catalog item titles by each of their variation
// ids, the lookup the time-series aggregator resolves orders with.
func TitleByVariation(catalog []types.CatalogItem) map[string]string {
	titles := map[string]string{}
	for _, item := range catalog {
		for _, id := range item.VariationIDs {
			titles[id] = item.Title
		}
	}
	return titles
}
