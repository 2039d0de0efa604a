// Package mockstore generates a plausible store snapshot for demo runs and
// tests: a catalog with variations, customers with birthdays, and orders that
// reference real variation and customer ids. All randomness flows through the
// supplied *rand.Rand, so a fixed seed reproduces the same store.
package mockstore

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"store-insights-go/internal/chart"
	"store-insights-go/internal/types"
)

var (
	adjectives = []string{"Rustic", "Sleek", "Handmade", "Small", "Incredible", "Ergonomic", "Practical", "Luxurious", "Refined", "Tasty"}
	materials  = []string{"Steel", "Wooden", "Cotton", "Granite", "Bronze", "Plastic", "Leather", "Ceramic"}
	products   = []string{"Chair", "Lamp", "Mug", "Keyboard", "Bottle", "Scarf", "Notebook", "Candle", "Backpack", "Clock"}
	categories = []string{"Home", "Kitchen", "Office", "Outdoors", "Apparel", "Electronics"}
	firstNames = []string{"Ada", "Ben", "Carmen", "Dmitri", "Elif", "Farah", "Gustav", "Hana", "Ivan", "June", "Kofi", "Lena"}
	lastNames  = []string{"Okafor", "Hansen", "Silva", "Novak", "Tanaka", "Moreau", "Kaur", "Bauer", "Ivanova", "Diaz"}
	localities = []string{"Portland", "Leeds", "Utrecht", "Fremantle", "Tampere", "Galway"}
	sources    = []string{"Brick-and-Mortar", "Online", ""}
)

func newID(rng *rand.Rand) string {
	id, err := uuid.NewRandomFromReader(rng)
	if err != nil {
		// rand.Rand.Read never fails; keep the signature honest anyway.
		return uuid.New().String()
	}
	return id.String()
}

// Catalog generates n products, each with 1-5 variations and a price between
// 1 and 1000 major units.
func Catalog(rng *rand.Rand, n int) []types.CatalogItem {
	items := make([]types.CatalogItem, n)
	for i := range items {
		amount := float64(1 + rng.Intn(1000))
		variations := make([]string, 1+rng.Intn(5))
		for j := range variations {
			variations[j] = "#" + newID(rng)
		}
		title := fmt.Sprintf("%s %s %s",
			adjectives[rng.Intn(len(adjectives))],
			materials[rng.Intn(len(materials))],
			products[rng.Intn(len(products))],
		)
		items[i] = types.CatalogItem{
			ID:           "#" + newID(rng),
			Title:        title,
			Color:        chart.HSLToHex(chart.RandomColor(rng)),
			Price:        fmt.Sprintf("USD %.2f", amount),
			Money:        &types.Money{Amount: amount, Currency: "USD"},
			Description:  fmt.Sprintf("A %s for every day.", title),
			VariationIDs: variations,
			Category:     categories[rng.Intn(len(categories))],
		}
	}
	return items
}

// Customers generates n customers with birthdays between 1950 and 2005.
func Customers(rng *rand.Rand, n int, asOf time.Time) []types.Customer {
	from := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2005, 12, 31, 0, 0, 0, 0, time.UTC)

	customers := make([]types.Customer, n)
	for i := range customers {
		given := firstNames[rng.Intn(len(firstNames))]
		family := lastNames[rng.Intn(len(lastNames))]
		birthday := from.Add(time.Duration(rng.Int63n(int64(to.Sub(from)))))
		customers[i] = types.Customer{
			ID:         newID(rng),
			GivenName:  given,
			FamilyName: family,
			Birthday:   birthday.Truncate(24 * time.Hour),
			CreatedAt:  asOf.AddDate(0, 0, -rng.Intn(30)),
			Email:      fmt.Sprintf("%s.%s%d@example.com", given, family, rng.Intn(1000)),
			Address:    fmt.Sprintf("%d Market Street", 1+rng.Intn(9999)),
			Locality:   localities[rng.Intn(len(localities))],
			PostalCode: fmt.Sprintf("%05d", rng.Intn(100000)),
			Country:    "US",
		}
	}
	return customers
}

// Orders generates n orders, each referencing a real variation of a random
// product and a random customer. Returns nil when there is nothing to
// reference.
func Orders(rng *rand.Rand, catalog []types.CatalogItem, customers []types.Customer, n int, asOf time.Time) []types.Order {
	if len(catalog) == 0 || len(customers) == 0 {
		return nil
	}

	orders := make([]types.Order, n)
	for i := range orders {
		product := catalog[rng.Intn(len(catalog))]
		customer := customers[rng.Intn(len(customers))]
		created := asOf.AddDate(0, 0, -rng.Intn(365))
		orders[i] = types.Order{
			ID:           newID(rng),
			CreatedAt:    created,
			UpdatedAt:    created.Add(time.Duration(rng.Intn(72)) * time.Hour),
			CustomerID:   customer.ID,
			ItemID:       product.VariationIDs[rng.Intn(len(product.VariationIDs))],
			ItemName:     product.Title,
			ItemQuantity: fmt.Sprintf("%d", 1+rng.Intn(10)),
			Money:        product.Money,
			Price:        product.Price,
			Source:       sources[rng.Intn(len(sources))],
		}
	}
	return orders
}

// Snapshot bundles a generated store.
func Snapshot(rng *rand.Rand, items, customers, orders int, asOf time.Time) types.Snapshot {
	catalog := Catalog(rng, items)
	people := Customers(rng, customers, asOf)
	return types.Snapshot{
		Catalog:   catalog,
		Customers: people,
		Orders:    Orders(rng, catalog, people, orders, asOf),
		Merchant: &types.Merchant{
			ID:       newID(rng),
			Name:     "Demo Store",
			Country:  "US",
			Currency: "USD",
		},
	}
}
