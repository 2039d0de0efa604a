package mockstore

import (
	"math/rand"
	"testing"
	"time"

	"store-insights-go/internal/types"
)

var asOf = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestSnapshotReferentialIntegrity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	snap := Snapshot(rng, 8, 20, 100, asOf)

	if len(snap.Catalog) != 8 || len(snap.Customers) != 20 || len(snap.Orders) != 100 {
		t.Fatalf("sizes = %d/%d/%d", len(snap.Catalog), len(snap.Customers), len(snap.Orders))
	}
	if snap.Merchant == nil || snap.Merchant.Currency != "USD" {
		t.Fatalf("merchant = %+v", snap.Merchant)
	}

	variations := map[string]struct{}{}
	for _, item := range snap.Catalog {
		if item.ID == "" || item.Title == "" {
			t.Fatalf("incomplete item: %+v", item)
		}
		if item.Money == nil || item.Money.Amount < 1 || item.Money.Amount > 1000 {
			t.Fatalf("price out of range: %+v", item.Money)
		}
		if len(item.VariationIDs) < 1 || len(item.VariationIDs) > 5 {
			t.Fatalf("variation count out of range: %d", len(item.VariationIDs))
		}
		for _, v := range item.VariationIDs {
			variations[v] = struct{}{}
		}
	}

	people := map[string]struct{}{}
	for _, customer := range snap.Customers {
		if customer.Birthday.IsZero() {
			t.Fatal("generated customers always carry a birthday")
		}
		if y := customer.Birthday.Year(); y < 1950 || y > 2005 {
			t.Fatalf("birthday year out of range: %d", y)
		}
		people[customer.ID] = struct{}{}
	}

	for _, order := range snap.Orders {
		if _, ok := variations[order.ItemID]; !ok {
			t.Fatalf("order %s references unknown variation %q", order.ID, order.ItemID)
		}
		if _, ok := people[order.CustomerID]; !ok {
			t.Fatalf("order %s references unknown customer %q", order.ID, order.CustomerID)
		}
		if order.CreatedAt.After(asOf) || order.CreatedAt.Before(asOf.AddDate(0, 0, -365)) {
			t.Fatalf("order created at %v, outside the trailing year", order.CreatedAt)
		}
	}
}

func TestSnapshotSeedDeterminism(t *testing.T) {
	first := Snapshot(rand.New(rand.NewSource(42)), 5, 10, 30, asOf)
	second := Snapshot(rand.New(rand.NewSource(42)), 5, 10, 30, asOf)

	for i := range first.Catalog {
		if first.Catalog[i].ID != second.Catalog[i].ID || first.Catalog[i].Title != second.Catalog[i].Title {
			t.Fatalf("catalog diverged at %d: %q vs %q", i, first.Catalog[i].ID, second.Catalog[i].ID)
		}
	}
	for i := range first.Orders {
		if first.Orders[i].ID != second.Orders[i].ID || first.Orders[i].ItemID != second.Orders[i].ItemID {
			t.Fatalf("orders diverged at %d", i)
		}
	}

	other := Snapshot(rand.New(rand.NewSource(43)), 5, 10, 30, asOf)
	if other.Catalog[0].ID == first.Catalog[0].ID {
		t.Fatal("different seeds should produce different ids")
	}
}

func TestOrdersWithNothingToReference(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := Orders(rng, nil, []types.Customer{{ID: "c1"}}, 5, asOf); got != nil {
		t.Fatalf("no catalog should yield nil, got %d orders", len(got))
	}
	if got := Orders(rng, Catalog(rng, 1), nil, 5, asOf); got != nil {
		t.Fatalf("no customers should yield nil, got %d orders", len(got))
	}
}
