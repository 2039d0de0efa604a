package insights

import (
	"strings"
	"testing"
	"time"

	"store-insights-go/internal/types"
)

func fullSnapshot() types.Snapshot {
	return types.Snapshot{
		Catalog: []types.CatalogItem{
			{ID: "A", Title: "Widget", VariationIDs: []string{"vA"}},
			{ID: "B", Title: "Gadget", VariationIDs: []string{"vB"}},
		},
		Orders: []types.Order{
			{ID: "o1", ItemID: "vA", ItemQuantity: "5", CustomerID: "c1",
				Money:     &types.Money{Amount: 20, Currency: "USD"},
				CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "o2", ItemID: "vB", ItemQuantity: "1", CustomerID: "c2",
				Money:     &types.Money{Amount: 5, Currency: "USD"},
				CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		},
		Customers: []types.Customer{
			{ID: "c1", Birthday: time.Date(1994, 6, 1, 0, 0, 0, 0, time.UTC)},
			{ID: "c2", Birthday: time.Date(1995, 6, 1, 0, 0, 0, 0, time.UTC)},
		},
	}
}

func TestGenerateFullSnapshot(t *testing.T) {
	asOf := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	cards := Generate(fullSnapshot(), asOf)
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}

	if !strings.Contains(cards[0].Insight, "Widget") {
		t.Fatalf("popular-item card = %+v", cards[0])
	}
	if cards[0].Detail != "5 units sold" {
		t.Fatalf("popular-item detail = %q", cards[0].Detail)
	}
	if !strings.Contains(cards[0].Prompt, "Widget") {
		t.Fatalf("prompt should name the item: %q", cards[0].Prompt)
	}

	if !strings.Contains(cards[1].Insight, "25-34") {
		t.Fatalf("age card = %+v", cards[1])
	}
	if cards[1].Detail != "2 customers in this group" {
		t.Fatalf("age detail = %q", cards[1].Detail)
	}

	if !strings.Contains(cards[2].Insight, "2024-02") {
		t.Fatalf("revenue card = %+v", cards[2])
	}
	if cards[2].Detail != "100.00 in revenue" {
		t.Fatalf("revenue detail = %q", cards[2].Detail)
	}
}

func TestGenerateOmitsSectionsWithoutData(t *testing.T) {
	cards := Generate(types.Snapshot{}, time.Now())
	if len(cards) != 0 {
		t.Fatalf("empty snapshot should yield no cards, got %+v", cards)
	}

	// Orders without timestamps still rank a popular item but produce no
	// revenue card.
	snap := types.Snapshot{
		Catalog: []types.CatalogItem{{ID: "A", Title: "Widget", VariationIDs: []string{"vA"}}},
		Orders:  []types.Order{{ID: "o1", ItemID: "vA", ItemQuantity: "1"}},
	}
	cards = Generate(snap, time.Now())
	if len(cards) != 1 {
		t.Fatalf("expected only the popular-item card, got %d", len(cards))
	}
	if !strings.Contains(cards[0].Insight, "Widget") {
		t.Fatalf("unexpected card: %+v", cards[0])
	}
}
