package export

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"store-insights-go/internal/types"
)

func reportSnapshot() types.Snapshot {
	return types.Snapshot{
		Catalog: []types.CatalogItem{
			{
				ID:           "itm1",
				Title:        "Cold Brew",
				Color:        "#60a5fa",
				Price:        "USD 4.50",
				Money:        &types.Money{Amount: 4.5, Currency: "USD"},
				Description:  "Slow steeped",
				VariationIDs: []string{"v1", "v2"},
				Category:     "Drinks",
			},
			{ID: "itm2", Title: "Tote Bag", VariationIDs: []string{}},
		},
		Orders: []types.Order{
			{
				ID:           "o1",
				CreatedAt:    time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC),
				CustomerID:   "c1",
				ItemID:       "v1",
				ItemName:     "Cold Brew",
				ItemQuantity: "2",
				Money:        &types.Money{Amount: 9, Currency: "USD"},
				Price:        "USD 9.00",
				Source:       "Online Store",
			},
			{ID: "o2"},
		},
		Customers: []types.Customer{
			{
				ID:         "c1",
				GivenName:  "Ada",
				FamilyName: "Lovelace",
				Birthday:   time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC),
				CreatedAt:  time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
				Email:      "ada@example.com",
				Locality:   "Springfield",
				Country:    "US",
			},
			{ID: "c2", GivenName: "Ben"},
		},
	}
}

func TestBuildReportSheets(t *testing.T) {
	f, err := BuildReport(reportSnapshot(), time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("BuildReport: %v", err)
	}

	for _, sheet := range []string{sheetCatalog, sheetOrders, sheetCustomers, sheetRankings, sheetRevenue} {
		idx, err := f.GetSheetIndex(sheet)
		if err != nil {
			t.Fatalf("GetSheetIndex(%s): %v", sheet, err)
		}
		if idx < 0 {
			t.Fatalf("missing sheet %s", sheet)
		}
	}
	// excelize's default sheet must have been renamed, not left alongside.
	if idx, _ := f.GetSheetIndex("Sheet1"); idx >= 0 {
		t.Fatal("default sheet should be renamed to Catalog")
	}

	rows, err := f.GetRows(sheetRankings)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// header + one row per catalog item
	if len(rows) != 3 {
		t.Fatalf("rankings rows = %d, want 3", len(rows))
	}
	if rows[1][0] != "Cold Brew" || rows[1][1] != "2" {
		t.Fatalf("ranking row = %v", rows[1])
	}
}

func TestWriteAndLoadSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.xlsx")
	want := reportSnapshot()

	if err := WriteReport(path, want, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	got, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if len(got.Catalog) != 2 || len(got.Orders) != 2 || len(got.Customers) != 2 {
		t.Fatalf("sizes = %d/%d/%d", len(got.Catalog), len(got.Orders), len(got.Customers))
	}

	item := got.Catalog[0]
	if item.ID != "itm1" || item.Title != "Cold Brew" || item.Category != "Drinks" {
		t.Fatalf("item = %+v", item)
	}
	if len(item.VariationIDs) != 2 || item.VariationIDs[0] != "v1" {
		t.Fatalf("variation ids = %v", item.VariationIDs)
	}
	if item.Money == nil || item.Money.Amount != 4.5 || item.Price != "USD 4.50" {
		t.Fatalf("money = %+v, price = %q", item.Money, item.Price)
	}
	if got.Catalog[1].Money != nil || len(got.Catalog[1].VariationIDs) != 0 {
		t.Fatalf("unpriced item = %+v", got.Catalog[1])
	}

	order := got.Orders[0]
	if !order.CreatedAt.Equal(want.Orders[0].CreatedAt) {
		t.Fatalf("created at = %v", order.CreatedAt)
	}
	if order.ItemID != "v1" || order.ItemQuantity != "2" || order.Source != "Online Store" {
		t.Fatalf("order = %+v", order)
	}
	if order.Money == nil || order.Money.Amount != 9 {
		t.Fatalf("order money = %+v", order.Money)
	}
	if !got.Orders[1].CreatedAt.IsZero() || got.Orders[1].Money != nil {
		t.Fatalf("bare order grew fields: %+v", got.Orders[1])
	}

	customer := got.Customers[0]
	if customer.GivenName != "Ada" || customer.Locality != "Springfield" {
		t.Fatalf("customer = %+v", customer)
	}
	if bd := customer.Birthday.Format("2006-01-02"); bd != "1990-06-15" {
		t.Fatalf("birthday = %q", bd)
	}
	if !got.Customers[1].Birthday.IsZero() {
		t.Fatalf("absent birthday should stay zero, got %v", got.Customers[1].Birthday)
	}
}

func TestLoadSnapshotMissingFile(t *testing.T) {
	if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "nope.xlsx")); err == nil {
		t.Fatal("expected an error for a missing workbook")
	}
}

func TestLoadSnapshotSkipsBlankRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.xlsx")
	if err := WriteReport(path, reportSnapshot(), time.Now()); err != nil {
		t.Fatalf("WriteReport: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	// A note left below the data must not become a phantom record.
	if err := f.SetCellValue(sheetCatalog, "B10", "stray"); err != nil {
		t.Fatalf("SetCellValue: %v", err)
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs: %v", err)
	}
	f.Close()

	snap, err := LoadSnapshot(path)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if len(snap.Catalog) != 2 {
		t.Fatalf("blank-id rows should be skipped, got %d items", len(snap.Catalog))
	}
}
