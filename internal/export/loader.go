package export

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"store-insights-go/internal/types"
)

// LoadSnapshot reads the three raw collections back out of a workbook written
// by WriteReport (or hand-assembled in the same layout). Derived sheets are
// ignored; aggregations are always recomputed from the raw records.
func LoadSnapshot(path string) (types.Snapshot, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return types.Snapshot{}, fmt.Errorf("open snapshot: %w", err)
	}
	defer f.Close()

	var snap types.Snapshot
	if snap.Catalog, err = loadCatalog(f); err != nil {
		return types.Snapshot{}, err
	}
	if snap.Orders, err = loadOrders(f); err != nil {
		return types.Snapshot{}, err
	}
	if snap.Customers, err = loadCustomers(f); err != nil {
		return types.Snapshot{}, err
	}
	return snap, nil
}

// dataRows returns a sheet's rows minus the header, each padded to width so
// short trailing rows read as empty cells rather than panicking.
func dataRows(f *excelize.File, sheet string, width int) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", sheet, err)
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	out := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		for len(row) < width {
			row = append(row, "")
		}
		out = append(out, row)
	}
	return out, nil
}

func loadCatalog(f *excelize.File) ([]types.CatalogItem, error) {
	rows, err := dataRows(f, sheetCatalog, 8)
	if err != nil {
		return nil, err
	}
	items := make([]types.CatalogItem, 0, len(rows))
	for _, row := range rows {
		if row[0] == "" {
			continue
		}
		item := types.CatalogItem{
			ID:           row[0],
			Title:        row[1],
			Color:        row[2],
			Description:  row[3],
			VariationIDs: splitList(row[4]),
			Category:     row[7],
		}
		item.Money, item.Price = cellMoney(row[5], row[6])
		items = append(items, item)
	}
	return items, nil
}

func loadOrders(f *excelize.File) ([]types.Order, error) {
	rows, err := dataRows(f, sheetOrders, 10)
	if err != nil {
		return nil, err
	}
	orders := make([]types.Order, 0, len(rows))
	for _, row := range rows {
		if row[0] == "" {
			continue
		}
		order := types.Order{
			ID:           row[0],
			CreatedAt:    cellTime(row[1]),
			UpdatedAt:    cellTime(row[2]),
			CustomerID:   row[3],
			ItemID:       row[4],
			ItemName:     row[5],
			ItemQuantity: row[6],
			Source:       row[9],
		}
		order.Money, order.Price = cellMoney(row[7], row[8])
		orders = append(orders, order)
	}
	return orders, nil
}

func loadCustomers(f *excelize.File) ([]types.Customer, error) {
	rows, err := dataRows(f, sheetCustomers, 10)
	if err != nil {
		return nil, err
	}
	customers := make([]types.Customer, 0, len(rows))
	for _, row := range rows {
		if row[0] == "" {
			continue
		}
		birthday := time.Time{}
		if row[3] != "" {
			if t, err := time.Parse("2006-01-02", row[3]); err == nil {
				birthday = t
			}
		}
		customers = append(customers, types.Customer{
			ID:         row[0],
			GivenName:  row[1],
			FamilyName: row[2],
			Birthday:   birthday,
			CreatedAt:  cellTime(row[4]),
			Email:      row[5],
			Address:    row[6],
			Locality:   row[7],
			PostalCode: row[8],
			Country:    row[9],
		})
	}
	return customers, nil
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func cellMoney(amount, currency string) (*types.Money, string) {
	if amount == "" {
		return nil, ""
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(amount), 64)
	if err != nil {
		return nil, ""
	}
	return &types.Money{Amount: value, Currency: currency},
		fmt.Sprintf("%s %.2f", currency, value)
}

func cellTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
