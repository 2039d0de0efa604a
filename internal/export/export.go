// Package export writes a store snapshot plus its derived rankings to a
// spreadsheet workbook, and reads the raw collections back for offline runs
// without provider credentials.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"store-insights-go/internal/ranking"
	"store-insights-go/internal/timeseries"
	"store-insights-go/internal/types"
)

const (
	sheetCatalog   = "Catalog"
	sheetOrders    = "Orders"
	sheetCustomers = "Customers"
	sheetRankings  = "Rankings"
	sheetRevenue   = "Monthly Revenue"
)

// BuildReport assembles the workbook in memory. Callers either save it to a
// path or stream it over HTTP.
func BuildReport(snap types.Snapshot, asOf time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := writeCatalog(f, snap.Catalog); err != nil {
		return nil, err
	}
	if err := writeOrders(f, snap.Orders); err != nil {
		return nil, err
	}
	if err := writeCustomers(f, snap.Customers); err != nil {
		return nil, err
	}
	if err := writeRankings(f, snap, asOf); err != nil {
		return nil, err
	}
	if err := writeRevenue(f, snap.Orders); err != nil {
		return nil, err
	}

	// The default sheet excelize creates is replaced by Catalog above.
	return f, nil
}

// WriteReport builds the workbook and saves it to path.
func WriteReport(path string, snap types.Snapshot, asOf time.Time) error {
	f, err := BuildReport(snap, asOf)
	if err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, name string, header []string, rows [][]interface{}) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("sheet %s: %w", name, err)
	}
	if idx < 0 {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("sheet %s: %w", name, err)
		}
	}
	head := make([]interface{}, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(name, "A1", &head); err != nil {
		return fmt.Errorf("sheet %s header: %w", name, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("sheet %s row %d: %w", name, i, err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("sheet %s row %d: %w", name, i, err)
		}
	}
	return nil
}

func writeCatalog(f *excelize.File, catalog []types.CatalogItem) error {
	// Reuse the workbook's default sheet for the first section.
	defaultName := f.GetSheetName(0)
	if defaultName != sheetCatalog {
		if err := f.SetSheetName(defaultName, sheetCatalog); err != nil {
			return fmt.Errorf("rename default sheet: %w", err)
		}
	}
	rows := make([][]interface{}, len(catalog))
	for i, item := range catalog {
		amount, currency := "", ""
		if item.Money != nil {
			amount = fmt.Sprintf("%v", item.Money.Amount)
			currency = item.Money.Currency
		}
		rows[i] = []interface{}{
			item.ID, item.Title, item.Color, item.Description,
			strings.Join(item.VariationIDs, ","), amount, currency, item.Category,
		}
	}
	return writeSheet(f, sheetCatalog,
		[]string{"ID", "Title", "Color", "Description", "Variation IDs", "Amount", "Currency", "Category"},
		rows)
}

func writeOrders(f *excelize.File, orders []types.Order) error {
	rows := make([][]interface{}, len(orders))
	for i, order := range orders {
		amount, currency := "", ""
		if order.Money != nil {
			amount = fmt.Sprintf("%v", order.Money.Amount)
			currency = order.Money.Currency
		}
		rows[i] = []interface{}{
			order.ID, formatTime(order.CreatedAt), formatTime(order.UpdatedAt),
			order.CustomerID, order.ItemID, order.ItemName, order.ItemQuantity,
			amount, currency, order.Source,
		}
	}
	return writeSheet(f, sheetOrders,
		[]string{"ID", "Created At", "Updated At", "Customer ID", "Item ID", "Item Name", "Quantity", "Amount", "Currency", "Source"},
		rows)
}

func writeCustomers(f *excelize.File, customers []types.Customer) error {
	rows := make([][]interface{}, len(customers))
	for i, customer := range customers {
		birthday := ""
		if !customer.Birthday.IsZero() {
			birthday = customer.Birthday.Format("2006-01-02")
		}
		rows[i] = []interface{}{
			customer.ID, customer.GivenName, customer.FamilyName, birthday,
			formatTime(customer.CreatedAt), customer.Email, customer.Address,
			customer.Locality, customer.PostalCode, customer.Country,
		}
	}
	return writeSheet(f, sheetCustomers,
		[]string{"ID", "Given Name", "Family Name", "Birthday", "Created At", "Email", "Address", "Locality", "Postal Code", "Country"},
		rows)
}

func writeRankings(f *excelize.File, snap types.Snapshot, asOf time.Time) error {
	tableRows := ranking.Rows(snap.Catalog, snap.Orders, snap.Customers, asOf)
	rows := make([][]interface{}, len(tableRows))
	for i, row := range tableRows {
		rows[i] = []interface{}{
			row.Item.Title, row.TotalQuantitySold, row.TotalSalesValue, row.MostCommonAges,
		}
	}
	return writeSheet(f, sheetRankings,
		[]string{"Product", "Units Sold", "Total Sales", "Most Popular w/ Ages"},
		rows)
}

func writeRevenue(f *excelize.File, orders []types.Order) error {
	points := timeseries.MonthlyRevenue(orders)
	rows := make([][]interface{}, len(points))
	for i, p := range points {
		rows[i] = []interface{}{p.Period, p.Revenue}
	}
	return writeSheet(f, sheetRevenue, []string{"Period", "Revenue"}, rows)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
