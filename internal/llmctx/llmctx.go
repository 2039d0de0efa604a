// Package llmctx flattens a store snapshot into the compact pipe-delimited
// text block the assistant feeds to the language model as ground truth. Only
// the first records of each collection are included to keep prompts bounded.
package llmctx

import (
	"strings"
	"time"

	"store-insights-go/internal/types"
)

// MaxRecords caps how many records of each collection enter the context.
const MaxRecords = 15

// Build serializes the snapshot's three collections. Field order matches the
// dashboard's historical prompt format; absent values serialize as empty
// columns.
func Build(snap types.Snapshot) string {
	var b strings.Builder

	b.WriteString("List of store products with fields {id, variationIds, title, description, price, category}:\n")
	for _, item := range head(snap.Catalog) {
		writeRow(&b,
			item.ID,
			strings.Join(item.VariationIDs, ","),
			item.Title,
			item.Description,
			item.Price,
			item.Category,
		)
	}

	b.WriteString("List of store customers with fields {id, givenName, familyName, birthday, email, address, locality, country, postalCode}:\n")
	for _, customer := range head(snap.Customers) {
		writeRow(&b,
			customer.ID,
			customer.GivenName,
			customer.FamilyName,
			formatDate(customer.Birthday),
			customer.Email,
			customer.Address,
			customer.Locality,
			customer.Country,
			customer.PostalCode,
		)
	}

	b.WriteString("List of store orders with fields {createdAt, customerId, itemId, itemName, itemQuantity, price, source}:\n")
	for _, order := range head(snap.Orders) {
		writeRow(&b,
			formatTimestamp(order.CreatedAt),
			order.CustomerID,
			order.ItemID,
			order.ItemName,
			order.ItemQuantity,
			order.Price,
			order.Source,
		)
	}

	return b.String()
}

func head[T any](records []T) []T {
	if len(records) > MaxRecords {
		return records[:MaxRecords]
	}
	return records
}

func writeRow(b *strings.Builder, fields ...string) {
	b.WriteString(strings.Join(fields, " | "))
	b.WriteByte('\n')
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
