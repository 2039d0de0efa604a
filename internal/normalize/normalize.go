// Package normalize converts raw provider payloads into the canonical record
// shapes. Amounts arrive in minor units (cents) and leave in major units.
// Records missing their required id are reported, never silently dropped and
// never passed through, so downstream joins stay trustworthy.
package normalize

import (
	"fmt"
	"time"

	"store-insights-go/internal/types"
)

// MalformedRecordError marks one provider record that lacked its required
// identity field. Normalization of the rest of the collection continues.
type MalformedRecordError struct {
	Kind  string // "catalog", "order" or "customer"
	Index int    // position in the raw collection
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record at index %d: missing id", e.Kind, e.Index)
}

// RawMoney is a provider amount in minor units.
type RawMoney struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// majorUnits converts a raw provider amount to the canonical Money plus its
// two-decimal display string. The numeric amount keeps full precision; only
// the display string rounds.
func majorUnits(m *RawMoney) (*types.Money, string) {
	if m == nil {
		return nil, ""
	}
	amount := float64(m.Amount) / 100
	display := fmt.Sprintf("%s %.2f", m.Currency, amount)
	return &types.Money{Amount: amount, Currency: m.Currency}, display
}

// RawCatalogObject is one object from the provider catalog listing. The list
// interleaves ITEM, ITEM_VARIATION and CATEGORY objects which have to be
// stitched together by id.
type RawCatalogObject struct {
	ID                string                `json:"id"`
	Type              string                `json:"type"`
	ItemData          *RawItemData          `json:"item_data,omitempty"`
	ItemVariationData *RawItemVariationData `json:"item_variation_data,omitempty"`
	CategoryData      *RawCategoryData      `json:"category_data,omitempty"`
}

type RawItemData struct {
	Name                 string             `json:"name"`
	CategoryID           string             `json:"category_id,omitempty"`
	LabelColor           string             `json:"label_color"`
	DescriptionPlaintext string             `json:"description_plaintext"`
	Variations           []RawItemVariation `json:"variations"`
}

type RawItemVariation struct {
	ItemVariationData struct {
		PriceMoney RawMoney `json:"price_money"`
	} `json:"item_variation_data"`
}

type RawItemVariationData struct {
	ItemID string `json:"item_id"`
}

type RawCategoryData struct {
	Name string `json:"name"`
}

// Catalog stitches the provider's flat object list into CatalogItems: CATEGORY
// objects resolve category names, ITEM objects become items, ITEM_VARIATION
// objects attach their id to the owning item. A variation pointing at an
// unknown item is ignored; an object without an id is reported.
func Catalog(objects []RawCatalogObject) ([]types.CatalogItem, []error) {
	var errs []error

	categories := map[string]string{}
	for _, obj := range objects {
		if obj.Type == "CATEGORY" && obj.CategoryData != nil && obj.ID != "" {
			categories[obj.ID] = obj.CategoryData.Name
		}
	}

	var items []types.CatalogItem
	itemIndex := map[string]int{}
	type variationRef struct {
		variationID string
		itemID      string
	}
	var variations []variationRef

	for i, obj := range objects {
		switch {
		case obj.Type == "ITEM" && obj.ItemData != nil:
			if obj.ID == "" {
				errs = append(errs, &MalformedRecordError{Kind: "catalog", Index: i})
				continue
			}
			item := types.CatalogItem{
				ID:           obj.ID,
				Title:        obj.ItemData.Name,
				Color:        "#" + obj.ItemData.LabelColor,
				Description:  obj.ItemData.DescriptionPlaintext,
				VariationIDs: []string{},
			}
			if len(obj.ItemData.Variations) > 0 {
				item.Money, item.Price = majorUnits(&obj.ItemData.Variations[0].ItemVariationData.PriceMoney)
			}
			if obj.ItemData.CategoryID != "" {
				item.Category = categories[obj.ItemData.CategoryID]
			}
			itemIndex[item.ID] = len(items)
			items = append(items, item)
		case obj.Type == "ITEM_VARIATION" && obj.ItemVariationData != nil:
			if obj.ID == "" {
				errs = append(errs, &MalformedRecordError{Kind: "catalog", Index: i})
				continue
			}
			variations = append(variations, variationRef{variationID: obj.ID, itemID: obj.ItemVariationData.ItemID})
		}
	}

	for _, v := range variations {
		if idx, ok := itemIndex[v.itemID]; ok {
			items[idx].VariationIDs = append(items[idx].VariationIDs, v.variationID)
		}
	}

	return items, errs
}

// RawOrder is one provider order. Only the first line item is carried over,
// matching the dashboard's flattened order shape.
type RawOrder struct {
	ID         string `json:"id"`
	LocationID string `json:"location_id"`
	CustomerID string `json:"customer_id,omitempty"`
	Source     *struct {
		Name string `json:"name,omitempty"`
	} `json:"source,omitempty"`
	LineItems []struct {
		Name            string `json:"name,omitempty"`
		Quantity        string `json:"quantity"`
		CatalogObjectID string `json:"catalog_object_id,omitempty"`
	} `json:"line_items,omitempty"`
	TotalMoney *RawMoney `json:"total_money,omitempty"`
	CreatedAt  string    `json:"created_at"`
	UpdatedAt  string    `json:"updated_at"`
}

// Orders normalizes a provider order list. Unparseable timestamps leave the
// corresponding field zero rather than failing the record.
func Orders(raw []RawOrder) ([]types.Order, []error) {
	var errs []error
	var out []types.Order
	for i, r := range raw {
		if r.ID == "" {
			errs = append(errs, &MalformedRecordError{Kind: "order", Index: i})
			continue
		}
		order := types.Order{
			ID:         r.ID,
			CustomerID: r.CustomerID,
			CreatedAt:  parseTimestamp(r.CreatedAt),
			UpdatedAt:  parseTimestamp(r.UpdatedAt),
		}
		if r.Source != nil {
			order.Source = r.Source.Name
		}
		if len(r.LineItems) > 0 {
			order.ItemID = r.LineItems[0].CatalogObjectID
			order.ItemName = r.LineItems[0].Name
			order.ItemQuantity = r.LineItems[0].Quantity
		}
		order.Money, order.Price = majorUnits(r.TotalMoney)
		out = append(out, order)
	}
	return out, errs
}

// RawCustomer is one provider customer profile.
type RawCustomer struct {
	ID           string `json:"id"`
	GivenName    string `json:"given_name"`
	FamilyName   string `json:"family_name"`
	EmailAddress string `json:"email_address"`
	CreatedAt    string `json:"created_at"`
	Birthday     string `json:"birthday,omitempty"`
	Address      *struct {
		AddressLine1 string `json:"address_line_1,omitempty"`
		Locality     string `json:"locality,omitempty"`
		PostalCode   string `json:"postal_code,omitempty"`
		Country      string `json:"country,omitempty"`
	} `json:"address,omitempty"`
}

// Customers normalizes a provider customer list. A birthday that fails to
// parse as YYYY-MM-DD is treated as absent.
func Customers(raw []RawCustomer) ([]types.Customer, []error) {
	var errs []error
	var out []types.Customer
	for i, r := range raw {
		if r.ID == "" {
			errs = append(errs, &MalformedRecordError{Kind: "customer", Index: i})
			continue
		}
		customer := types.Customer{
			ID:         r.ID,
			GivenName:  r.GivenName,
			FamilyName: r.FamilyName,
			Email:      r.EmailAddress,
			CreatedAt:  parseTimestamp(r.CreatedAt),
			Birthday:   parseBirthday(r.Birthday),
		}
		if r.Address != nil {
			customer.Address = r.Address.AddressLine1
			customer.Locality = r.Address.Locality
			customer.PostalCode = r.Address.PostalCode
			customer.Country = r.Address.Country
		}
		out = append(out, customer)
	}
	return out, errs
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseBirthday(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}
