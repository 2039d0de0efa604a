package types

import "time"

// Money is a provider monetary amount already converted from minor units
// (cents) to major units. Amount keeps full float precision for arithmetic;
// display rounding happens where strings are built.
type Money struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CatalogItem is one sellable product. Orders reference it indirectly through
// VariationIDs; a variation id belongs to at most one item.
type CatalogItem struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Color        string   `json:"color"`
	Price        string   `json:"price,omitempty"` // display string, e.g. "USD 12.50"
	Money        *Money   `json:"money,omitempty"`
	Description  string   `json:"description"`
	VariationIDs []string `json:"variation_ids"`
	Category     string   `json:"category,omitempty"`
}

// Order is one provider order flattened to its first line item. ItemID is a
// variation id, not a CatalogItem id. ItemQuantity stays string-encoded the
// way the provider delivers it; parsing policy is per consumer.
type Order struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at,omitzero"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
	CustomerID   string    `json:"customer_id,omitempty"`
	ItemID       string    `json:"item_id,omitempty"`
	ItemName     string    `json:"item_name,omitempty"`
	ItemQuantity string    `json:"item_quantity,omitempty"`
	Money        *Money    `json:"money,omitempty"`
	Price        string    `json:"price,omitempty"`
	Source       string    `json:"source,omitempty"`
}

// Customer is one provider customer profile. A zero Birthday means the
// customer never supplied one.
type Customer struct {
	ID         string    `json:"id"`
	GivenName  string    `json:"given_name,omitempty"`
	FamilyName string    `json:"family_name,omitempty"`
	Birthday   time.Time `json:"birthday,omitzero"`
	CreatedAt  time.Time `json:"created_at"`
	Email      string    `json:"email"`
	Address    string    `json:"address,omitempty"`
	Locality   string    `json:"locality,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Country    string    `json:"country,omitempty"`
}

// Merchant identifies the store the snapshot belongs to.
type Merchant struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Country  string `json:"country"`
	Currency string `json:"currency,omitempty"`
}

// Snapshot is one immutable pull of the three collections. Every derived
// dataset is recomputed from scratch from a snapshot; there is no
// incremental update model.
type Snapshot struct {
	Catalog   []CatalogItem `json:"catalog"`
	Orders    []Order       `json:"orders"`
	Customers []Customer    `json:"customers"`
	Merchant  *Merchant     `json:"merchant,omitempty"`
}
