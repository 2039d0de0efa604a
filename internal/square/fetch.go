package square

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"store-insights-go/internal/normalize"
	"store-insights-go/internal/types"
)

// Catalog pulls the full catalog listing, following pagination cursors until
// the provider stops returning one, and normalizes the stitched objects.
// Malformed records are logged and skipped; the rest of the pull survives.
func (c *Client) Catalog(ctx context.Context) ([]types.CatalogItem, error) {
	var objects []normalize.RawCatalogObject
	cursor := ""
	for {
		params := url.Values{}
		params.Set("types", "ITEM,ITEM_VARIATION,CATEGORY")
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		var page struct {
			Cursor  string                       `json:"cursor"`
			Objects []normalize.RawCatalogObject `json:"objects"`
		}
		if err := c.do(ctx, "GET", "/v2/catalog/list?"+params.Encode(), nil, &page); err != nil {
			return nil, fmt.Errorf("list catalog: %w", err)
		}
		objects = append(objects, page.Objects...)
		if page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}

	items, errs := normalize.Catalog(objects)
	c.logMalformed(errs)
	return items, nil
}

// Orders searches orders across the store's first ten locations.
func (c *Client) Orders(ctx context.Context) ([]types.Order, error) {
	locations, err := c.locations(ctx)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, fmt.Errorf("store has no locations")
	}
	if len(locations) > 10 {
		locations = locations[:10]
	}

	var result struct {
		Orders []normalize.RawOrder `json:"orders"`
	}
	payload := map[string]interface{}{
		"location_ids":   locations,
		"return_entries": false,
	}
	if err := c.do(ctx, "POST", "/v2/orders/search", payload, &result); err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}

	orders, errs := normalize.Orders(result.Orders)
	c.logMalformed(errs)
	return orders, nil
}

// Customers pulls the customer directory.
func (c *Client) Customers(ctx context.Context) ([]types.Customer, error) {
	var result struct {
		Customers []normalize.RawCustomer `json:"customers"`
	}
	if err := c.do(ctx, "GET", "/v2/customers", nil, &result); err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	customers, errs := normalize.Customers(result.Customers)
	c.logMalformed(errs)
	return customers, nil
}

// Merchant pulls the first merchant profile on the account.
func (c *Client) Merchant(ctx context.Context) (*types.Merchant, error) {
	var result struct {
		Merchant []struct {
			ID           string `json:"id"`
			BusinessName string `json:"business_name"`
			Country      string `json:"country"`
			Currency     string `json:"currency"`
		} `json:"merchant"`
	}
	if err := c.do(ctx, "GET", "/v2/merchants", nil, &result); err != nil {
		return nil, fmt.Errorf("get merchant: %w", err)
	}
	if len(result.Merchant) == 0 {
		return nil, nil
	}
	m := result.Merchant[0]
	return &types.Merchant{
		ID:       m.ID,
		Name:     m.BusinessName,
		Country:  m.Country,
		Currency: m.Currency,
	}, nil
}

// Snapshot fetches the three collections and the merchant profile in
// parallel. The first failure wins; a missing merchant is not a failure.
func (c *Client) Snapshot(ctx context.Context) (types.Snapshot, error) {
	var (
		wg   sync.WaitGroup
		snap types.Snapshot
		errs [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		snap.Catalog, errs[0] = c.Catalog(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Orders, errs[1] = c.Orders(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Customers, errs[2] = c.Customers(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.Merchant, errs[3] = c.Merchant(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return types.Snapshot{}, fmt.Errorf("fetch snapshot: %w", err)
		}
	}
	return snap, nil
}

func (c *Client) locations(ctx context.Context) ([]string, error) {
	var result struct {
		Locations []struct {
			ID string `json:"id"`
		} `json:"locations"`
	}
	if err := c.do(ctx, "GET", "/v2/locations", nil, &result); err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	ids := make([]string, len(result.Locations))
	for i, loc := range result.Locations {
		ids[i] = loc.ID
	}
	return ids, nil
}

func (c *Client) logMalformed(errs []error) {
	for _, err := range errs {
		c.log.WithError(err).Warn("skipping malformed provider record")
	}
}
