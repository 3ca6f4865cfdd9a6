package shopify

import (
	"context"
	"fmt"
	"strings"

	"github.com/storeops/possync/internal/transport"
	"github.com/storeops/possync/pkg/logging"
)

// Listing response structures for the Admin REST API.
type productsResponse struct {
	Products []product `json:"products"`
}

type product struct {
	ID       int64     `json:"id"`
	Variants []variant `json:"variants"`
}

type variant struct {
	ID              int64   `json:"id"`
	SKU             string  `json:"sku"`
	InventoryItemID int64   `json:"inventory_item_id"`
	Price           string  `json:"price"`
	CompareAtPrice  *string `json:"compare_at_price"`
}

// ListItems pages through the product listing and returns one Item per
// variant that carries both a SKU and an inventory item handle; variants
// missing either cannot be reconciled and are silently excluded.
//
// The snapshot is all-or-nothing: any transport or top-level parse failure
// mid-pagination returns an error and no items, because a partial storefront
// listing cannot be distinguished from a complete one.
func (c *Client) ListItems(ctx context.Context) ([]Item, error) {
	log := logging.FromContext(ctx)

	var items []Item
	url := c.apiURL(fmt.Sprintf("products.json?limit=%d", c.pageSize))

	for url != "" {
		resp, err := c.list.Get(ctx, url)
		if err != nil {
			return nil, err
		}
		link := resp.Header.Get("Link")

		var page productsResponse
		if err := transport.DecodeResponse(Remote, resp, &page); err != nil {
			return nil, err
		}

		for _, p := range page.Products {
			for _, v := range p.Variants {
				if v.SKU == "" || v.InventoryItemID == 0 {
					continue
				}
				item := Item{
					SKU:             v.SKU,
					InventoryItemID: v.InventoryItemID,
					VariantID:       v.ID,
					CurrentPrice:    v.Price,
				}
				if v.CompareAtPrice != nil {
					item.CompareAtPrice = *v.CompareAtPrice
				}
				items = append(items, item)
			}
		}

		url = nextPageURL(link)
	}

	log.Info().Int("count", len(items)).Msg("retrieved storefront variants")
	return items, nil
}

// nextPageURL extracts the rel="next" target from a Link response header.
// An absent or next-less header ends pagination.
func nextPageURL(header string) string {
	if header == "" || !strings.Contains(header, `rel="next"`) {
		return ""
	}
	for _, part := range strings.Split(header, ",") {
		if !strings.Contains(part, `rel="next"`) {
			continue
		}
		urlPart, _, _ := strings.Cut(part, ";")
		return strings.Trim(strings.TrimSpace(urlPart), "<>")
	}
	return ""
}
