package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/storeops/possync/internal/transport"
	"github.com/storeops/possync/pkg/errors"
)

type variantUpdateRequest struct {
	Variant variantUpdate `json:"variant"`
}

type variantUpdate struct {
	ID    int64  `json:"id"`
	Price string `json:"price"`
}

// UpdatePrice sets a variant's price through the Admin REST API. The price
// travels as a string, matching how the API returns it.
func (c *Client) UpdatePrice(ctx context.Context, variantID int64, price decimal.Decimal) error {
	body, err := json.Marshal(variantUpdateRequest{
		Variant: variantUpdate{
			ID:    variantID,
			Price: price.String(),
		},
	})
	if err != nil {
		return errors.WrapParse("json", "variant update", err)
	}

	resp, err := c.mutate.Put(ctx, c.apiURL(fmt.Sprintf("variants/%d.json", variantID)), body)
	if err != nil {
		return err
	}
	return transport.DecodeResponse(Remote, resp, nil)
}
