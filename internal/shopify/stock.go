package shopify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/storeops/possync/internal/transport"
	"github.com/storeops/possync/pkg/errors"
)

// inventorySetMutation sets the absolute on-hand quantity for an inventory
// item at one location. Business-rule rejections come back as userErrors
// inside a 200 response.
const inventorySetMutation = `
mutation inventorySetOnHandQuantities($input: InventorySetOnHandQuantitiesInput!) {
  inventorySetOnHandQuantities(input: $input) {
    userErrors {
      field
      message
    }
    inventoryAdjustmentGroup {
      createdAt
    }
  }
}`

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type userError struct {
	Field   []string `json:"field"`
	Message string   `json:"message"`
}

type inventorySetResponse struct {
	Data struct {
		InventorySetOnHandQuantities struct {
			UserErrors []userError `json:"userErrors"`
		} `json:"inventorySetOnHandQuantities"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// SetOnHandQuantity sets the absolute stock level for an inventory item at
// the configured location. A transport failure is an APIError; a userErrors
// response is a RejectionError with the remote's reasons.
func (c *Client) SetOnHandQuantity(ctx context.Context, inventoryItemID int64, quantity int) error {
	body, err := json.Marshal(graphqlRequest{
		Query: inventorySetMutation,
		Variables: map[string]any{
			"input": map[string]any{
				"reason": "correction",
				"setQuantities": []map[string]any{
					{
						"inventoryItemId": fmt.Sprintf("gid://shopify/InventoryItem/%d", inventoryItemID),
						"locationId":      fmt.Sprintf("gid://shopify/Location/%s", c.locationID),
						"quantity":        quantity,
					},
				},
			},
		},
	})
	if err != nil {
		return errors.WrapParse("json", "inventory mutation", err)
	}

	resp, err := c.mutate.Post(ctx, c.apiURL("graphql.json"), body)
	if err != nil {
		return err
	}

	var result inventorySetResponse
	if err := transport.DecodeResponse(Remote, resp, &result); err != nil {
		return err
	}

	if len(result.Errors) > 0 {
		reasons := make([]string, 0, len(result.Errors))
		for _, e := range result.Errors {
			reasons = append(reasons, e.Message)
		}
		return errors.NewRejectionError(Remote, "stock update", reasons)
	}
	if ue := result.Data.InventorySetOnHandQuantities.UserErrors; len(ue) > 0 {
		reasons := make([]string, 0, len(ue))
		for _, e := range ue {
			reasons = append(reasons, e.Message)
		}
		return errors.NewRejectionError(Remote, "stock update", reasons)
	}
	return nil
}
