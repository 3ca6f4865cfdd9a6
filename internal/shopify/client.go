// Package shopify provides the storefront catalog client: the paginated
// variant listing used to build the storefront snapshot, and the stock and
// price mutations the reconciliation driver applies.
package shopify

import (
	"fmt"
	"strings"
	"time"

	"github.com/storeops/possync/internal/config"
	"github.com/storeops/possync/internal/transport"
)

// Remote is the name this client reports in errors and logs.
const Remote = "shopify"

// Item is one storefront variant eligible for reconciliation: it has a SKU
// and a stock-tracking handle. Prices stay as the API's string form until the
// pricing policies parse them, so a malformed price only fails that item's
// price sync.
type Item struct {
	SKU             string
	InventoryItemID int64
	VariantID       int64
	CurrentPrice    string
	CompareAtPrice  string
}

// Client talks to the Shopify Admin API. Listing calls and mutation calls
// carry different timeouts: a mutation hanging for a minute would stall the
// whole sequential run.
type Client struct {
	baseURL    string
	apiVersion string
	locationID string
	pageSize   int

	list   *transport.Client
	mutate *transport.Client
}

// NewClient creates a Shopify client from configuration.
func NewClient(cfg config.Shopify, pageSize int, mutationTimeout time.Duration) *Client {
	auth := &transport.HeaderAuth{
		Header: "X-Shopify-Access-Token",
		Value:  cfg.Token,
	}
	if pageSize <= 0 {
		pageSize = config.DefaultPageSize
	}
	return &Client{
		baseURL:    baseURL(cfg.Store),
		apiVersion: cfg.APIVersion,
		locationID: cfg.LocationID,
		pageSize:   pageSize,
		list:       transport.New(Remote, auth, transport.DefaultTimeout),
		mutate:     transport.New(Remote, auth, mutationTimeout),
	}
}

// baseURL accepts either a bare myshopify domain or a full URL. Tests point
// the client at an httptest server.
func baseURL(store string) string {
	if strings.HasPrefix(store, "http://") || strings.HasPrefix(store, "https://") {
		return strings.TrimSuffix(store, "/")
	}
	return "https://" + strings.TrimSuffix(store, "/")
}

// apiURL builds an Admin API endpoint URL for the configured version.
func (c *Client) apiURL(endpoint string) string {
	return fmt.Sprintf("%s/admin/api/%s/%s", c.baseURL, c.apiVersion, endpoint)
}
