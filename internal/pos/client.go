// Package pos provides the point-of-sale catalog client. The POS exposes one
// bulk export call returning the entire inventory; its records are the
// authoritative source for stock quantity and base price.
package pos

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/storeops/possync/internal/config"
	"github.com/storeops/possync/internal/sku"
	"github.com/storeops/possync/internal/transport"
	"github.com/storeops/possync/pkg/logging"
)

// Remote is the name this client reports in errors and logs.
const Remote = "pos"

// Record is the authoritative state for one normalized SKU.
type Record struct {
	Quantity  int
	BasePrice decimal.Decimal
}

// Client fetches the POS bulk export.
type Client struct {
	baseURL   string
	transport *transport.Client
}

// NewClient creates a POS client from configuration. The bulk export is slow
// on large catalogs, so it gets its own generous timeout.
func NewClient(cfg config.POS, timeout time.Duration) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		transport: transport.New(Remote, &transport.QueryAuth{
			Param: "ps",
			Value: cfg.Password,
		}, timeout),
	}
}

// rawRecord defers field decoding so one malformed value cannot fail the
// whole export. The feed is loose about types: IDs and quantities arrive as
// strings or numbers depending on the upstream database column.
type rawRecord struct {
	ID    json.RawMessage `json:"ID"`
	Qua   json.RawMessage `json:"Qua"`
	Price json.RawMessage `json:"Price"`
}

// FetchInventory performs the bulk export and materializes it as a Snapshot
// keyed by normalized SKU.
//
// Individual records missing ID, Qua, or Price, or carrying values that do
// not parse, are dropped rather than fatal: the feed is known to be
// individually lossy. Only a transport failure or unparseable top-level JSON fails
// the snapshot. Duplicate SKUs are last-write-wins and counted as a distinct
// observation.
func (c *Client) FetchInventory(ctx context.Context) (*Snapshot, error) {
	log := logging.FromContext(ctx)
	log.Info().Msg("fetching full inventory from pos")

	url := c.baseURL + "?get=all&output=json&sep=" + "%3B"
	resp, err := c.transport.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var raw []rawRecord
	if err := transport.DecodeResponse(Remote, resp, &raw); err != nil {
		return nil, err
	}

	snapshot := newSnapshot()
	for _, r := range raw {
		id, ok := decodeString(r.ID)
		if !ok {
			snapshot.skipped++
			continue
		}
		quantity, ok := decodeDecimal(r.Qua)
		if !ok {
			snapshot.skipped++
			continue
		}
		price, ok := decodeDecimal(r.Price)
		if !ok {
			snapshot.skipped++
			continue
		}

		key := sku.Normalize(id)
		if key == "" {
			snapshot.skipped++
			continue
		}

		if _, exists := snapshot.records[key]; exists {
			snapshot.duplicates++
			log.Warn().Str("sku", key).Msg("duplicate pos sku, keeping later record")
		}
		snapshot.records[key] = Record{
			Quantity:  int(quantity.IntPart()),
			BasePrice: price,
		}
	}

	log.Info().
		Int("count", snapshot.Len()).
		Int("skipped", snapshot.skipped).
		Int("duplicates", snapshot.duplicates).
		Msg("loaded pos inventory")
	return snapshot, nil
}

// decodeString accepts a JSON string or number and returns it as text.
func decodeString(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	text := strings.TrimSpace(string(raw))
	if text == "" || text == "null" {
		return "", false
	}
	return text, true
}

// decodeDecimal accepts a JSON string or number and parses it as a decimal.
func decodeDecimal(raw json.RawMessage) (decimal.Decimal, bool) {
	text, ok := decodeString(raw)
	if !ok {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}
