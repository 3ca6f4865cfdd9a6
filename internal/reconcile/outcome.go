package reconcile

// StockStatus classifies the stock half of one item's reconciliation.
type StockStatus string

// Stock statuses.
const (
	// StockSynced means the on-hand quantity was set to the authoritative value.
	StockSynced StockStatus = "synced"
	// StockUnmatched means the storefront SKU has no authoritative record.
	StockUnmatched StockStatus = "unmatched"
	// StockFailed means the mutation failed (transport or business rejection).
	StockFailed StockStatus = "failed"
	// StockSkipped means stock sync was disabled for this run.
	StockSkipped StockStatus = "skipped"
)

// PriceStatus classifies the price half of one item's reconciliation.
type PriceStatus string

// Price statuses.
const (
	// PriceUpdated means the storefront price was rewritten to the target.
	PriceUpdated PriceStatus = "updated"
	// PriceSkippedDiscount means an active markdown suppressed the price sync.
	PriceSkippedDiscount PriceStatus = "skipped_discount"
	// PriceSkippedAtTarget means the current price is already at or above target.
	PriceSkippedAtTarget PriceStatus = "skipped_at_target"
	// PriceParseError means the storefront's current price did not parse.
	PriceParseError PriceStatus = "parse_error"
	// PriceFailed means the mutation failed (transport or business rejection).
	PriceFailed PriceStatus = "failed"
	// PriceSkipped means price sync did not apply (unmatched item or disabled).
	PriceSkipped PriceStatus = "skipped"
)

// StockResult is the stock outcome for one storefront item.
type StockResult struct {
	Status   StockStatus `json:"status" yaml:"status"`
	Quantity int         `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	Error    string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// PriceResult is the price outcome for one storefront item.
type PriceResult struct {
	Status   PriceStatus `json:"status" yaml:"status"`
	OldPrice string      `json:"old_price,omitempty" yaml:"old_price,omitempty"`
	NewPrice string      `json:"new_price,omitempty" yaml:"new_price,omitempty"`
	Error    string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// Outcome is the terminal result for one storefront item in one pass. It is
// a value, never an error: failures are folded into the result so one item
// can never abort the processing of the rest.
type Outcome struct {
	SKU   string      `json:"sku" yaml:"sku"`
	Stock StockResult `json:"stock" yaml:"stock"`
	Price PriceResult `json:"price" yaml:"price"`
}
