// Package reconcile joins the storefront and point-of-sale snapshots by
// normalized SKU and drives the per-item stock and price sync, producing a
// structured report of every outcome.
package reconcile

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/storeops/possync/internal/config"
	"github.com/storeops/possync/internal/pos"
	"github.com/storeops/possync/internal/pricing"
	"github.com/storeops/possync/internal/shopify"
	"github.com/storeops/possync/internal/sku"
	"github.com/storeops/possync/pkg/logging"
)

// Storefront is the slice of the storefront API the driver needs.
type Storefront interface {
	ListItems(ctx context.Context) ([]shopify.Item, error)
	SetOnHandQuantity(ctx context.Context, inventoryItemID int64, quantity int) error
	UpdatePrice(ctx context.Context, variantID int64, price decimal.Decimal) error
}

// Authority is the slice of the point-of-sale API the driver needs.
type Authority interface {
	FetchInventory(ctx context.Context) (*pos.Snapshot, error)
}

// Options tune one reconciliation pass.
type Options struct {
	// DryRun computes every outcome without issuing mutations.
	DryRun bool
	// SkipStock disables the stock half of the sync.
	SkipStock bool
	// SkipPrice disables the price half of the sync.
	SkipPrice bool
	// Pacing sets the spacing between items and between the stock and
	// price calls for one item.
	Pacing config.Pacing
}

// Reconciler runs one sequential pass over the storefront catalog. It owns
// no state between runs; idempotence comes from the price target tolerance,
// not from history.
type Reconciler struct {
	storefront Storefront
	authority  Authority
	opts       Options

	items *pacer
	subOp *pacer
}

// New creates a Reconciler.
func New(storefront Storefront, authority Authority, opts Options) *Reconciler {
	return &Reconciler{
		storefront: storefront,
		authority:  authority,
		opts:       opts,
		items:      newPacer(opts.Pacing.ItemInterval),
		subOp:      newPacer(opts.Pacing.SubOpInterval),
	}
}

// Run builds both snapshots and reconciles every storefront item, one at a
// time, stock before price. A snapshot that fails to build aborts the run
// before any mutation; after that point failures stay inside their item's
// outcome. The returned report is complete unless the context is canceled,
// in which case Run returns what it had along with the context error.
func (r *Reconciler) Run(ctx context.Context) (*Report, error) {
	runID := uuid.NewString()
	ctx = logging.WithRunID(ctx, runID)
	log := logging.FromContext(ctx)

	items, err := r.storefront.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	snapshot, err := r.authority.FetchInventory(ctx)
	if err != nil {
		return nil, err
	}

	report := newReport(runID, r.opts.DryRun)
	report.StorefrontCount = len(items)
	report.AuthoritativeCount = snapshot.Len()
	report.DuplicateSKUs = snapshot.Duplicates()
	report.MalformedRecords = snapshot.Skipped()

	log.Info().
		Int("storefront", len(items)).
		Int("authoritative", snapshot.Len()).
		Msg("comparing catalogs")

	for _, item := range items {
		if err := r.items.Wait(ctx); err != nil {
			report.finish()
			return report, err
		}
		report.add(r.reconcileItem(ctx, item, snapshot))
	}

	report.finish()
	log.Info().
		Int("updated", report.Summary.PriceUpdated).
		Int("unmatched", report.Summary.Unmatched).
		Int("failed", report.Summary.StockFailed+report.Summary.PriceFailed).
		Msg("reconciliation pass complete")
	return report, nil
}

// reconcileItem walks one item through its terminal states: normalize,
// lookup, stock sync, price sync. Stock is attempted unconditionally for a
// matched item; the price policies never affect it.
func (r *Reconciler) reconcileItem(ctx context.Context, item shopify.Item, snapshot *pos.Snapshot) Outcome {
	ctx = logging.WithSKU(ctx, item.SKU)
	log := logging.FromContext(ctx)

	outcome := Outcome{SKU: item.SKU}

	record, ok := snapshot.Lookup(sku.Normalize(item.SKU))
	if !ok {
		outcome.Stock = StockResult{Status: StockUnmatched}
		outcome.Price = PriceResult{Status: PriceSkipped}
		log.Warn().Msg("no match in pos inventory")
		return outcome
	}

	outcome.Stock = r.syncStock(ctx, item, record)

	if err := r.subOp.Wait(ctx); err != nil {
		outcome.Price = PriceResult{Status: PriceSkipped, Error: err.Error()}
		return outcome
	}

	outcome.Price = r.syncPrice(ctx, item, record)
	return outcome
}

// syncStock sets the storefront quantity to the authoritative value.
func (r *Reconciler) syncStock(ctx context.Context, item shopify.Item, record pos.Record) StockResult {
	if r.opts.SkipStock {
		return StockResult{Status: StockSkipped}
	}
	log := logging.FromContext(ctx)

	if !r.opts.DryRun {
		if err := r.storefront.SetOnHandQuantity(ctx, item.InventoryItemID, record.Quantity); err != nil {
			log.Error().Err(err).Msg("stock update failed")
			return StockResult{Status: StockFailed, Error: err.Error()}
		}
	}
	log.Info().Int("quantity", record.Quantity).Msg("stock synced")
	return StockResult{Status: StockSynced, Quantity: record.Quantity}
}

// syncPrice applies the discount guard and the target calculator, then the
// mutation if one is needed.
func (r *Reconciler) syncPrice(ctx context.Context, item shopify.Item, record pos.Record) PriceResult {
	if r.opts.SkipPrice {
		return PriceResult{Status: PriceSkipped}
	}
	log := logging.FromContext(ctx)

	current, parseErr := decimal.NewFromString(strings.TrimSpace(item.CurrentPrice))
	if parseErr == nil && pricing.IsDiscounted(current, item.CompareAtPrice) {
		log.Info().
			Str("current", item.CurrentPrice).
			Str("compare_at", item.CompareAtPrice).
			Msg("active discount, price sync suppressed")
		return PriceResult{Status: PriceSkippedDiscount}
	}

	decision, err := pricing.ComputeTarget(record.BasePrice, item.CurrentPrice)
	if err != nil {
		log.Error().Err(err).Str("current", item.CurrentPrice).Msg("cannot parse current price")
		return PriceResult{Status: PriceParseError, Error: err.Error()}
	}
	if decision.Skip() {
		log.Debug().Str("target", decision.Target.String()).Msg("price already at target")
		return PriceResult{Status: PriceSkippedAtTarget}
	}

	if !r.opts.DryRun {
		if err := r.storefront.UpdatePrice(ctx, item.VariantID, decision.Target); err != nil {
			log.Error().Err(err).Msg("price update failed")
			return PriceResult{Status: PriceFailed, Error: err.Error()}
		}
	}
	log.Info().
		Str("old", item.CurrentPrice).
		Str("new", decision.Target.String()).
		Msg("price updated")
	return PriceResult{
		Status:   PriceUpdated,
		OldPrice: item.CurrentPrice,
		NewPrice: decision.Target.String(),
	}
}
