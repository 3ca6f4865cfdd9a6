package reconcile_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/storeops/possync/internal/pos"
	"github.com/storeops/possync/internal/reconcile"
	"github.com/storeops/possync/internal/shopify"
	pkgerrors "github.com/storeops/possync/pkg/errors"
)

type stockCall struct {
	inventoryItemID int64
	quantity        int
}

type priceCall struct {
	variantID int64
	price     string
}

// fakeStorefront implements reconcile.Storefront with canned data and
// scriptable failures.
type fakeStorefront struct {
	items    []shopify.Item
	listErr  error
	stockErr map[int64]error
	priceErr map[int64]error

	stockCalls []stockCall
	priceCalls []priceCall
}

func (f *fakeStorefront) ListItems(_ context.Context) ([]shopify.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.items, nil
}

func (f *fakeStorefront) SetOnHandQuantity(_ context.Context, inventoryItemID int64, quantity int) error {
	f.stockCalls = append(f.stockCalls, stockCall{inventoryItemID, quantity})
	return f.stockErr[inventoryItemID]
}

func (f *fakeStorefront) UpdatePrice(_ context.Context, variantID int64, price decimal.Decimal) error {
	f.priceCalls = append(f.priceCalls, priceCall{variantID, price.String()})
	return f.priceErr[variantID]
}

// fakeAuthority implements reconcile.Authority.
type fakeAuthority struct {
	snapshot *pos.Snapshot
	err      error
}

func (f *fakeAuthority) FetchInventory(_ context.Context) (*pos.Snapshot, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.snapshot, nil
}

func record(t *testing.T, quantity int, basePrice string) pos.Record {
	t.Helper()
	price, err := decimal.NewFromString(basePrice)
	require.NoError(t, err)
	return pos.Record{Quantity: quantity, BasePrice: price}
}

func run(t *testing.T, storefront *fakeStorefront, authority *fakeAuthority, opts reconcile.Options) *reconcile.Report {
	t.Helper()
	report, err := reconcile.New(storefront, authority, opts).Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report)
	return report
}

func TestRunJoinsOnNormalizedSKU(t *testing.T) {
	storefront := &fakeStorefront{items: []shopify.Item{
		{SKU: "MATCH-1\n", InventoryItemID: 101, VariantID: 11, CurrentPrice: "100.00"},
		{SKU: "MATCH-2", InventoryItemID: 102, VariantID: 12, CurrentPrice: "115.00"},
		{SKU: "LONELY", InventoryItemID: 103, VariantID: 13, CurrentPrice: "10.00"},
	}}
	authority := &fakeAuthority{snapshot: pos.SnapshotFromRecords(map[string]pos.Record{
		"MATCH-1": record(t, 5, "100.00"),
		"MATCH-2": record(t, 8, "100.00"),
		"UNSEEN":  record(t, 1, "1.00"),
	})}

	report := run(t, storefront, authority, reconcile.Options{})

	require.Len(t, report.Outcomes, 3)
	assert.Equal(t, 3, report.StorefrontCount)
	assert.Equal(t, 3, report.AuthoritativeCount)

	// M=3 storefront, K=2 matches: exactly 2 sync, 1 unmatched.
	assert.Equal(t, 2, report.Summary.StockSynced)
	assert.Equal(t, 1, report.Summary.Unmatched)
	assert.Len(t, storefront.stockCalls, 2)

	lonely := report.Outcomes[2]
	assert.Equal(t, "LONELY", lonely.SKU)
	assert.Equal(t, reconcile.StockUnmatched, lonely.Stock.Status)
	assert.Equal(t, reconcile.PriceSkipped, lonely.Price.Status)
}

func TestRunStockSyncedToAuthoritativeQuantity(t *testing.T) {
	storefront := &fakeStorefront{items: []shopify.Item{
		{SKU: "A", InventoryItemID: 101, VariantID: 11, CurrentPrice: "115.00"},
	}}
	authority := &fakeAuthority{snapshot: pos.SnapshotFromRecords(map[string]pos.Record{
		"A": record(t, 42, "100.00"),
	})}

	report := run(t, storefront, authority, reconcile.Options{})

	require.Len(t, storefront.stockCalls, 1)
	assert.Equal(t, stockCall{101, 42}, storefront.stockCalls[0])
	assert.Equal(t, reconcile.StockSynced, report.Outcomes[0].Stock.Status)
	assert.Equal(t, 42, report.Outcomes[0].Stock.Quantity)
	// 100 * 1.15 = 115, current 115 -> already at target.
	assert.Equal(t, reconcile.PriceSkippedAtTarget, report.Outcomes[0].Price.Status)
	assert.Empty(t, storefront.priceCalls)
}

func TestRunPriceUpdatedToTarget(t *testing.T) {
	storefront := &fakeStorefront{items: []shopify.Item{
		{SKU: "A", InventoryItemID: 101, VariantID: 11, CurrentPrice: "100.00"},
	}}
	authority := &fakeAuthority{snapshot: pos.SnapshotFromRecords(map[string]pos.Record{
		"A": record(t, 1, "100.00"),
	})}

	report := run(t, storefront, authority, reconcile.Options{})

	require.Len(t, storefront.priceCalls, 1)
	assert.Equal(t, priceCall{11, "115"}, storefront.priceCalls[0])

	price := report.Outcomes[0].Price
	assert.Equal(t, reconcile.PriceUpdated, price.Status)
	assert.Equal(t, "100.00", price.OldPrice)
	assert.Equal(t, "115", price.NewPrice)
}

func TestRunDiscountSuppressesPriceSync(t *testing.T) {
	storefront := &fakeStorefront{items: []shopify.Item{
		{SKU: "A", InventoryItemID: 101, VariantID: 11, CurrentPrice: "90.00", CompareAtPrice: "120.00"},
	}}
	// Authoritative price would demand an update; the discount must win.
	authority := &fakeAuthority{snapshot: pos.SnapshotFromRecords(map[string]pos.Record{
		"A": record(t, 3, "500.00"),
	})}

	report := run(t, storefront, authority, reconcile.Options{})

	assert.Equal(t, reconcile.PriceSkippedDiscount, report.Outcomes[0].Price.Status)
	assert.Empty(t, storefront.priceCalls)
	// Stock still synced regardless of price policy.
	assert.Equal(t, reconcile.StockSynced, report.Outcomes[0].Stock.Status)
}

func TestRunPriceParseErrorIsolated(t *testing.T) {
	storefront := &fakeStorefront{items: []shopify.Item{
		{SKU: "A", InventoryItemID: 101, VariantID: 11, CurrentPrice: "not-a-price"},
		{SKU: "B", InventoryItemID: 102, VariantID: 12, CurrentPrice: "100.00"},
	}}
	authority := &fakeAuthority{snapshot: pos.SnapshotFromRecords(map[string]pos.Record{
		"A": record(t, 1, "100.00"),
		"B": record(t, 2, "100.00"),
	})}

	report := run(t, storefront, authority, reconcile.Options{})

	assert.Equal(t, reconcile.PriceParseError, report.Outcomes[0].Price.Status)
	assert.Equal(t, reconcile.StockSynced, report.Outcomes[0].Stock.Status)
	// The next item still processes normally.
	assert.Equal(t, reconcile.PriceUpdated, report.Outcomes[1].Price.Status)
}

func TestRunStockFailureDoesNotAbort(t *testing.T) {
	storefront := &fakeStorefront{
		items: []shopify.Item{
			{SKU: "A", InventoryItemID: 101, VariantID: 11, CurrentPrice: "100.00"},
			{SKU: "B", InventoryItemID: 102, VariantID: 12, CurrentPrice: "100.00"},
		},
		stockErr: map[int64]error{
			101: pkgerrors.NewRejectionError("shopify", "stock update", []string{"not stocked at location"}),
		},
	}
	authority := &fakeAuthority{snapshot: pos.SnapshotFromRecords(map[string]pos.Record{
		"A": record(t, 1, "100.00"),
		"B": record(t, 2, "100.00"),
	})}

	report := run(t, storefront, authority, reconcile.Options{})

	first := report.Outcomes[0]
	assert.Equal(t, reconcile.StockFailed, first.Stock.Status)
	assert.Contains(t, first.Stock.Error, "not stocked at location")
	// Price sync for the same item still ran.
	assert.Equal(t, reconcile.PriceUpdated, first.Price.Status)
	// And the run continued.
	assert.Equal(t, reconcile.StockSynced, report.Outcomes[1].Stock.Status)
	assert.Equal(t, 1, report.Summary.StockFailed)
}

func TestRunPriceFailureReported(t *testing.T) {
	storefront := &fakeStorefront{
		items: []shopify.Item{
			{SKU: "A", InventoryItemID: 101, VariantID: 11, CurrentPrice: "100.00"},
		},
		priceErr: map[int64]error{
			11: pkgerrors.NewAPIError("shopify", 500, "boom"),
		},
	}
	authority := &fakeAuthority{snapshot: pos.SnapshotFromRecords(map[string]pos.Record{
		"A": record(t, 1, "100.00"),
	})}

	report := run(t, storefront, authority, reconcile.Options{})

	assert.Equal(t, reconcile.PriceFailed, report.Outcomes[0].Price.Status)
	assert.Contains(t, report.Outcomes[0].Price.Error, "boom")
}

func TestRunAbortsWhenSnapshotFails(t *testing.T) {
	t.Run("storefront listing", func(t *testing.T) {
		storefront := &fakeStorefront{listErr: pkgerrors.NewAPIError("shopify", 502, "bad gateway")}
		authority := &fakeAuthority{snapshot: pos.SnapshotFromRecords(nil)}

		report, err := reconcile.New(storefront, authority, reconcile.Options{}).Run(context.Background())
		require.Error(t, err)
		assert.Nil(t, report)
	})

	t.Run("pos export", func(t *testing.T) {
		storefront := &fakeStorefront{items: []shopify.Item{
			{SKU: "A", InventoryItemID: 101, VariantID: 11, CurrentPrice: "100.00"},
		}}
		authority := &fakeAuthority{err: pkgerrors.NewAPIError("pos", 0, "connection refused")}

		report, err := reconcile.New(storefront, authority, reconcile.Options{}).Run(context.Background())
		require.Error(t, err)
		assert.Nil(t, report)
		assert.Empty(t, storefront.stockCalls)
	})
}

func TestRunDryRunIssuesNoMutations(t *testing.T) {
	storefront := &fakeStorefront{items: []shopify.Item{
		{SKU: "A", InventoryItemID: 101, VariantID: 11, CurrentPrice: "100.00"},
	}}
	authority := &fakeAuthority{snapshot: pos.SnapshotFromRecords(map[string]pos.Record{
		"A": record(t, 9, "100.00"),
	})}

	report := run(t, storefront, authority, reconcile.Options{DryRun: true})

	assert.True(t, report.DryRun)
	assert.Empty(t, storefront.stockCalls)
	assert.Empty(t, storefront.priceCalls)
	// Outcomes still show what would happen.
	assert.Equal(t, reconcile.StockSynced, report.Outcomes[0].Stock.Status)
	assert.Equal(t, reconcile.PriceUpdated, report.Outcomes[0].Price.Status)
	assert.Equal(t, "115", report.Outcomes[0].Price.NewPrice)
}

func TestRunSkipFlags(t *testing.T) {
	storefront := &fakeStorefront{items: []shopify.Item{
		{SKU: "A", InventoryItemID: 101, VariantID: 11, CurrentPrice: "100.00"},
	}}
	authority := &fakeAuthority{snapshot: pos.SnapshotFromRecords(map[string]pos.Record{
		"A": record(t, 9, "100.00"),
	})}

	report := run(t, storefront, authority, reconcile.Options{SkipStock: true, SkipPrice: true})

	assert.Equal(t, reconcile.StockSkipped, report.Outcomes[0].Stock.Status)
	assert.Equal(t, reconcile.PriceSkipped, report.Outcomes[0].Price.Status)
	assert.Empty(t, storefront.stockCalls)
	assert.Empty(t, storefront.priceCalls)
}

func TestRunReportMetadata(t *testing.T) {
	storefront := &fakeStorefront{items: []shopify.Item{
		{SKU: "A", InventoryItemID: 101, VariantID: 11, CurrentPrice: "115.00"},
	}}
	authority := &fakeAuthority{snapshot: pos.SnapshotFromRecords(map[string]pos.Record{
		"A": record(t, 9, "100.00"),
	})}

	report := run(t, storefront, authority, reconcile.Options{})

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.StartedAt.IsZero())
	assert.False(t, report.FinishedAt.IsZero())
	assert.False(t, report.FinishedAt.Before(report.StartedAt))
}
