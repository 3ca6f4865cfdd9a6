package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/storeops/possync/internal/config"
	"github.com/storeops/possync/internal/pos"
	"github.com/storeops/possync/internal/reconcile"
	"github.com/storeops/possync/internal/shopify"
	"github.com/storeops/possync/pkg/logging"
)

var (
	syncDryRun    bool
	syncSkipStock bool
	syncSkipPrice bool
	syncOutput    string
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run one reconciliation pass against both catalogs",
	Long: `Sync fetches the full storefront listing and the full POS export,
joins them by normalized SKU, and for every match sets the storefront stock
to the POS quantity and raises the price to the marked-up POS base price.

Price updates are suppressed for variants with an active discount and for
prices already at target; unmatched storefront SKUs are reported. The pass
is one-shot and stateless: re-running against unchanged data is a no-op.`,
	Example: `  possync sync
  possync sync --dry-run
  possync sync --skip-price --output json
  possync sync --output yaml > report.yaml`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "compute outcomes without issuing mutations")
	syncCmd.Flags().BoolVar(&syncSkipStock, "skip-stock", false, "skip the stock half of the sync")
	syncCmd.Flags().BoolVar(&syncSkipPrice, "skip-price", false, "skip the price half of the sync")
	syncCmd.Flags().StringVarP(&syncOutput, "output", "o", "text", "report format: text, json, or yaml")

	_ = viper.BindPFlag("dry_run", syncCmd.Flags().Lookup("dry-run"))
}

func runSync(cmd *cobra.Command, _ []string) error {
	format, err := reconcile.ParseFormat(syncOutput)
	if err != nil {
		return err
	}

	cfg := config.Load(nil)
	if err := cfg.Validate(); err != nil {
		return err
	}

	storefront := shopify.NewClient(cfg.Shopify, cfg.PageSize, cfg.MutationTimeout)
	authority := pos.NewClient(cfg.POS, cfg.BulkTimeout)

	reconciler := reconcile.New(storefront, authority, reconcile.Options{
		DryRun:    cfg.DryRun || syncDryRun,
		SkipStock: syncSkipStock,
		SkipPrice: syncSkipPrice,
		Pacing:    cfg.Pacing,
	})

	ctx := logging.WithLogger(cmd.Context(), logging.Default())
	report, err := reconciler.Run(ctx)
	if err != nil {
		return err
	}

	rendered, err := report.Render(format)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}
