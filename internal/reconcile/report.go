package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/storeops/possync/pkg/errors"
)

// Format selects how a report is rendered.
type Format string

// Report output formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name from a flag.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(name)) {
	case FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatYAML:
		return FormatYAML, nil
	}
	return "", &errors.ValidationError{
		Field:   "output",
		Value:   name,
		Message: "must be one of text, json, yaml",
	}
}

// Summary aggregates outcome counts for one pass.
type Summary struct {
	StockSynced          int `json:"stock_synced" yaml:"stock_synced"`
	StockFailed          int `json:"stock_failed" yaml:"stock_failed"`
	Unmatched            int `json:"unmatched" yaml:"unmatched"`
	PriceUpdated         int `json:"price_updated" yaml:"price_updated"`
	PriceSkippedDiscount int `json:"price_skipped_discount" yaml:"price_skipped_discount"`
	PriceSkippedAtTarget int `json:"price_skipped_at_target" yaml:"price_skipped_at_target"`
	PriceParseErrors     int `json:"price_parse_errors" yaml:"price_parse_errors"`
	PriceFailed          int `json:"price_failed" yaml:"price_failed"`
}

// Report is the structured result of one reconciliation pass. Nothing in it
// persists across runs; every fact is re-derived fresh each invocation.
type Report struct {
	RunID      string    `json:"run_id" yaml:"run_id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	DryRun     bool      `json:"dry_run" yaml:"dry_run"`

	StorefrontCount    int `json:"storefront_count" yaml:"storefront_count"`
	AuthoritativeCount int `json:"authoritative_count" yaml:"authoritative_count"`
	DuplicateSKUs      int `json:"duplicate_skus" yaml:"duplicate_skus"`
	MalformedRecords   int `json:"malformed_records" yaml:"malformed_records"`

	Outcomes []Outcome `json:"outcomes" yaml:"outcomes"`
	Summary  Summary   `json:"summary" yaml:"summary"`
}

// now is a seam for report timestamp tests.
var now = time.Now

func newReport(runID string, dryRun bool) *Report {
	return &Report{
		RunID:     runID,
		StartedAt: now().UTC(),
		DryRun:    dryRun,
	}
}

// add appends an outcome and folds it into the summary.
func (r *Report) add(outcome Outcome) {
	r.Outcomes = append(r.Outcomes, outcome)

	switch outcome.Stock.Status {
	case StockSynced:
		r.Summary.StockSynced++
	case StockFailed:
		r.Summary.StockFailed++
	case StockUnmatched:
		r.Summary.Unmatched++
	}

	switch outcome.Price.Status {
	case PriceUpdated:
		r.Summary.PriceUpdated++
	case PriceSkippedDiscount:
		r.Summary.PriceSkippedDiscount++
	case PriceSkippedAtTarget:
		r.Summary.PriceSkippedAtTarget++
	case PriceParseError:
		r.Summary.PriceParseErrors++
	case PriceFailed:
		r.Summary.PriceFailed++
	}
}

func (r *Report) finish() {
	r.FinishedAt = now().UTC()
}

// Render serializes the report in the requested format.
func (r *Report) Render(format Format) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return "", errors.WrapParse("json", "report", err)
		}
		return string(data) + "\n", nil
	case FormatYAML:
		data, err := yaml.Marshal(r)
		if err != nil {
			return "", errors.WrapParse("yaml", "report", err)
		}
		return string(data), nil
	default:
		return r.renderText(), nil
	}
}

// renderText produces the operator-facing console summary. The structured
// outcome list is the contract; this is a convenience view of it.
func (r *Report) renderText() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Run %s", r.RunID)
	if r.DryRun {
		b.WriteString(" (dry run)")
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Storefront items: %d  POS items: %d", r.StorefrontCount, r.AuthoritativeCount)
	if r.DuplicateSKUs > 0 {
		fmt.Fprintf(&b, "  duplicate POS SKUs: %d", r.DuplicateSKUs)
	}
	if r.MalformedRecords > 0 {
		fmt.Fprintf(&b, "  malformed POS records: %d", r.MalformedRecords)
	}
	b.WriteString("\n\n")

	for _, o := range r.Outcomes {
		fmt.Fprintf(&b, "%-24s stock=%s", o.SKU, o.Stock.Status)
		if o.Stock.Status == StockSynced {
			fmt.Fprintf(&b, "(%d)", o.Stock.Quantity)
		}
		if o.Stock.Error != "" {
			fmt.Fprintf(&b, " [%s]", o.Stock.Error)
		}
		fmt.Fprintf(&b, " price=%s", o.Price.Status)
		if o.Price.Status == PriceUpdated {
			fmt.Fprintf(&b, "(%s -> %s)", o.Price.OldPrice, o.Price.NewPrice)
		}
		if o.Price.Error != "" {
			fmt.Fprintf(&b, " [%s]", o.Price.Error)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "stock synced: %d  stock failed: %d  unmatched: %d\n",
		r.Summary.StockSynced, r.Summary.StockFailed, r.Summary.Unmatched)
	fmt.Fprintf(&b, "price updated: %d  at target: %d  discounted: %d  parse errors: %d  price failed: %d\n",
		r.Summary.PriceUpdated, r.Summary.PriceSkippedAtTarget, r.Summary.PriceSkippedDiscount,
		r.Summary.PriceParseErrors, r.Summary.PriceFailed)
	return b.String()
}
