// Package pricing implements the retail price policies: the 5/10 rounding
// rule, the discount guard, and the target price calculator.
//
// All arithmetic runs on shopspring decimals. The remote APIs ship prices as
// strings and the tolerance check below has to be exact; binary floats would
// accumulate drift across runs and reopen the update-thrash problem the
// tolerance exists to close.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/storeops/possync/pkg/errors"
)

var (
	// markup is the fixed factor applied to the POS base price.
	markup = decimal.New(115, -2) // 1.15

	// tolerance is the threshold below which two prices count as equal,
	// so rounding noise never triggers a rewrite.
	tolerance = decimal.New(1, -2) // 0.01
)

// RoundUpTo5Or10 rounds a price up to the nearest 5 or 10 currency units.
// The fractional part is discarded first (truncated, not rounded); a price
// already ending in 0 or 5 is returned unchanged.
func RoundUpTo5Or10(price decimal.Decimal) int64 {
	units := price.IntPart()

	remainder := units % 10
	if remainder == 0 || remainder == 5 {
		return units
	}
	if remainder < 5 {
		return units - remainder + 5
	}
	return units - remainder + 10
}

// IsDiscounted reports whether a promotional markdown is active: the
// compare-at price parses to a positive decimal strictly greater than the
// current price. Absent or malformed compare-at text means not discounted;
// this never fails.
func IsDiscounted(current decimal.Decimal, compareAt string) bool {
	compareAt = strings.TrimSpace(compareAt)
	if compareAt == "" {
		return false
	}
	compare, err := decimal.NewFromString(compareAt)
	if err != nil || !compare.IsPositive() {
		return false
	}
	return compare.GreaterThan(current)
}

// Action is the outcome of a target price computation.
type Action int

const (
	// ActionSkip means the current price is already at or above target.
	ActionSkip Action = iota
	// ActionUpdate means the price should be rewritten to Target.
	ActionUpdate
)

// Decision carries the computed action and, for updates, the target price in
// whole currency units.
type Decision struct {
	Action Action
	Target decimal.Decimal
}

// Skip reports whether the decision is a no-op.
func (d Decision) Skip() bool {
	return d.Action == ActionSkip
}

// ComputeTarget derives the storefront target price from the authoritative
// base price: base × 1.15, rounded to two decimals, then up to the nearest
// 5/10 unit. The result is compared against the storefront's current price
// string:
//
//   - current price that does not parse is a ParseError, surfaced distinctly
//     rather than treated as a skip;
//   - current within tolerance of target, or above it, is a Skip; the price
//     is never lowered automatically, and re-running against an unchanged
//     base always skips;
//   - otherwise the decision is an Update to the target.
func ComputeTarget(basePrice decimal.Decimal, currentPrice string) (Decision, error) {
	target := decimal.NewFromInt(RoundUpTo5Or10(basePrice.Mul(markup).Round(2)))

	current, err := decimal.NewFromString(strings.TrimSpace(currentPrice))
	if err != nil {
		return Decision{}, errors.NewParseError("decimal", "current price",
			"cannot parse "+strings.TrimSpace(currentPrice), err)
	}

	if current.Sub(target).Abs().LessThanOrEqual(tolerance) || current.GreaterThan(target) {
		return Decision{Action: ActionSkip, Target: target}, nil
	}
	return Decision{Action: ActionUpdate, Target: target}, nil
}
