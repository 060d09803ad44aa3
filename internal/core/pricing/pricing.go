// Package pricing converts a condition checklist into a monetary base price.
// This is part of the Functional Core - no I/O, only pure functions.
package pricing

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/core/checklist"
)

// Places is the number of decimal places prices are rounded to.
const Places = 2

// PriceRange is the manager-set [start, end] band a base price falls within.
// Either bound may be missing until a manager sets it.
type PriceRange struct {
	Start decimal.NullDecimal `json:"start"`
	End   decimal.NullDecimal `json:"end"`
}

// NewRange builds a fully specified range.
func NewRange(start, end decimal.Decimal) PriceRange {
	return PriceRange{
		Start: decimal.NewNullDecimal(start),
		End:   decimal.NewNullDecimal(end),
	}
}

// RangeFromFloat builds a range from float inputs, rejecting NaN and infinities.
func RangeFromFloat(start, end float64) (PriceRange, error) {
	for _, v := range []float64{start, end} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return PriceRange{}, fmt.Errorf("%w: bound %v is not finite", apperr.ErrInvalidPriceRange, v)
		}
	}
	return NewRange(decimal.NewFromFloat(start), decimal.NewFromFloat(end)), nil
}

// Complete reports whether both bounds are present.
func (r PriceRange) Complete() bool {
	return r.Start.Valid && r.End.Valid
}

// String renders the range for display.
func (r PriceRange) String() string {
	if !r.Complete() {
		return "unset"
	}
	return fmt.Sprintf("%s-%s", r.Start.Decimal.StringFixed(Places), r.End.Decimal.StringFixed(Places))
}

// ValidateForAssignment checks a range a manager is about to store.
// Unlike ComputeBasePrice, it requires 0 <= start <= end.
func ValidateForAssignment(r PriceRange) error {
	if !r.Complete() {
		return fmt.Errorf("%w: start and end are required", apperr.ErrInvalidPriceRange)
	}
	if r.Start.Decimal.IsNegative() {
		return fmt.Errorf("%w: start %s is negative", apperr.ErrInvalidPriceRange, r.Start.Decimal)
	}
	if r.Start.Decimal.GreaterThan(r.End.Decimal) {
		return fmt.Errorf("%w: start %s exceeds end %s", apperr.ErrInvalidPriceRange, r.Start.Decimal, r.End.Decimal)
	}
	for _, d := range []decimal.Decimal{r.Start.Decimal, r.End.Decimal} {
		if !d.Equal(d.Round(Places)) {
			return fmt.Errorf("%w: bound %s has more than %d decimal places", apperr.ErrInvalidPriceRange, d, Places)
		}
	}
	return nil
}

// ComputeBasePrice maps a resolved checklist onto the price range.
//
// With n entries and k of them true: n == 0 gives 0; n == 1 gives end when the
// single entry is true and 0 otherwise; for n > 1 the first true entry earns
// start and each further one adds (end-start)/(n-1), reaching end when k == n.
// k == 0 always gives 0. Start <= end is not required here. Both bounds are
// rounded to Places first so stored sub-cent values cannot break ordering.
func ComputeBasePrice(r PriceRange, c checklist.Checklist) (decimal.Decimal, error) {
	if !r.Complete() {
		return decimal.Zero, fmt.Errorf("%w: start and end are required", apperr.ErrInvalidPriceRange)
	}

	start, end := r.Start.Decimal.Round(Places), r.End.Decimal.Round(Places)
	total := c.Len()
	trueCount := c.TrueCount()

	switch {
	case total == 0, trueCount == 0:
		return decimal.Zero, nil
	case total == 1, trueCount == total:
		return end, nil
	}

	step := end.Sub(start).Div(decimal.NewFromInt(int64(total - 1)))
	price := start.Add(step.Mul(decimal.NewFromInt(int64(trueCount - 1))))
	return price.Round(Places), nil
}

// ApplyMarkup derives the buyer-facing final price from a base price.
func ApplyMarkup(base, markup decimal.Decimal) decimal.Decimal {
	return base.Mul(markup).Round(Places)
}
