// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/core/pricing"
)

const rule = "────────────────────────────────────────────────────────────────"

// colorStatus renders a listing, pickup or order status for terminals.
func colorStatus(status string) string {
	switch status {
	case "draft", "processing", "ordered", "pending":
		return color.New(color.FgHiBlack).Sprint(status)
	case "awaiting_review", "redesigning", "delivering":
		return color.New(color.FgYellow).Sprint(status)
	case "picked_up", "redesigned", "completed":
		return color.New(color.FgCyan).Sprint(status)
	case "live", "delivered", "paid":
		return color.New(color.FgHiGreen).Sprint(status)
	case "sold":
		return color.New(color.FgHiMagenta).Sprint(status)
	case "rejected", "cancelled", "failed", "refunded":
		return color.New(color.FgRed).Sprint(status)
	default:
		return status
	}
}

func formatNullMoney(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.StringFixed(pricing.Places)
}

func formatMoney(d decimal.Decimal) string {
	return d.StringFixed(pricing.Places)
}

// parseMoney parses an optional price flag. Empty means unset.
func parseMoney(flag, s string) (decimal.NullDecimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("invalid %s %q: %w", flag, s, err)
	}
	return decimal.NewNullDecimal(d), nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
