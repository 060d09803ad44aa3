package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/example/resale/internal/core/apperr"
	"github.com/example/resale/internal/core/checklist"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// answers builds a checklist of n entries with the first k answered true.
func answers(n, k int) checklist.Checklist {
	var c checklist.Checklist
	for i := 0; i < n; i++ {
		c.Set(string(rune('a'+i)), i < k)
	}
	return c
}

func TestComputeBasePrice(t *testing.T) {
	tests := []struct {
		name      string
		rng       PriceRange
		checklist checklist.Checklist
		want      string
	}{
		{
			name:      "two of four true",
			rng:       NewRange(dec("100"), dec("500")),
			checklist: answers(4, 2),
			want:      "233.33",
		},
		{
			name:      "clean and working but incomplete",
			rng:       NewRange(dec("200"), dec("800")),
			checklist: checklist.Of("clean", true, "working", true, "complete", false),
			want:      "500",
		},
		{
			name:      "empty checklist",
			rng:       NewRange(dec("100"), dec("500")),
			checklist: checklist.Checklist{},
			want:      "0",
		},
		{
			name:      "single true entry earns end",
			rng:       NewRange(dec("100"), dec("500")),
			checklist: checklist.Of("clean", true),
			want:      "500",
		},
		{
			name:      "single false entry earns nothing",
			rng:       NewRange(dec("100"), dec("500")),
			checklist: checklist.Of("clean", false),
			want:      "0",
		},
		{
			name:      "none true",
			rng:       NewRange(dec("100"), dec("500")),
			checklist: answers(5, 0),
			want:      "0",
		},
		{
			name:      "first true earns start",
			rng:       NewRange(dec("100"), dec("500")),
			checklist: answers(5, 1),
			want:      "100",
		},
		{
			name:      "all true reaches end exactly",
			rng:       NewRange(dec("100"), dec("500.55")),
			checklist: answers(3, 3),
			want:      "500.55",
		},
		{
			name:      "sub-cent end is rounded",
			rng:       NewRange(dec("100"), dec("500.555")),
			checklist: answers(3, 3),
			want:      "500.56",
		},
		{
			name:      "inverted range is not rejected",
			rng:       NewRange(dec("500"), dec("100")),
			checklist: answers(3, 2),
			want:      "300",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeBasePrice(tt.rng, tt.checklist)
			if err != nil {
				t.Fatalf("ComputeBasePrice() error = %v", err)
			}
			if !got.Equal(dec(tt.want)) {
				t.Errorf("ComputeBasePrice() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestComputeBasePrice_MissingBounds(t *testing.T) {
	tests := []struct {
		name string
		rng  PriceRange
	}{
		{"both missing", PriceRange{}},
		{"start missing", PriceRange{End: decimal.NewNullDecimal(dec("10"))}},
		{"end missing", PriceRange{Start: decimal.NewNullDecimal(dec("10"))}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeBasePrice(tt.rng, checklist.Of("clean", true))
			if !errors.Is(err, apperr.ErrInvalidPriceRange) {
				t.Errorf("ComputeBasePrice() error = %v, want ErrInvalidPriceRange", err)
			}
		})
	}
}

func TestRangeFromFloat_NonFinite(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := RangeFromFloat(v, 100); !errors.Is(err, apperr.ErrInvalidPriceRange) {
			t.Errorf("RangeFromFloat(%v, 100) error = %v, want ErrInvalidPriceRange", v, err)
		}
		if _, err := RangeFromFloat(100, v); !errors.Is(err, apperr.ErrInvalidPriceRange) {
			t.Errorf("RangeFromFloat(100, %v) error = %v, want ErrInvalidPriceRange", v, err)
		}
	}

	r, err := RangeFromFloat(100, 500)
	if err != nil {
		t.Fatalf("RangeFromFloat() error = %v", err)
	}
	if !r.Complete() {
		t.Error("expected a complete range")
	}
}

func TestComputeBasePrice_Properties(t *testing.T) {
	ranges := []PriceRange{
		NewRange(dec("120"), dec("910")),
		NewRange(dec("0.1001"), dec("0.1099")),
		NewRange(dec("9.995"), dec("10.004")),
	}

	for _, rng := range ranges {
		end := rng.End.Decimal.Round(Places)
		for total := 1; total <= 8; total++ {
			prev := decimal.NewFromInt(-1)
			for k := 0; k <= total; k++ {
				got, err := ComputeBasePrice(rng, answers(total, k))
				if err != nil {
					t.Fatalf("ComputeBasePrice(%s, %d/%d) error = %v", rng, k, total, err)
				}

				if got.LessThan(prev) {
					t.Errorf("%s not monotonic: %d/%d gave %s after %s", rng, k, total, got, prev)
				}
				prev = got

				if total == 1 && !got.IsZero() && !got.Equal(end) {
					t.Errorf("%s single entry gave %s, want 0 or %s", rng, got, end)
				}
				if k == 0 && !got.IsZero() {
					t.Errorf("%s %d/%d gave %s, want 0", rng, k, total, got)
				}
				if k == total && !got.Equal(end) {
					t.Errorf("%s %d/%d gave %s, want %s", rng, k, total, got, end)
				}
			}
		}
	}
}

func TestValidateForAssignment(t *testing.T) {
	tests := []struct {
		name    string
		rng     PriceRange
		wantErr bool
	}{
		{"valid", NewRange(dec("10"), dec("20")), false},
		{"equal bounds", NewRange(dec("10"), dec("10")), false},
		{"inverted", NewRange(dec("20"), dec("10")), true},
		{"negative start", NewRange(dec("-1"), dec("10")), true},
		{"incomplete", PriceRange{}, true},
		{"cents allowed", NewRange(dec("0.10"), dec("0.99")), false},
		{"trailing zeros allowed", NewRange(dec("0.1000"), dec("1.500")), false},
		{"sub-cent start", NewRange(dec("0.1001"), dec("0.20")), true},
		{"sub-cent end", NewRange(dec("0.10"), dec("0.1099")), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateForAssignment(tt.rng)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForAssignment() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected a validation error, got %v", err)
			}
		})
	}
}

func TestApplyMarkup(t *testing.T) {
	got := ApplyMarkup(dec("233.33"), dec("1.25"))
	if !got.Equal(dec("291.66")) {
		t.Errorf("ApplyMarkup() = %s, want 291.66", got)
	}
}
