package cart

import (
	"errors"
	"testing"

	"github.com/powersupps/storefront/internal/domain"
)

func TestQuoteShipping(t *testing.T) {
	tests := []struct {
		name     string
		subtotal int64
		wantFee  int64
		wantFree bool
	}{
		{"zero subtotal pays the flat fee", 0, 1990, false},
		{"just under the threshold pays the flat fee", 24999, 1990, false},
		{"exactly at the threshold ships free", 25000, 0, true},
		{"above the threshold ships free", 99999, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := QuoteShipping(tt.subtotal, "12345-678")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if quote.Fee != tt.wantFee {
				t.Errorf("expected fee %d, got %d", tt.wantFee, quote.Fee)
			}
			if quote.Free != tt.wantFree {
				t.Errorf("expected free=%v, got %v", tt.wantFree, quote.Free)
			}
		})
	}

	t.Run("rejects short postal codes", func(t *testing.T) {
		for _, code := range []string{"", "1234", "  1234  "} {
			quote, err := QuoteShipping(1000, code)
			if quote != nil {
				t.Errorf("expected no quote for %q", code)
			}

			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected ValidationError for %q, got %v", code, err)
			}
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		quote, err := QuoteShipping(1000, "  12345-678  ")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if quote.PostalCode != "12345-678" {
			t.Errorf("expected trimmed postal code, got %q", quote.PostalCode)
		}
	})
}

func TestTotalDue(t *testing.T) {
	paid := &domain.ShippingQuote{Fee: 1990}
	free := &domain.ShippingQuote{Free: true}

	t.Run("adds the fee to the subtotal", func(t *testing.T) {
		if got := TotalDue(10000, paid); got != 11990 {
			t.Errorf("expected 11990, got %d", got)
		}
	})

	t.Run("no quote means subtotal only", func(t *testing.T) {
		if got := TotalDue(10000, nil); got != 10000 {
			t.Errorf("expected 10000, got %d", got)
		}
	})

	t.Run("free quote adds nothing", func(t *testing.T) {
		if got := TotalDue(30000, free); got != 30000 {
			t.Errorf("expected 30000, got %d", got)
		}
	})

	t.Run("threshold overrides a stale paid quote", func(t *testing.T) {
		// The quote was taken when the cart was below the threshold; the
		// cart has since crossed it.
		if got := TotalDue(26000, paid); got != 26000 {
			t.Errorf("expected 26000, got %d", got)
		}
	})
}

func TestFreeShippingGap(t *testing.T) {
	if got := FreeShippingGap(20000); got != 5000 {
		t.Errorf("expected gap 5000, got %d", got)
	}
	if got := FreeShippingGap(25000); got != 0 {
		t.Errorf("expected gap 0, got %d", got)
	}
	if got := FreeShippingGap(30000); got != 0 {
		t.Errorf("expected gap 0, got %d", got)
	}
}
