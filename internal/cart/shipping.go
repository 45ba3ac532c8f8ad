package cart

import (
	"strings"

	"github.com/powersupps/storefront/internal/domain"
)

// Shipping amounts in cents.
const (
	FreeShippingThreshold int64 = 25000
	StandardShippingFee   int64 = 1990

	minPostalCodeLen = 8
)

// QuoteShipping applies the flat-fee rule: orders at or above the threshold
// ship free, everything else pays the standard fee. The postal code is only
// checked for minimal length; there is no carrier lookup.
func QuoteShipping(subtotal int64, postalCode string) (*domain.ShippingQuote, error) {
	code := strings.TrimSpace(postalCode)
	if len(code) < minPostalCodeLen {
		return nil, domain.NewValidationError("postal_code")
	}

	quote := &domain.ShippingQuote{PostalCode: code}
	if subtotal >= FreeShippingThreshold {
		quote.Free = true
	} else {
		quote.Fee = StandardShippingFee
	}

	return quote, nil
}

// TotalDue adds the quoted fee to the subtotal. A quote taken before the
// cart changed may be stale; the free-shipping threshold is re-applied here
// so a cart that has since crossed it never pays the old fee. Without a
// quote the subtotal stands alone.
func TotalDue(subtotal int64, quote *domain.ShippingQuote) int64 {
	if quote == nil || quote.Free || subtotal >= FreeShippingThreshold {
		return subtotal
	}
	return subtotal + quote.Fee
}

// FreeShippingGap reports how many cents remain until free shipping.
func FreeShippingGap(subtotal int64) int64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FreeShippingThreshold - subtotal
}
