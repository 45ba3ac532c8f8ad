package domain

// ShippingQuote is computed from the cart subtotal at quote time. It is not
// recomputed when the cart changes afterwards; callers re-quote explicitly.
type ShippingQuote struct {
	Fee        int64  `json:"fee"`
	Free       bool   `json:"free"`
	PostalCode string `json:"postal_code"`
}
