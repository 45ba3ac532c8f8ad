// Package cart implements the session cart: a mapping from product ID to
// quantity, plus the shipping quote rule applied at checkout time.
package cart

import (
	"context"
	"sort"

	"github.com/powersupps/storefront/internal/domain"
)

// ProductSource resolves cart entries against the catalog.
type ProductSource interface {
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Product, error)
}

// Line pairs a catalog product with its cart quantity.
type Line struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
	Subtotal int64          `json:"subtotal"`
}

type Snapshot struct {
	Lines    []Line `json:"lines"`
	Subtotal int64  `json:"subtotal"`
}

// Add increments the quantity for productID, creating the entry at 1.
func Add(cart map[string]int, productID string) {
	cart[productID]++
}

// SetQuantity applies delta to an existing entry and removes it when the
// result drops to zero or below. Entries are never stored with a
// non-positive quantity. Unknown product IDs are ignored.
func SetQuantity(cart map[string]int, productID string, delta int) {
	qty, ok := cart[productID]
	if !ok {
		return
	}

	qty += delta
	if qty <= 0 {
		delete(cart, productID)
		return
	}
	cart[productID] = qty
}

func Remove(cart map[string]int, productID string) {
	delete(cart, productID)
}

func Clear(cart map[string]int) {
	clear(cart)
}

// Take produces the cart's current lines and subtotal. Entries referencing
// products that no longer exist in the catalog are silently skipped.
func Take(ctx context.Context, src ProductSource, cart map[string]int) (*Snapshot, error) {
	ids := make([]string, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}

	products, err := src.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{Lines: []Line{}}
	for id, qty := range cart {
		product, ok := products[id]
		if !ok {
			continue
		}

		subtotal := product.Price * int64(qty)
		snap.Lines = append(snap.Lines, Line{
			Product:  product,
			Quantity: qty,
			Subtotal: subtotal,
		})
		snap.Subtotal += subtotal
	}

	sort.Slice(snap.Lines, func(i, j int) bool {
		return snap.Lines[i].Product.Name < snap.Lines[j].Product.Name
	})

	return snap, nil
}
