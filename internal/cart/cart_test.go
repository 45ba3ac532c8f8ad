package cart

import (
	"context"
	"testing"

	"github.com/powersupps/storefront/internal/domain"
)

type fakeProducts struct {
	products map[string]domain.Product
}

func (f *fakeProducts) GetByIDs(_ context.Context, ids []string) (map[string]domain.Product, error) {
	found := make(map[string]domain.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			found[id] = p
		}
	}
	return found, nil
}

func TestAdd(t *testing.T) {
	c := map[string]int{}

	Add(c, "p1")
	if c["p1"] != 1 {
		t.Errorf("expected quantity 1, got %d", c["p1"])
	}

	Add(c, "p1")
	Add(c, "p1")
	if c["p1"] != 3 {
		t.Errorf("expected quantity 3, got %d", c["p1"])
	}
}

func TestSetQuantity(t *testing.T) {
	t.Run("decrementing to zero removes the entry", func(t *testing.T) {
		c := map[string]int{"p1": 2}

		SetQuantity(c, "p1", -1)
		if c["p1"] != 1 {
			t.Errorf("expected quantity 1, got %d", c["p1"])
		}

		SetQuantity(c, "p1", -1)
		if _, ok := c["p1"]; ok {
			t.Error("expected entry to be removed, found it with quantity zero or below")
		}
	})

	t.Run("never stores a non-positive quantity", func(t *testing.T) {
		c := map[string]int{"p1": 1}

		SetQuantity(c, "p1", -1)
		SetQuantity(c, "p1", -1)

		for id, qty := range c {
			if qty <= 0 {
				t.Errorf("entry %s has non-positive quantity %d", id, qty)
			}
		}
	})

	t.Run("ignores unknown product", func(t *testing.T) {
		c := map[string]int{}

		SetQuantity(c, "missing", 1)
		if len(c) != 0 {
			t.Errorf("expected empty cart, got %v", c)
		}
	})
}

func TestRemove(t *testing.T) {
	c := map[string]int{"p1": 5, "p2": 1}

	Remove(c, "p1")
	if _, ok := c["p1"]; ok {
		t.Error("expected p1 to be removed")
	}
	if c["p2"] != 1 {
		t.Error("expected p2 to be untouched")
	}
}

func TestClear(t *testing.T) {
	c := map[string]int{"p1": 5, "p2": 1}

	Clear(c)
	if len(c) != 0 {
		t.Errorf("expected empty cart, got %v", c)
	}
}

func TestTake(t *testing.T) {
	products := &fakeProducts{products: map[string]domain.Product{
		"a": {ID: "a", Name: "Whey Protein", Price: 1000},
		"b": {ID: "b", Name: "Creatine", Price: 500},
	}}

	t.Run("computes line subtotals and cart subtotal", func(t *testing.T) {
		snap, err := Take(context.Background(), products, map[string]int{"a": 2, "b": 1})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(snap.Lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(snap.Lines))
		}
		if snap.Subtotal != 2500 {
			t.Errorf("expected subtotal 2500, got %d", snap.Subtotal)
		}

		for _, line := range snap.Lines {
			want := line.Product.Price * int64(line.Quantity)
			if line.Subtotal != want {
				t.Errorf("line %s: expected subtotal %d, got %d", line.Product.Name, want, line.Subtotal)
			}
		}
	})

	t.Run("silently skips deleted products", func(t *testing.T) {
		snap, err := Take(context.Background(), products, map[string]int{"a": 1, "gone": 4})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(snap.Lines) != 1 {
			t.Fatalf("expected 1 line, got %d", len(snap.Lines))
		}
		if snap.Subtotal != 1000 {
			t.Errorf("expected subtotal 1000, got %d", snap.Subtotal)
		}
	})

	t.Run("empty cart yields empty snapshot", func(t *testing.T) {
		snap, err := Take(context.Background(), products, map[string]int{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(snap.Lines) != 0 || snap.Subtotal != 0 {
			t.Errorf("expected empty snapshot, got %+v", snap)
		}
	})
}
