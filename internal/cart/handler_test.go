package cart

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/powersupps/storefront/internal/domain"
	"github.com/powersupps/storefront/internal/session"
)

func newTestHandler() *Handler {
	products := &fakeProducts{products: map[string]domain.Product{
		"a": {ID: "a", Name: "Whey Protein", Price: 10000},
	}}
	return NewHandler(products, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func requestWithSession(method, target string, body string, s *session.Session) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(session.NewContext(req.Context(), s))
}

func TestHandler_HandleQuote(t *testing.T) {
	handler := newTestHandler()

	t.Run("caches the quote on the session", func(t *testing.T) {
		s := &session.Session{ID: "s1", Cart: map[string]int{"a": 1}}

		req := requestWithSession(http.MethodPost, "/cart/shipping", `{"postal_code":"12345-678"}`, s)
		req.SetPathValue("productID", "")
		rec := httptest.NewRecorder()

		handler.HandleQuote(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if s.ShippingQuote == nil {
			t.Fatal("expected quote to be cached on the session")
		}
		if s.ShippingQuote.Fee != 1990 {
			t.Errorf("expected fee 1990, got %d", s.ShippingQuote.Fee)
		}
	})

	t.Run("rejects an invalid postal code", func(t *testing.T) {
		s := &session.Session{ID: "s1", Cart: map[string]int{"a": 1}}

		req := requestWithSession(http.MethodPost, "/cart/shipping", `{"postal_code":"123"}`, s)
		rec := httptest.NewRecorder()

		handler.HandleQuote(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		if s.ShippingQuote != nil {
			t.Error("expected no quote to be cached")
		}
	})
}

func TestHandler_HandleView(t *testing.T) {
	handler := newTestHandler()

	t.Run("stale quote is not recomputed on view", func(t *testing.T) {
		// Quote taken for an empty cart, then a product was added. The
		// cached fee still shows; clients must re-quote.
		s := &session.Session{
			ID:            "s1",
			Cart:          map[string]int{"a": 1},
			ShippingQuote: &domain.ShippingQuote{Fee: 1990, PostalCode: "12345-678"},
		}

		req := requestWithSession(http.MethodGet, "/cart", "", s)
		rec := httptest.NewRecorder()

		handler.HandleView(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}

		var resp struct {
			Subtotal int64 `json:"subtotal"`
			TotalDue int64 `json:"total_due"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}

		if resp.Subtotal != 10000 {
			t.Errorf("expected subtotal 10000, got %d", resp.Subtotal)
		}
		if resp.TotalDue != 11990 {
			t.Errorf("expected total due 11990, got %d", resp.TotalDue)
		}
	})
}

func TestHandler_HandleChangeQuantity(t *testing.T) {
	handler := newTestHandler()

	t.Run("rejects unknown action", func(t *testing.T) {
		s := &session.Session{ID: "s1", Cart: map[string]int{"a": 1}}

		req := requestWithSession(http.MethodPost, "/cart/items/a/quantity", `{"action":"double"}`, s)
		req.SetPathValue("productID", "a")
		rec := httptest.NewRecorder()

		handler.HandleChangeQuantity(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected status 400, got %d", rec.Code)
		}
		if s.Cart["a"] != 1 {
			t.Errorf("expected cart untouched, got %v", s.Cart)
		}
	})

	t.Run("decrease removes the last unit", func(t *testing.T) {
		s := &session.Session{ID: "s1", Cart: map[string]int{"a": 1}}

		req := requestWithSession(http.MethodPost, "/cart/items/a/quantity", `{"action":"decrease"}`, s)
		req.SetPathValue("productID", "a")
		rec := httptest.NewRecorder()

		handler.HandleChangeQuantity(rec, req)

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected status 204, got %d", rec.Code)
		}
		if _, ok := s.Cart["a"]; ok {
			t.Error("expected entry to be removed")
		}
	})
}
