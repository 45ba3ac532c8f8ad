package cart

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/powersupps/storefront/internal/httpx"
	"github.com/powersupps/storefront/internal/session"

	"github.com/powersupps/storefront/internal/domain"
)

type Handler struct {
	products ProductSource
	logger   *slog.Logger
}

func NewHandler(products ProductSource, logger *slog.Logger) *Handler {
	return &Handler{products: products, logger: logger}
}

type viewResponse struct {
	Lines           []Line                `json:"lines"`
	Subtotal        int64                 `json:"subtotal"`
	FreeShipping    bool                  `json:"free_shipping"`
	FreeShippingGap int64                 `json:"free_shipping_gap"`
	Shipping        *domain.ShippingQuote `json:"shipping,omitempty"`
	TotalDue        int64                 `json:"total_due"`
}

func (h *Handler) HandleView(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	snap, err := Take(r.Context(), h.products, s.Cart)
	if err != nil {
		h.logger.Error("failed to snapshot cart", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, viewResponse{
		Lines:           snap.Lines,
		Subtotal:        snap.Subtotal,
		FreeShipping:    snap.Subtotal >= FreeShippingThreshold,
		FreeShippingGap: FreeShippingGap(snap.Subtotal),
		Shipping:        s.ShippingQuote,
		TotalDue:        TotalDue(snap.Subtotal, s.ShippingQuote),
	})
}

func (h *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	productID := r.PathValue("productID")

	Add(s.Cart, productID)

	h.logger.Info("product added to cart", "session_id", s.ID, "product_id", productID)
	w.WriteHeader(http.StatusNoContent)
}

type changeQuantityRequest struct {
	Action string `json:"action"`
}

func (h *Handler) HandleChangeQuantity(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	productID := r.PathValue("productID")

	var req changeQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	switch req.Action {
	case "increase":
		SetQuantity(s.Cart, productID, 1)
	case "decrease":
		SetQuantity(s.Cart, productID, -1)
	default:
		httpx.WriteDomainError(w, domain.NewValidationError("action"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	Remove(s.Cart, r.PathValue("productID"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleClear(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	Clear(s.Cart)
	s.ShippingQuote = nil

	w.WriteHeader(http.StatusNoContent)
}

type quoteRequest struct {
	PostalCode string `json:"postal_code"`
}

// HandleQuote computes a shipping quote for the cart's current subtotal and
// caches it on the session. The cache is keyed by nothing but the session;
// later cart mutations do not invalidate it, so clients re-quote after
// changing the cart.
func (h *Handler) HandleQuote(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap, err := Take(r.Context(), h.products, s.Cart)
	if err != nil {
		h.logger.Error("failed to snapshot cart", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	quote, err := QuoteShipping(snap.Subtotal, req.PostalCode)
	if err != nil {
		httpx.WriteDomainError(w, err)
		return
	}

	s.ShippingQuote = quote

	h.logger.Info("shipping quoted", "session_id", s.ID, "fee", quote.Fee, "free", quote.Free)
	httpx.WriteJSON(w, http.StatusOK, quote)
}
