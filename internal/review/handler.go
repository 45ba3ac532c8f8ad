package review

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/powersupps/storefront/internal/domain"
	"github.com/powersupps/storefront/internal/httpx"
	"github.com/powersupps/storefront/internal/session"
)

// Ratings are accepted on a 1-5 scale.
const (
	minRating = 1
	maxRating = 5
)

type ProductGetter interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type Handler struct {
	reviews  *Repository
	products ProductGetter
	logger   *slog.Logger
}

func NewHandler(reviews *Repository, products ProductGetter, logger *slog.Logger) *Handler {
	return &Handler{reviews: reviews, products: products, logger: logger}
}

type submitRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	productID := r.PathValue("id")

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Rating < minRating || req.Rating > maxRating {
		httpx.WriteDomainError(w, domain.NewValidationError("rating"))
		return
	}

	product, err := h.products.GetByID(r.Context(), productID)
	if err != nil {
		h.logger.Error("failed to get product", "error", err, "product_id", productID)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}
	if product == nil {
		httpx.WriteError(w, http.StatusNotFound, "product not found")
		return
	}

	review := &domain.Review{
		UserID:    s.UserID,
		ProductID: productID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := h.reviews.Create(r.Context(), review); err != nil {
		h.logger.Error("failed to create review", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("review submitted", "review_id", review.ID, "product_id", productID, "rating", review.Rating)
	httpx.WriteJSON(w, http.StatusCreated, review)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListByProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("failed to list reviews", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, reviews)
}
