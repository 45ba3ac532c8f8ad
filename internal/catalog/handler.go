package catalog

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/powersupps/storefront/internal/domain"
	"github.com/powersupps/storefront/internal/httpx"
	"github.com/powersupps/storefront/internal/session"
)

type Handler struct {
	repo   *Repository
	logger *slog.Logger
}

func NewHandler(repo *Repository, logger *slog.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list products", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, products)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	product, err := h.repo.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		h.logger.Error("failed to get product", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if product == nil {
		httpx.WriteError(w, http.StatusNotFound, "product not found")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, product)
}

type createProductRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
	Price int64  `json:"price"`
}

// HandleCreate registers a product. The image field is an opaque reference;
// uploading and storing the file happens outside this service.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Image == "" {
		missing = append(missing, "image")
	}
	if len(missing) > 0 {
		httpx.WriteDomainError(w, domain.NewValidationError(missing...))
		return
	}
	if req.Price < 0 {
		httpx.WriteDomainError(w, domain.NewValidationError("price"))
		return
	}

	product := &domain.Product{
		Name:  req.Name,
		Image: req.Image,
		Price: req.Price,
	}

	if err := h.repo.Create(r.Context(), product); err != nil {
		h.logger.Error("failed to create product", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	h.logger.Info("product created", "product_id", product.ID, "name", product.Name)
	httpx.WriteJSON(w, http.StatusCreated, product)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	deleted, err := h.repo.Delete(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to delete product", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if !deleted {
		httpx.WriteError(w, http.StatusNotFound, "product not found")
		return
	}

	// Drop the product from the acting session's cart so it does not linger
	// as a dead entry.
	if s := session.FromContext(r.Context()); s != nil {
		delete(s.Cart, id)
	}

	h.logger.Info("product deleted", "product_id", id)
	w.WriteHeader(http.StatusNoContent)
}
