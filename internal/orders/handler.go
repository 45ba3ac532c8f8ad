package orders

import (
	"log/slog"
	"net/http"

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

// HandleList returns the authenticated user's order history.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	orders, err := h.repo.ListByUser(r.Context(), s.UserID)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err, "user_id", s.UserID)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	id := r.PathValue("id")

	order, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to get order", "error", err, "id", id)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	// Orders are only visible to their owner.
	if order == nil || order.UserID != s.UserID {
		httpx.WriteError(w, http.StatusNotFound, "order not found")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, order)
}
