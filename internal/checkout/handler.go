package checkout

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/powersupps/storefront/internal/domain"
	"github.com/powersupps/storefront/internal/httpx"
	"github.com/powersupps/storefront/internal/session"
)

type Handler struct {
	service *Service
	logger  *slog.Logger
}

func NewHandler(service *Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

type checkoutResponse struct {
	Order            *domain.Order `json:"order"`
	Total            int64         `json:"total"`
	NotificationSent bool          `json:"notification_sent"`
}

func (h *Handler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var form AddressForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.service.Checkout(r.Context(), session.FromContext(r.Context()), form)
	if err != nil {
		var verr *domain.ValidationError
		if !errors.As(err, &verr) && !errors.Is(err, domain.ErrAuthRequired) {
			h.logger.Error("checkout failed", "error", err)
		}
		httpx.WriteDomainError(w, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, checkoutResponse{
		Order:            result.Order,
		Total:            result.Total,
		NotificationSent: result.Notification.Sent,
	})
}
