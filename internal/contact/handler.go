// Package contact forwards visitor inquiries to the store admin.
package contact

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/powersupps/storefront/internal/domain"
	"github.com/powersupps/storefront/internal/httpx"
	"github.com/powersupps/storefront/internal/notify"
)

type Handler struct {
	mailer     notify.Mailer
	adminEmail string
	logger     *slog.Logger
}

func NewHandler(mailer notify.Mailer, adminEmail string, logger *slog.Logger) *Handler {
	return &Handler{mailer: mailer, adminEmail: adminEmail, logger: logger}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// HandleSubmit forwards the inquiry by email. Delivery failure surfaces to
// the caller so they can retry; this is not one of the swallowed paths.
func (h *Handler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var missing []string
	if req.Name == "" {
		missing = append(missing, "name")
	}
	if req.Email == "" {
		missing = append(missing, "email")
	}
	if req.Message == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		httpx.WriteDomainError(w, domain.NewValidationError(missing...))
		return
	}

	msg := notify.ContactMessage(h.adminEmail, req.Name, req.Email, req.Subject, req.Message)
	if err := h.mailer.Send(r.Context(), msg); err != nil {
		h.logger.Error("failed to forward contact message", "error", err)
		httpx.WriteError(w, http.StatusBadGateway, "failed to send message")
		return
	}

	h.logger.Info("contact message forwarded", "from", req.Email)
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
