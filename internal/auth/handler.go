package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/powersupps/storefront/internal/domain"
	"github.com/powersupps/storefront/internal/httpx"
	"github.com/powersupps/storefront/internal/notify"
	"github.com/powersupps/storefront/internal/session"
)

type Handler struct {
	users      *Repository
	mailer     notify.Mailer
	bestEffort *notify.BestEffortMailer
	adminEmail string
	baseURL    string
	logger     *slog.Logger
}

func NewHandler(users *Repository, mailer notify.Mailer, adminEmail, baseURL string, logger *slog.Logger) *Handler {
	return &Handler{
		users:      users,
		mailer:     mailer,
		bestEffort: notify.NewBestEffort(mailer, logger),
		adminEmail: adminEmail,
		baseURL:    baseURL,
		logger:     logger,
	}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// HandleRegister creates a user account. A welcome email goes to the given
// address; without one the admin gets a notice instead. Mail delivery is
// best-effort either way.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var missing []string
	if req.Username == "" {
		missing = append(missing, "username")
	}
	if req.Password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		httpx.WriteDomainError(w, domain.NewValidationError(missing...))
		return
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		h.logger.Error("failed to hash password", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	user := &domain.User{Name: req.Username, PasswordHash: hash}
	if err := h.users.Create(r.Context(), user); err != nil {
		if errors.Is(err, ErrNameTaken) {
			httpx.WriteError(w, http.StatusConflict, "user already exists")
			return
		}
		h.logger.Error("failed to create user", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if req.Email != "" {
		h.bestEffort.Send(r.Context(), notify.RegistrationConfirmation(req.Email, user.Name))
	} else {
		h.bestEffort.Send(r.Context(), notify.ContactMessage(
			h.adminEmail, user.Name, h.adminEmail, "New registration",
			fmt.Sprintf("User %q just registered without an email address.", user.Name),
		))
	}

	h.logger.Info("user registered", "user_id", user.ID, "name", user.Name)
	httpx.WriteJSON(w, http.StatusCreated, user)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.users.GetByName(r.Context(), req.Username)
	if err != nil {
		h.logger.Error("failed to look up user", "error", err)
		httpx.WriteError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if user == nil || !CheckPassword(user.PasswordHash, req.Password) {
		httpx.WriteError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	s := session.FromContext(r.Context())
	s.UserID = user.ID

	h.logger.Info("user logged in", "user_id", user.ID)
	httpx.WriteJSON(w, http.StatusOK, user)
}

// HandleLogout drops the authenticated user from the session. The cart
// stays; it belongs to the session, not the account.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	s.UserID = ""

	w.WriteHeader(http.StatusNoContent)
}

type recoverRequest struct {
	Email string `json:"email"`
}

// HandleRecover mails a password-recovery link. Unlike checkout
// confirmations this send is not swallowed: the caller needs to know the
// mail did not go out.
func (h *Handler) HandleRecover(w http.ResponseWriter, r *http.Request) {
	var req recoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Email == "" {
		httpx.WriteDomainError(w, domain.NewValidationError("email"))
		return
	}

	link := h.baseURL + "/login?reset=" + newRecoveryToken()
	if err := h.mailer.Send(r.Context(), notify.PasswordRecovery(req.Email, link)); err != nil {
		h.logger.Error("failed to send recovery email", "error", err)
		httpx.WriteError(w, http.StatusBadGateway, "failed to send recovery email")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
