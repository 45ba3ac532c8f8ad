// Package checkout converts ephemeral cart state into persistent order
// records: one transaction covering the order, its address and its items,
// followed by a best-effort confirmation email.
package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/powersupps/storefront/internal/cart"
	"github.com/powersupps/storefront/internal/domain"
	"github.com/powersupps/storefront/internal/notify"
	"github.com/powersupps/storefront/internal/session"
)

type UserSource interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *domain.Order) error
}

type Notifier interface {
	Send(ctx context.Context, msg notify.Message) notify.Outcome
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, event any) error
}

// AddressForm carries the delivery address and contact email supplied at
// checkout. Only the complement is optional.
type AddressForm struct {
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Email        string `json:"email"`
}

// Validate names every missing required field.
func (f *AddressForm) Validate() error {
	var missing []string

	for _, field := range []struct {
		name  string
		value string
	}{
		{"postal_code", f.PostalCode},
		{"street", f.Street},
		{"number", f.Number},
		{"neighborhood", f.Neighborhood},
		{"city", f.City},
		{"state", f.State},
		{"email", f.Email},
	} {
		if field.value == "" {
			missing = append(missing, field.name)
		}
	}

	if len(missing) > 0 {
		return domain.NewValidationError(missing...)
	}
	return nil
}

type Service struct {
	users    UserSource
	products cart.ProductSource
	orders   OrderStore
	notifier Notifier
	producer EventPublisher
	logger   *slog.Logger
}

// NewService wires the orchestrator. producer may be nil when event
// publishing is disabled.
func NewService(users UserSource, products cart.ProductSource, orders OrderStore, notifier Notifier, producer EventPublisher, logger *slog.Logger) *Service {
	return &Service{
		users:    users,
		products: products,
		orders:   orders,
		notifier: notifier,
		producer: producer,
		logger:   logger,
	}
}

type Result struct {
	Order        *domain.Order
	Total        int64
	Notification notify.Outcome
}

// Checkout materializes the session cart into an Order. Each unit in the
// cart becomes its own order_items row: a cart entry of quantity 3 yields 3
// rows referencing the same product. On success the session cart and its
// shipping quote are cleared; the confirmation email and the order-placed
// event are best-effort and never undo the commit.
func (s *Service) Checkout(ctx context.Context, sess *session.Session, form AddressForm) (*Result, error) {
	if sess == nil || !sess.Authenticated() {
		return nil, domain.ErrAuthRequired
	}

	if err := form.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrAuthRequired
	}

	snap, err := cart.Take(ctx, s.products, sess.Cart)
	if err != nil {
		return nil, fmt.Errorf("snapshot cart: %w", err)
	}

	var items []domain.OrderItem
	var emailLines []notify.ItemLine
	for _, line := range snap.Lines {
		for i := 0; i < line.Quantity; i++ {
			items = append(items, domain.OrderItem{ProductID: line.Product.ID})
		}
		emailLines = append(emailLines, notify.ItemLine{
			Name:     line.Product.Name,
			Quantity: line.Quantity,
			Price:    line.Product.Price,
		})
	}

	order := &domain.Order{
		UserID:    user.ID,
		Items:     items,
		CreatedAt: time.Now().UTC(),
		Address: &domain.Address{
			PostalCode:   form.PostalCode,
			Street:       form.Street,
			Number:       form.Number,
			Complement:   form.Complement,
			Neighborhood: form.Neighborhood,
			City:         form.City,
			State:        form.State,
		},
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}

	cart.Clear(sess.Cart)
	sess.ShippingQuote = nil

	outcome := s.notifier.Send(ctx, notify.PurchaseConfirmation(form.Email, user.Name, emailLines, snap.Subtotal))

	if s.producer != nil {
		event := domain.OrderPlacedEvent{
			OrderID:   order.ID,
			UserID:    order.UserID,
			Total:     snap.Subtotal,
			ItemCount: len(order.Items),
			Timestamp: order.CreatedAt,
		}
		if err := s.producer.Publish(ctx, order.ID, event); err != nil {
			s.logger.Error("failed to publish order placed event", "error", err, "order_id", order.ID)
		}
	}

	s.logger.Info("checkout complete",
		"order_id", order.ID, "user_id", order.UserID,
		"items", len(order.Items), "total", snap.Subtotal,
		"notification_sent", outcome.Sent)

	return &Result{Order: order, Total: snap.Subtotal, Notification: outcome}, nil
}
