package checkout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/powersupps/storefront/internal/domain"
	"github.com/powersupps/storefront/internal/notify"
	"github.com/powersupps/storefront/internal/session"
)

type fakeUsers struct {
	user *domain.User
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, nil
}

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

type fakeOrderStore struct {
	created []*domain.Order
	err     error
}

func (f *fakeOrderStore) Create(_ context.Context, order *domain.Order) error {
	if f.err != nil {
		return f.err
	}
	order.ID = "order-1"
	f.created = append(f.created, order)
	return nil
}

type fakeNotifier struct {
	messages []notify.Message
	err      error
}

func (f *fakeNotifier) Send(_ context.Context, msg notify.Message) notify.Outcome {
	f.messages = append(f.messages, msg)
	if f.err != nil {
		return notify.Outcome{Err: f.err}
	}
	return notify.Outcome{Sent: true}
}

type fakePublisher struct {
	events []any
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, _ string, event any) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func validForm() AddressForm {
	return AddressForm{
		PostalCode:   "12345-678",
		Street:       "Main St",
		Number:       "42",
		Neighborhood: "Centro",
		City:         "Sao Paulo",
		State:        "SP",
		Email:        "buyer@example.com",
	}
}

func newFixture() (*Service, *fakeOrderStore, *fakeNotifier, *fakePublisher) {
	users := &fakeUsers{user: &domain.User{ID: "u1", Name: "maria"}}
	products := &fakeProducts{products: map[string]domain.Product{
		"a": {ID: "a", Name: "Whey Protein", Price: 1000},
		"b": {ID: "b", Name: "Creatine", Price: 500},
	}}
	store := &fakeOrderStore{}
	notifier := &fakeNotifier{}
	publisher := &fakePublisher{}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewService(users, products, store, notifier, publisher, logger)
	return svc, store, notifier, publisher
}

func TestService_Checkout(t *testing.T) {
	t.Run("creates one item row per unit", func(t *testing.T) {
		svc, store, _, _ := newFixture()
		sess := &session.Session{ID: "s1", UserID: "u1", Cart: map[string]int{"a": 2, "b": 1}}

		result, err := svc.Checkout(context.Background(), sess, validForm())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(store.created) != 1 {
			t.Fatalf("expected 1 order, got %d", len(store.created))
		}

		order := store.created[0]
		if len(order.Items) != 3 {
			t.Fatalf("expected 3 item rows, got %d", len(order.Items))
		}

		counts := map[string]int{}
		for _, item := range order.Items {
			counts[item.ProductID]++
		}
		if counts["a"] != 2 || counts["b"] != 1 {
			t.Errorf("expected items {a:2 b:1}, got %v", counts)
		}

		if result.Total != 2500 {
			t.Errorf("expected total 2500, got %d", result.Total)
		}
		if order.Address == nil || order.Address.City != "Sao Paulo" {
			t.Errorf("expected address to be attached, got %+v", order.Address)
		}
	})

	t.Run("clears the cart and the shipping quote", func(t *testing.T) {
		svc, _, _, _ := newFixture()
		sess := &session.Session{
			ID: "s1", UserID: "u1",
			Cart:          map[string]int{"a": 1},
			ShippingQuote: &domain.ShippingQuote{Fee: 1990},
		}

		if _, err := svc.Checkout(context.Background(), sess, validForm()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(sess.Cart) != 0 {
			t.Errorf("expected empty cart, got %v", sess.Cart)
		}
		if sess.ShippingQuote != nil {
			t.Error("expected shipping quote to be cleared")
		}
	})

	t.Run("requires an authenticated session", func(t *testing.T) {
		svc, store, _, _ := newFixture()
		sess := &session.Session{ID: "s1", Cart: map[string]int{"a": 1}}

		_, err := svc.Checkout(context.Background(), sess, validForm())
		if !errors.Is(err, domain.ErrAuthRequired) {
			t.Fatalf("expected ErrAuthRequired, got %v", err)
		}
		if len(store.created) != 0 {
			t.Error("expected no order to be created")
		}
	})

	t.Run("names every missing address field", func(t *testing.T) {
		svc, store, _, _ := newFixture()
		sess := &session.Session{ID: "s1", UserID: "u1", Cart: map[string]int{"a": 1}}

		form := validForm()
		form.City = ""
		form.Email = ""

		_, err := svc.Checkout(context.Background(), sess, form)

		var verr *domain.ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("expected ValidationError, got %v", err)
		}
		if len(verr.Fields) != 2 || verr.Fields[0] != "city" || verr.Fields[1] != "email" {
			t.Errorf("expected [city email], got %v", verr.Fields)
		}

		if len(store.created) != 0 {
			t.Error("expected no order to be created")
		}
		if len(sess.Cart) != 1 {
			t.Error("expected cart to be untouched")
		}
	})

	t.Run("notification failure does not undo the order", func(t *testing.T) {
		svc, store, notifier, _ := newFixture()
		notifier.err = errors.New("smtp down")
		sess := &session.Session{ID: "s1", UserID: "u1", Cart: map[string]int{"a": 1}}

		result, err := svc.Checkout(context.Background(), sess, validForm())
		if err != nil {
			t.Fatalf("expected checkout to succeed, got %v", err)
		}

		if len(store.created) != 1 {
			t.Fatal("expected order to be committed despite notification failure")
		}
		if result.Notification.Sent {
			t.Error("expected notification outcome to report the failure")
		}
		if len(sess.Cart) != 0 {
			t.Error("expected cart to be cleared")
		}
	})

	t.Run("persistence failure leaves the cart intact", func(t *testing.T) {
		svc, store, notifier, _ := newFixture()
		store.err = errors.New("connection reset")
		sess := &session.Session{ID: "s1", UserID: "u1", Cart: map[string]int{"a": 1}}

		_, err := svc.Checkout(context.Background(), sess, validForm())
		if err == nil {
			t.Fatal("expected an error")
		}

		if len(sess.Cart) != 1 {
			t.Error("expected cart to be untouched after a failed commit")
		}
		if len(notifier.messages) != 0 {
			t.Error("expected no confirmation email after a failed commit")
		}
	})

	t.Run("publishes an order placed event", func(t *testing.T) {
		svc, _, _, publisher := newFixture()
		sess := &session.Session{ID: "s1", UserID: "u1", Cart: map[string]int{"a": 2}}

		if _, err := svc.Checkout(context.Background(), sess, validForm()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if len(publisher.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(publisher.events))
		}
		event, ok := publisher.events[0].(domain.OrderPlacedEvent)
		if !ok {
			t.Fatalf("unexpected event type %T", publisher.events[0])
		}
		if event.ItemCount != 2 || event.Total != 2000 {
			t.Errorf("unexpected event payload: %+v", event)
		}
	})

	t.Run("publish failure does not fail the checkout", func(t *testing.T) {
		svc, store, _, publisher := newFixture()
		publisher.err = errors.New("broker unreachable")
		sess := &session.Session{ID: "s1", UserID: "u1", Cart: map[string]int{"a": 1}}

		if _, err := svc.Checkout(context.Background(), sess, validForm()); err != nil {
			t.Fatalf("expected checkout to succeed, got %v", err)
		}
		if len(store.created) != 1 {
			t.Error("expected order to be committed")
		}
	})

	t.Run("works without a publisher", func(t *testing.T) {
		users := &fakeUsers{user: &domain.User{ID: "u1", Name: "maria"}}
		products := &fakeProducts{products: map[string]domain.Product{
			"a": {ID: "a", Name: "Whey Protein", Price: 1000},
		}}
		store := &fakeOrderStore{}
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		svc := NewService(users, products, store, &fakeNotifier{}, nil, logger)

		sess := &session.Session{ID: "s1", UserID: "u1", Cart: map[string]int{"a": 1}}
		if _, err := svc.Checkout(context.Background(), sess, validForm()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}
