package orders

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/powersupps/storefront/internal/domain"
)

var errMissingAddress = errors.New("order requires an address")

type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create persists the order, its address and every item in one transaction.
// The order row is inserted first so the dependent rows can reference its ID;
// either everything commits or nothing does.
func (r *Repository) Create(ctx context.Context, order *domain.Order) error {
	if order.Address == nil {
		return errMissingAddress
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	order.ID = uuid.New().String()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, user_id, created_at)
		VALUES ($1, $2, $3)
	`, order.ID, order.UserID, order.CreatedAt)
	if err != nil {
		return err
	}

	addr := order.Address
	addr.ID = uuid.New().String()
	addr.OrderID = order.ID

	_, err = tx.ExecContext(ctx, `
		INSERT INTO addresses (id, order_id, postal_code, street, number, complement, neighborhood, city, state)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, addr.ID, addr.OrderID, addr.PostalCode, addr.Street, addr.Number, addr.Complement, addr.Neighborhood, addr.City, addr.State)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.ID = uuid.New().String()
		item.OrderID = order.ID

		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id)
			VALUES ($1, $2, $3)
		`, item.ID, item.OrderID, item.ProductID)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	order := &domain.Order{Address: &domain.Address{}}

	err := r.db.QueryRowContext(ctx, `
		SELECT o.id, o.user_id, o.created_at,
		       a.id, a.order_id, a.postal_code, a.street, a.number, a.complement, a.neighborhood, a.city, a.state
		FROM orders o
		JOIN addresses a ON a.order_id = o.id
		WHERE o.id = $1
	`, id).Scan(
		&order.ID, &order.UserID, &order.CreatedAt,
		&order.Address.ID, &order.Address.OrderID, &order.Address.PostalCode,
		&order.Address.Street, &order.Address.Number, &order.Address.Complement,
		&order.Address.Neighborhood, &order.Address.City, &order.Address.State,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id
		FROM order_items
		WHERE order_id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.ID, &item.OrderID, &item.ProductID); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}

// ListByUser returns the user's orders newest-first, items fetched in a
// single batched query rather than one query per order.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT o.id, o.user_id, o.created_at,
		       a.id, a.order_id, a.postal_code, a.street, a.number, a.complement, a.neighborhood, a.city, a.state
		FROM orders o
		JOIN addresses a ON a.order_id = o.id
		WHERE o.user_id = $1
		ORDER BY o.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	orderMap := make(map[string]*domain.Order)
	var orderIDs []string

	for rows.Next() {
		order := domain.Order{Address: &domain.Address{}}
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.CreatedAt,
			&order.Address.ID, &order.Address.OrderID, &order.Address.PostalCode,
			&order.Address.Street, &order.Address.Number, &order.Address.Complement,
			&order.Address.Neighborhood, &order.Address.City, &order.Address.State,
		); err != nil {
			return nil, err
		}
		order.Items = []domain.OrderItem{}
		orderMap[order.ID] = &order
		orderIDs = append(orderIDs, order.ID)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(orderIDs) == 0 {
		return []domain.Order{}, nil
	}

	itemRows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id
		FROM order_items
		WHERE order_id = ANY($1)
	`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer func() { _ = itemRows.Close() }()

	for itemRows.Next() {
		var item domain.OrderItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID); err != nil {
			return nil, err
		}
		order := orderMap[item.OrderID]
		order.Items = append(order.Items, item)
	}

	if err := itemRows.Err(); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, 0, len(orderIDs))
	for _, id := range orderIDs {
		orders = append(orders, *orderMap[id])
	}

	return orders, nil
}
