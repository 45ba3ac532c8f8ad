package domain

import "time"

// OrderItem holds exactly one unit of a product. A purchase of three units
// of the same product produces three rows, not one row with a quantity.
type OrderItem struct {
	ID        string `json:"id"`
	OrderID   string `json:"order_id"`
	ProductID string `json:"product_id"`
}

type Address struct {
	ID           string `json:"id"`
	OrderID      string `json:"order_id"`
	PostalCode   string `json:"postal_code"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	Items     []OrderItem `json:"items"`
	Address   *Address    `json:"address,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
