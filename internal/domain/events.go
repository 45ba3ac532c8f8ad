package domain

import "time"

// OrderPlacedEvent is published after a checkout commits. Publishing is
// best-effort and never affects the committed order.
type OrderPlacedEvent struct {
	OrderID   string    `json:"order_id"`
	UserID    string    `json:"user_id"`
	Total     int64     `json:"total"`
	ItemCount int       `json:"item_count"`
	Timestamp time.Time `json:"timestamp"`
}
