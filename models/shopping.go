package models

import "time"

// ShoppingItem is a per-user grocery entry. Lists are ordered with
// unpurchased items first, most recently updated first within each group.
type ShoppingItem struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"-"`
	Name      string    `json:"name"`
	Quantity  *string   `json:"quantity"`
	Purchased bool      `json:"purchased"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s ShoppingItem) TableName() string {
	return "shopping_items"
}
