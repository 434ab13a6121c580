package model

import (
	"time"
)

const (
	StatusPlaced     = "placed"
	StatusProcessing = "processing"
	StatusShipped    = "shipped"
	StatusDelivered  = "delivered"
)

// Order is the stored shape: references by id, total frozen at creation.
type Order struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	ProductIDs []string  `json:"product_ids"` // ordered, duplicates allowed
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// HydratedOrder is the read shape: references resolved to full records.
// User or a Products entry is nil when the referenced record no longer exists.
type HydratedOrder struct {
	ID         string     `json:"id"`
	User       *User      `json:"user"`
	Products   []*Product `json:"products"`
	Status     string     `json:"status"`
	TotalPrice float64    `json:"total_price"`
	CreatedAt  time.Time  `json:"created_at"`
}
