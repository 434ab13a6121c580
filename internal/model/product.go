package model

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       *float64  `json:"price"` // nil until set; a priceless product cannot be ordered
	Image       string    `json:"image,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
