package model

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // stored verbatim, known weakness of the documented contract
	CreatedAt time.Time `json:"created_at"`
}
