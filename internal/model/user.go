package model

import "time"

// User is the account that owns one or more bots. APIToken authenticates the
// account against the responder backend.
type User struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Email     string    `json:"email"`
	APIToken  string    `json:"-"`
	ID        int64     `json:"id"`
}
