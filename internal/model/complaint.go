package model

import "time"

// Complaint is an append-only user feedback entry. There is no update or
// retraction path.
type Complaint struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      uint64    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}
