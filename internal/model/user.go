package model

import "time"

// User is a registered viewer account. Accounts are created only after the
// email verification flow completes. All fields except the push token and
// password are immutable after creation.
type User struct {
	ID           uint64    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	PhoneNumber  string    `json:"phone_number"`
	PushToken    string    `json:"push_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Admin is a back-office account. Admins live in a separate identity space
// from users and are not subject to the single-session constraint.
type Admin struct {
	ID           uint64    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
