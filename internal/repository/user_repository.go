package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shashatv/vod-backend/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a user with an already-hashed password and returns its ID.
// Email and phone number are unique; violations map to typed errors so the
// verification flow can tell the caller which field collided.
func (r *UserRepo) Create(ctx context.Context, name, email, passwordHash, phone, pushToken string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password_hash, phone_number, push_token) VALUES (?,?,?,?,NULLIF(?,''))",
		name, email, passwordHash, phone, pushToken)
	if err != nil {
		low := strings.ToLower(err.Error())
		if strings.Contains(low, "1062") {
			if strings.Contains(low, "phone") {
				return 0, ErrPhoneExists
			}
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	var push sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,phone_number,push_token,created_at FROM users WHERE email=? LIMIT 1",
		email).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.PhoneNumber, &push, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	u.PushToken = push.String
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	var push sql.NullString
	err := r.DB.QueryRowContext(ctx,
		"SELECT id,name,email,password_hash,phone_number,push_token,created_at FROM users WHERE id=? LIMIT 1",
		id).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.PhoneNumber, &push, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	u.PushToken = push.String
	return u, err
}

// EmailExists reports whether a user with the given email already exists.
// Used before the verification mail goes out so the pending cache never
// holds registrations that are guaranteed to fail.
func (r *UserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var n int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email=?", email).Scan(&n)
	return n > 0, err
}

// UpdatePushToken replaces the user's push notification token. The push
// token is the only mutable field besides the password.
func (r *UserRepo) UpdatePushToken(ctx context.Context, id uint64, token string) error {
	// RowsAffected is 0 both for a missing user and for an unchanged token,
	// so existence is checked explicitly.
	var n int
	if err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM users WHERE id=?", id).Scan(&n); err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET push_token=NULLIF(?,'') WHERE id=?", token, id)
	return err
}
