package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/shashatv/vod-backend/internal/model"
)

// ComplaintRepo is an append-only ledger of user feedback. There is no
// update or delete path by design.
type ComplaintRepo struct{ DB *sql.DB }

func NewComplaintRepo(db *sql.DB) *ComplaintRepo { return &ComplaintRepo{DB: db} }

// Create appends a complaint. Title and description are both required.
func (r *ComplaintRepo) Create(ctx context.Context, userID uint64, title, description string) (model.Complaint, error) {
	title = strings.TrimSpace(title)
	description = strings.TrimSpace(description)
	if title == "" || description == "" {
		return model.Complaint{}, ErrMissingFields
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO complaints (title, description, user_id) VALUES (?,?,?)",
		title, description, userID)
	if err != nil {
		return model.Complaint{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Complaint{}, err
	}
	var c model.Complaint
	err = r.DB.QueryRowContext(ctx,
		"SELECT id,title,description,user_id,created_at FROM complaints WHERE id=? LIMIT 1",
		id).Scan(&c.ID, &c.Title, &c.Description, &c.UserID, &c.CreatedAt)
	return c, err
}

// ListRecent returns the newest complaints, limit entries.
func (r *ComplaintRepo) ListRecent(ctx context.Context, limit int) ([]model.Complaint, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,title,description,user_id,created_at FROM complaints ORDER BY created_at DESC, id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Complaint{}
	for rows.Next() {
		var c model.Complaint
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.UserID, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
