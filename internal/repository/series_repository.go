package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shashatv/vod-backend/internal/model"
)

type SeriesRepo struct{ DB *sql.DB }

func NewSeriesRepo(db *sql.DB) *SeriesRepo { return &SeriesRepo{DB: db} }

// Create inserts a series. Titles are globally unique. The category
// reference is optional and not validated: series predate the stricter
// attachment checks applied to videos.
func (r *SeriesRepo) Create(ctx context.Context, title, description, imageURL string, categoryID *uint64) (model.Series, error) {
	title = strings.TrimSpace(title)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO series (title, description, image_url, category_id) VALUES (?,NULLIF(?,''),NULLIF(?,''),?)",
		title, description, imageURL, categoryID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Series{}, ErrDuplicateTitle
		}
		return model.Series{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Series{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a series by id.
func (r *SeriesRepo) GetByID(ctx context.Context, id uint64) (model.Series, error) {
	var s model.Series
	err := r.DB.QueryRowContext(ctx,
		`SELECT id,title,COALESCE(description,''),category_id,COALESCE(image_url,''),created_at
		 FROM series WHERE id=? LIMIT 1`,
		id).Scan(&s.ID, &s.Title, &s.Description, &s.CategoryID, &s.ImageURL, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Series{}, ErrNotFound
	}
	return s, err
}

// List returns all series with the name of their category joined in, newest
// first.
func (r *SeriesRepo) List(ctx context.Context) ([]model.Series, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT s.id,s.title,COALESCE(s.description,''),s.category_id,COALESCE(c.name,''),COALESCE(s.image_url,''),s.created_at
		 FROM series s
		 LEFT JOIN categories c ON c.id = s.category_id
		 ORDER BY s.created_at DESC, s.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Series{}
	for rows.Next() {
		var s model.Series
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.CategoryID, &s.CategoryName, &s.ImageURL, &s.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Exists reports whether a series with the given id exists.
func (r *SeriesRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, "SELECT COUNT(*) FROM series WHERE id=?", id).Scan(&n)
	return n > 0, err
}
