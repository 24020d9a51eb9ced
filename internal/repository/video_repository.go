package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shashatv/vod-backend/internal/model"
)

type VideoRepo struct{ DB *sql.DB }

func NewVideoRepo(db *sql.DB) *VideoRepo { return &VideoRepo{DB: db} }

const videoCols = "id,title,COALESCE(filename,''),category_id,series_id,url,COALESCE(thumbnail_url,''),uploaded_at,views,favorite,favorites_count"

func scanVideo(row interface{ Scan(...any) error }) (model.Video, error) {
	var v model.Video
	err := row.Scan(&v.ID, &v.Title, &v.Filename, &v.CategoryID, &v.SeriesID,
		&v.URL, &v.ThumbnailURL, &v.UploadedAt, &v.Views, &v.Favorite, &v.FavoritesCount)
	return v, err
}

// CreateVideoParams carries everything needed to insert a video after its
// file has been uploaded to the blob store.
type CreateVideoParams struct {
	Title        string
	Filename     string
	URL          string
	ThumbnailURL string
	CategoryID   *uint64
	SeriesID     *uint64

	// AllowRootCategory mirrors the deployment policy: when false, videos
	// may only attach to subcategories.
	AllowRootCategory bool
}

// Create inserts a video. A video must attach to a category or a series.
// When a category is given it must exist, and unless the root policy allows
// it, it must not be a root category. The (title, series) pair is unique so
// a series never holds two episodes with the same title.
func (r *VideoRepo) Create(ctx context.Context, p CreateVideoParams) (model.Video, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.CategoryID == nil && p.SeriesID == nil {
		return model.Video{}, ErrMissingAttachment
	}
	if p.CategoryID != nil {
		var parent sql.NullInt64
		err := r.DB.QueryRowContext(ctx,
			"SELECT parent_id FROM categories WHERE id=? LIMIT 1", *p.CategoryID).Scan(&parent)
		if errors.Is(err, sql.ErrNoRows) {
			return model.Video{}, ErrCategoryNotFound
		}
		if err != nil {
			return model.Video{}, err
		}
		if !parent.Valid && !p.AllowRootCategory {
			return model.Video{}, ErrRootCategoryForbidden
		}
	}
	res, err := r.DB.ExecContext(ctx,
		`INSERT INTO videos (title, filename, category_id, series_id, url, thumbnail_url)
		 VALUES (?,NULLIF(?,''),?,?,?,NULLIF(?,''))`,
		p.Title, p.Filename, p.CategoryID, p.SeriesID, p.URL, p.ThumbnailURL)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Video{}, ErrDuplicateEpisode
		}
		return model.Video{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Video{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a video including the list of users who viewed it.
func (r *VideoRepo) GetByID(ctx context.Context, id uint64) (model.Video, error) {
	v, err := scanVideo(r.DB.QueryRowContext(ctx,
		"SELECT "+videoCols+" FROM videos WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Video{}, ErrNotFound
	}
	if err != nil {
		return model.Video{}, err
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT user_id FROM video_views WHERE video_id=? ORDER BY viewed_at", id)
	if err != nil {
		return model.Video{}, err
	}
	defer rows.Close()
	for rows.Next() {
		var uid uint64
		if err := rows.Scan(&uid); err != nil {
			return model.Video{}, err
		}
		v.ViewedBy = append(v.ViewedBy, uid)
	}
	return v, rows.Err()
}

// RecordView counts a view once per (video, user) pair. The dedup check and
// the counter increment run in one transaction keyed on the conditional
// insert into video_views, so concurrent duplicate requests cannot double
// count. Returns alreadyViewed=true on every call after the first.
func (r *VideoRepo) RecordView(ctx context.Context, videoID, userID uint64) (bool, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM videos WHERE id=?", videoID).Scan(&n); err != nil {
		return false, err
	}
	if n == 0 {
		return false, ErrNotFound
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT IGNORE INTO video_views (video_id, user_id) VALUES (?,?)", videoID, userID)
	if err != nil {
		return false, err
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if inserted == 0 {
		// Pair already present: the view was counted by an earlier call.
		return true, tx.Commit()
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE videos SET views = views + 1 WHERE id=?", videoID); err != nil {
		return false, err
	}
	return false, tx.Commit()
}

// AddToFavorites sets the global favorite flag and bumps the counter in a
// single conditional update. A second call fails with ErrAlreadyFavorited.
func (r *VideoRepo) AddToFavorites(ctx context.Context, videoID uint64) (model.Video, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE videos SET favorite = 1, favorites_count = favorites_count + 1 WHERE id=? AND favorite = 0",
		videoID)
	if err != nil {
		return model.Video{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Video{}, err
	}
	if n == 0 {
		// Either absent or already favorited; look once to tell them apart.
		var fav bool
		err := r.DB.QueryRowContext(ctx,
			"SELECT favorite FROM videos WHERE id=? LIMIT 1", videoID).Scan(&fav)
		if errors.Is(err, sql.ErrNoRows) {
			return model.Video{}, ErrNotFound
		}
		if err != nil {
			return model.Video{}, err
		}
		return model.Video{}, ErrAlreadyFavorited
	}
	return r.GetByID(ctx, videoID)
}

// Suggest returns up to limit videos related to the given one: episodes of
// the same series when the source belongs to one, otherwise videos in the
// same category. The source video is always excluded and results are ordered
// by view count descending. An empty result is not an error.
func (r *VideoRepo) Suggest(ctx context.Context, videoID uint64, limit int) ([]model.Video, error) {
	if limit <= 0 {
		limit = 10
	}
	src, err := r.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	switch {
	case src.SeriesID != nil:
		return r.listVideos(ctx,
			"SELECT "+videoCols+" FROM videos WHERE series_id=? AND id<>? ORDER BY views DESC LIMIT ?",
			*src.SeriesID, videoID, limit)
	case src.CategoryID != nil:
		return r.listVideos(ctx,
			"SELECT "+videoCols+" FROM videos WHERE category_id=? AND id<>? ORDER BY views DESC LIMIT ?",
			*src.CategoryID, videoID, limit)
	default:
		return []model.Video{}, nil
	}
}

// SearchByTitle finds videos whose title contains the query,
// case-insensitively.
func (r *VideoRepo) SearchByTitle(ctx context.Context, query string) ([]model.Video, error) {
	return r.listVideos(ctx,
		"SELECT "+videoCols+" FROM videos WHERE LOWER(title) LIKE ? ORDER BY uploaded_at DESC, id DESC",
		"%"+strings.ToLower(strings.TrimSpace(query))+"%")
}

// ByCategoryOrSeries lists videos filtered by category and/or series, newest
// first. At least one filter is required.
func (r *VideoRepo) ByCategoryOrSeries(ctx context.Context, categoryID, seriesID *uint64) ([]model.Video, error) {
	if categoryID == nil && seriesID == nil {
		return nil, ErrMissingFilter
	}
	where := []string{}
	args := []any{}
	if categoryID != nil {
		where = append(where, "category_id=?")
		args = append(args, *categoryID)
	}
	if seriesID != nil {
		where = append(where, "series_id=?")
		args = append(args, *seriesID)
	}
	return r.listVideos(ctx,
		"SELECT "+videoCols+" FROM videos WHERE "+strings.Join(where, " AND ")+
			" ORDER BY uploaded_at DESC, id DESC", args...)
}

// Latest returns the newest videos of the named category alongside the
// newest episodes across all series, limit entries each.
func (r *VideoRepo) Latest(ctx context.Context, categoryName string, limit int) (catVideos, episodes []model.Video, err error) {
	if limit <= 0 {
		limit = 10
	}
	catVideos, err = r.listVideos(ctx,
		`SELECT `+videoCols+` FROM videos
		 WHERE category_id = (SELECT id FROM categories WHERE name=? LIMIT 1)
		 ORDER BY uploaded_at DESC, id DESC LIMIT ?`, categoryName, limit)
	if err != nil {
		return nil, nil, err
	}
	episodes, err = r.listVideos(ctx,
		"SELECT "+videoCols+" FROM videos WHERE series_id IS NOT NULL ORDER BY uploaded_at DESC, id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, nil, err
	}
	return catVideos, episodes, nil
}

func (r *VideoRepo) listVideos(ctx context.Context, query string, args ...any) ([]model.Video, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Video{}
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
