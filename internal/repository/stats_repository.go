package repository

import (
	"context"
	"database/sql"

	"github.com/shashatv/vod-backend/internal/model"
)

// GroupCount is one row of a per-category or per-series video count.
type GroupCount struct {
	ID    uint64 `json:"id"`
	Name  string `json:"name"`
	Count uint64 `json:"count"`
}

// StatsReport is a read-only snapshot of catalog activity. Each sub-aggregate
// is a separate point-in-time read; slight skew between them under concurrent
// writes is acceptable.
type StatsReport struct {
	TotalVideos     uint64 `json:"total_videos"`
	TotalCategories uint64 `json:"total_categories"`
	TotalSeries     uint64 `json:"total_series"`
	TotalComplaints uint64 `json:"total_complaints"`
	TotalUsers      uint64 `json:"total_users"`

	TopViewed    []model.Video `json:"top_viewed"`
	TopFavorited []model.Video `json:"top_favorited"`

	VideosPerCategory []GroupCount `json:"videos_per_category"`
	VideosPerSeries   []GroupCount `json:"videos_per_series"`

	RecentVideos     []model.Video     `json:"recent_videos"`
	RecentComplaints []model.Complaint `json:"recent_complaints"`
	RecentCategories []model.Category  `json:"recent_categories"`
}

// StatsRepo aggregates over the whole catalog. It has no mutating
// operations.
type StatsRepo struct {
	DB         *sql.DB
	Videos     *VideoRepo
	Categories *CategoryRepo
	Complaints *ComplaintRepo
}

func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{
		DB:         db,
		Videos:     NewVideoRepo(db),
		Categories: NewCategoryRepo(db),
		Complaints: NewComplaintRepo(db),
	}
}

const statsTopN = 5
const statsRecentN = 10

// Report builds the statistics snapshot.
func (r *StatsRepo) Report(ctx context.Context) (StatsReport, error) {
	var rep StatsReport

	counts := []struct {
		query string
		dst   *uint64
	}{
		{"SELECT COUNT(*) FROM videos", &rep.TotalVideos},
		{"SELECT COUNT(*) FROM categories", &rep.TotalCategories},
		{"SELECT COUNT(*) FROM series", &rep.TotalSeries},
		{"SELECT COUNT(*) FROM complaints", &rep.TotalComplaints},
		{"SELECT COUNT(*) FROM users", &rep.TotalUsers},
	}
	for _, c := range counts {
		if err := r.DB.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return StatsReport{}, err
		}
	}

	var err error
	rep.TopViewed, err = r.Videos.listVideos(ctx,
		"SELECT "+videoCols+" FROM videos ORDER BY views DESC, id LIMIT ?", statsTopN)
	if err != nil {
		return StatsReport{}, err
	}
	rep.TopFavorited, err = r.Videos.listVideos(ctx,
		"SELECT "+videoCols+" FROM videos ORDER BY favorites_count DESC, id LIMIT ?", statsTopN)
	if err != nil {
		return StatsReport{}, err
	}

	rep.VideosPerCategory, err = r.groupCounts(ctx,
		`SELECT c.id, c.name, COUNT(v.id)
		 FROM categories c JOIN videos v ON v.category_id = c.id
		 GROUP BY c.id, c.name ORDER BY COUNT(v.id) DESC, c.name`)
	if err != nil {
		return StatsReport{}, err
	}
	rep.VideosPerSeries, err = r.groupCounts(ctx,
		`SELECT s.id, s.title, COUNT(v.id)
		 FROM series s JOIN videos v ON v.series_id = s.id
		 GROUP BY s.id, s.title ORDER BY COUNT(v.id) DESC, s.title`)
	if err != nil {
		return StatsReport{}, err
	}

	rep.RecentVideos, err = r.Videos.listVideos(ctx,
		"SELECT "+videoCols+" FROM videos ORDER BY uploaded_at DESC, id DESC LIMIT ?", statsRecentN)
	if err != nil {
		return StatsReport{}, err
	}
	rep.RecentComplaints, err = r.Complaints.ListRecent(ctx, statsRecentN)
	if err != nil {
		return StatsReport{}, err
	}
	rep.RecentCategories, err = r.Categories.list(ctx,
		"SELECT "+categoryCols+" FROM categories ORDER BY updated_at DESC, id DESC LIMIT ?", statsRecentN)
	if err != nil {
		return StatsReport{}, err
	}
	return rep, nil
}

func (r *StatsRepo) groupCounts(ctx context.Context, query string) ([]GroupCount, error) {
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []GroupCount{}
	for rows.Next() {
		var g GroupCount
		if err := rows.Scan(&g.ID, &g.Name, &g.Count); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}
