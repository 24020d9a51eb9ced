package model

import "time"

// Video is a single piece of playable content. A video must attach to a
// category or a series (or both); an episode is a video whose SeriesID is
// set. Favorite is a global per-video flag, not a per-user relation: once a
// video is marked favorite the flag stays set and FavoritesCount records how
// many times the mark endpoint succeeded.
type Video struct {
	ID             uint64    `json:"id"`
	Title          string    `json:"title"`
	Filename       string    `json:"filename,omitempty"`
	CategoryID     *uint64   `json:"category_id"`
	SeriesID       *uint64   `json:"series_id"`
	URL            string    `json:"url"`
	ThumbnailURL   string    `json:"thumbnail_url,omitempty"`
	UploadedAt     time.Time `json:"uploaded_at"`
	Views          uint64    `json:"views"`
	ViewedBy       []uint64  `json:"viewed_by,omitempty"`
	Favorite       bool      `json:"favorite"`
	FavoritesCount uint64    `json:"favorites_count"`
}

// Series groups episodes under a shared title. Episodes reference the series
// by id from the videos table; the series row itself carries no episode list.
type Series struct {
	ID           uint64    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	CategoryID   *uint64   `json:"category_id"`
	CategoryName string    `json:"category_name,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
