// Package queue defines message payloads exchanged over the message broker.
package queue

// VideoUploadedEvent is published when a video record is successfully
// created. It carries enough information for downstream consumers to log,
// notify, or trigger analytics without querying the primary database.
type VideoUploadedEvent struct {
	VideoID    uint64  `json:"video_id"`
	Title      string  `json:"title"`
	CategoryID *uint64 `json:"category_id,omitempty"`
	SeriesID   *uint64 `json:"series_id,omitempty"`
	URL        string  `json:"url"`
	UploadedAt string  `json:"uploaded_at"`
}
