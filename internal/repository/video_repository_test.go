package repository

import (
	"context"
	"errors"
	"testing"
)

// The attachment invariant is checked before any query runs, so a nil DB
// proves the rejection happens at the repository boundary.
func TestCreateVideoRequiresAttachment(t *testing.T) {
	r := NewVideoRepo(nil)
	_, err := r.Create(context.Background(), CreateVideoParams{
		Title: "Episode1",
		URL:   "https://cdn.example.com/ep1.mp4",
	})
	if !errors.Is(err, ErrMissingAttachment) {
		t.Fatalf("err = %v, want ErrMissingAttachment", err)
	}
}

func TestByCategoryOrSeriesRequiresFilter(t *testing.T) {
	r := NewVideoRepo(nil)
	_, err := r.ByCategoryOrSeries(context.Background(), nil, nil)
	if !errors.Is(err, ErrMissingFilter) {
		t.Fatalf("err = %v, want ErrMissingFilter", err)
	}
}
