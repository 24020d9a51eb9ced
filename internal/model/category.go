package model

import "time"

// Category is a node in the content forest. A category with ParentID == nil
// is a root ("main") category. Children is a derived view computed from the
// parent pointers of other categories at read time; it is never stored, so
// it cannot drift out of sync with the parent column.
type Category struct {
	ID          uint64    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	ParentID    *uint64   `json:"parent_id"`
	Children    []uint64  `json:"children"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TreeNode is a category annotated with its subtree for the nested-tree
// endpoint. DirectVideoCount counts videos attached to this category only;
// TotalVideoCount adds the counts of every descendant.
type TreeNode struct {
	Category
	DirectVideoCount uint64      `json:"direct_video_count"`
	TotalVideoCount  uint64      `json:"total_video_count"`
	Subcategories    []*TreeNode `json:"subcategories"`
}
