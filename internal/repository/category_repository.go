package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/shashatv/vod-backend/internal/model"
)

// CategoryRepo maintains the category forest. Parent/child structure is
// stored only as a parent_id pointer per row; the child lists exposed on the
// API are derived from those pointers at read time, so there is no second
// source of truth to keep in sync.
type CategoryRepo struct{ DB *sql.DB }

func NewCategoryRepo(db *sql.DB) *CategoryRepo { return &CategoryRepo{DB: db} }

const categoryCols = "id,name,COALESCE(description,''),COALESCE(image_url,''),parent_id,created_at,updated_at"

func scanCategory(row interface{ Scan(...any) error }) (model.Category, error) {
	var c model.Category
	err := row.Scan(&c.ID, &c.Name, &c.Description, &c.ImageURL, &c.ParentID, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a category. Names are unique across the whole forest. When
// parentID is set the parent must exist; attaching the new id to the parent's
// child list needs no extra write because child lists are derived.
func (r *CategoryRepo) Create(ctx context.Context, name, description, imageURL string, parentID *uint64) (model.Category, error) {
	name = strings.TrimSpace(name)
	if parentID != nil {
		var n int
		if err := r.DB.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM categories WHERE id=?", *parentID).Scan(&n); err != nil {
			return model.Category{}, err
		}
		if n == 0 {
			return model.Category{}, ErrParentNotFound
		}
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO categories (name, description, image_url, parent_id) VALUES (?,NULLIF(?,''),NULLIF(?,''),?)",
		name, description, imageURL, parentID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Category{}, ErrDuplicateName
		}
		return model.Category{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Category{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID fetches a category with its derived child list.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (model.Category, error) {
	c, err := scanCategory(r.DB.QueryRowContext(ctx,
		"SELECT "+categoryCols+" FROM categories WHERE id=? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, ErrNotFound
	}
	if err != nil {
		return model.Category{}, err
	}
	cs := []model.Category{c}
	if err := r.fillChildren(ctx, cs); err != nil {
		return model.Category{}, err
	}
	return cs[0], nil
}

// Delete removes a category row. It deliberately does not cascade:
// descendant categories keep their dangling parent_id and attached videos
// keep their category_id. The former parent's child list heals on the next
// read because it is derived from parent pointers.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM categories WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListRoots returns all categories with no parent.
func (r *CategoryRepo) ListRoots(ctx context.Context) ([]model.Category, error) {
	return r.list(ctx, "SELECT "+categoryCols+" FROM categories WHERE parent_id IS NULL ORDER BY name")
}

// ListChildren returns the direct subcategories of parentID. The parent must
// exist even when it has no children.
func (r *CategoryRepo) ListChildren(ctx context.Context, parentID uint64) ([]model.Category, error) {
	var n int
	if err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM categories WHERE id=?", parentID).Scan(&n); err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, ErrNotFound
	}
	return r.list(ctx, "SELECT "+categoryCols+" FROM categories WHERE parent_id=? ORDER BY name", parentID)
}

// Leaves returns categories that are no other category's parent, computed as
// the set difference between all ids and the parent ids actually in use.
func (r *CategoryRepo) Leaves(ctx context.Context) ([]model.Category, error) {
	return r.list(ctx, "SELECT "+categoryCols+` FROM categories
		WHERE id NOT IN (SELECT DISTINCT parent_id FROM categories WHERE parent_id IS NOT NULL)
		ORDER BY name`)
}

// SearchByName finds categories whose name contains the query,
// case-insensitively.
func (r *CategoryRepo) SearchByName(ctx context.Context, query string) ([]model.Category, error) {
	return r.list(ctx, "SELECT "+categoryCols+" FROM categories WHERE LOWER(name) LIKE ? ORDER BY name",
		"%"+strings.ToLower(strings.TrimSpace(query))+"%")
}

// IsRoot reports whether the category exists and has no parent. Returns
// ErrCategoryNotFound when the id is unknown.
func (r *CategoryRepo) IsRoot(ctx context.Context, id uint64) (bool, error) {
	var parent sql.NullInt64
	err := r.DB.QueryRowContext(ctx,
		"SELECT parent_id FROM categories WHERE id=? LIMIT 1", id).Scan(&parent)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrCategoryNotFound
	}
	if err != nil {
		return false, err
	}
	return !parent.Valid, nil
}

// Tree assembles the nested category tree. When rootID is nil every root
// category becomes a top-level node; otherwise only the subtree under rootID
// is returned (ErrNotFound when the root is unknown). Each node carries its
// direct and cumulative video counts.
func (r *CategoryRepo) Tree(ctx context.Context, rootID *uint64) ([]*model.TreeNode, error) {
	cats, err := r.list(ctx, "SELECT "+categoryCols+" FROM categories ORDER BY name")
	if err != nil {
		return nil, err
	}
	direct := make(map[uint64]uint64)
	rows, err := r.DB.QueryContext(ctx,
		"SELECT category_id, COUNT(*) FROM videos WHERE category_id IS NOT NULL GROUP BY category_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id, n uint64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		direct[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if rootID != nil {
		found := false
		for _, c := range cats {
			if c.ID == *rootID {
				found = true
				break
			}
		}
		if !found {
			return nil, ErrNotFound
		}
	}
	return assembleTree(cats, direct, rootID), nil
}

// maxTreeDepth bounds tree assembly. The forest is acyclic by construction,
// but a parent cycle slipped in by concurrent updates must not hang the
// request.
const maxTreeDepth = 64

// assembleTree builds TreeNodes from a flat category list using an arena of
// nodes keyed by id. Nodes are linked breadth-first from the roots with a
// visited set and a depth cap, so a corrupt parent pointer can never produce
// an infinite structure. Totals are accumulated bottom-up.
func assembleTree(cats []model.Category, direct map[uint64]uint64, rootID *uint64) []*model.TreeNode {
	byID := make(map[uint64]model.Category, len(cats))
	childIDs := make(map[uint64][]uint64)
	var rootIDs []uint64
	for _, c := range cats {
		byID[c.ID] = c
		if c.ParentID != nil {
			childIDs[*c.ParentID] = append(childIDs[*c.ParentID], c.ID)
		} else {
			rootIDs = append(rootIDs, c.ID)
		}
	}
	if rootID != nil {
		if _, ok := byID[*rootID]; !ok {
			return nil
		}
		rootIDs = []uint64{*rootID}
	}

	visited := make(map[uint64]bool, len(cats))
	var build func(id uint64, depth int) *model.TreeNode
	build = func(id uint64, depth int) *model.TreeNode {
		if depth > maxTreeDepth || visited[id] {
			return nil
		}
		visited[id] = true
		c := byID[id]
		n := &model.TreeNode{
			Category:         c,
			DirectVideoCount: direct[id],
			Subcategories:    []*model.TreeNode{},
		}
		n.Children = []uint64{}
		n.TotalVideoCount = n.DirectVideoCount
		for _, cid := range childIDs[id] {
			child := build(cid, depth+1)
			if child == nil {
				continue
			}
			n.Subcategories = append(n.Subcategories, child)
			n.Children = append(n.Children, cid)
			n.TotalVideoCount += child.TotalVideoCount
		}
		return n
	}

	out := make([]*model.TreeNode, 0, len(rootIDs))
	for _, id := range rootIDs {
		if n := build(id, 0); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (r *CategoryRepo) list(ctx context.Context, query string, args ...any) ([]model.Category, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.fillChildren(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// fillChildren populates the derived Children lists for a batch of
// categories with a single query over their parent pointers.
func (r *CategoryRepo) fillChildren(ctx context.Context, cats []model.Category) error {
	if len(cats) == 0 {
		return nil
	}
	idx := make(map[uint64]int, len(cats))
	placeholders := make([]string, 0, len(cats))
	args := make([]any, 0, len(cats))
	for i := range cats {
		cats[i].Children = []uint64{}
		idx[cats[i].ID] = i
		placeholders = append(placeholders, "?")
		args = append(args, cats[i].ID)
	}
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, parent_id FROM categories WHERE parent_id IN ("+strings.Join(placeholders, ",")+")",
		args...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var id, parent uint64
		if err := rows.Scan(&id, &parent); err != nil {
			return err
		}
		if i, ok := idx[parent]; ok {
			cats[i].Children = append(cats[i].Children, id)
		}
	}
	return rows.Err()
}
