package repository

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/shashatv/vod-backend/internal/model"
)

func u64(v uint64) *uint64 { return &v }

func cat(id uint64, name string, parent *uint64) model.Category {
	return model.Category{ID: id, Name: name, ParentID: parent}
}

// Forest used across the tests:
//
//	Movies (1)
//	└── Action (2)
//	    └── Classics (3)
//	Music (4)
func testForest() []model.Category {
	return []model.Category{
		cat(1, "Movies", nil),
		cat(2, "Action", u64(1)),
		cat(3, "Classics", u64(2)),
		cat(4, "Music", nil),
	}
}

func TestAssembleTreeCountsAndNesting(t *testing.T) {
	direct := map[uint64]uint64{2: 3, 3: 2, 4: 1}

	got := assembleTree(testForest(), direct, nil)

	want := []*model.TreeNode{
		{
			Category:         cat(1, "Movies", nil),
			DirectVideoCount: 0,
			TotalVideoCount:  5,
			Subcategories: []*model.TreeNode{
				{
					Category:         cat(2, "Action", u64(1)),
					DirectVideoCount: 3,
					TotalVideoCount:  5,
					Subcategories: []*model.TreeNode{
						{
							Category:         cat(3, "Classics", u64(2)),
							DirectVideoCount: 2,
							TotalVideoCount:  2,
							Subcategories:    []*model.TreeNode{},
						},
					},
				},
			},
		},
		{
			Category:         cat(4, "Music", nil),
			DirectVideoCount: 1,
			TotalVideoCount:  1,
			Subcategories:    []*model.TreeNode{},
		},
	}
	// assembleTree fills the derived child id lists as it links nodes.
	want[0].Children = []uint64{2}
	want[0].Subcategories[0].Children = []uint64{3}
	want[0].Subcategories[0].Subcategories[0].Children = []uint64{}
	want[1].Children = []uint64{}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembleTreeSubtree(t *testing.T) {
	direct := map[uint64]uint64{2: 3, 3: 2}

	got := assembleTree(testForest(), direct, u64(2))
	if len(got) != 1 {
		t.Fatalf("got %d roots, want 1", len(got))
	}
	if got[0].ID != 2 {
		t.Errorf("root id = %d, want 2", got[0].ID)
	}
	if got[0].TotalVideoCount != 5 {
		t.Errorf("TotalVideoCount = %d, want 5", got[0].TotalVideoCount)
	}
	if len(got[0].Subcategories) != 1 || got[0].Subcategories[0].ID != 3 {
		t.Errorf("unexpected subtree shape: %+v", got[0].Subcategories)
	}
}

func TestAssembleTreeUnknownRoot(t *testing.T) {
	got := assembleTree(testForest(), nil, u64(99))
	if got != nil {
		t.Errorf("expected nil for unknown root, got %+v", got)
	}
}

// A parent cycle must terminate instead of recursing forever. Neither node
// of the cycle is a root, so the result is empty.
func TestAssembleTreeSurvivesCycle(t *testing.T) {
	cats := []model.Category{
		cat(1, "A", u64(2)),
		cat(2, "B", u64(1)),
	}
	got := assembleTree(cats, nil, nil)
	if len(got) != 0 {
		t.Errorf("expected no roots for a pure cycle, got %d", len(got))
	}

	// Forcing entry at one cycle member must still terminate.
	got = assembleTree(cats, nil, u64(1))
	if len(got) != 1 {
		t.Fatalf("expected the forced root to be returned, got %d nodes", len(got))
	}
	if n := got[0]; len(n.Subcategories) != 1 || len(n.Subcategories[0].Subcategories) != 0 {
		t.Errorf("cycle was not cut: %+v", n)
	}
}
