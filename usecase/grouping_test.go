package usecase

import (
	"testing"
	"time"

	"booksmart/model"
)

func strptr(s string) *string { return &s }

func TestFilterByTypesEmptySelectionHidesEverything(t *testing.T) {
	bookmarks := []*model.Bookmark{
		{ID: "b1", Type: model.TypeLink},
		{ID: "b2", Type: model.TypeImage},
	}

	// Unselecting every type is a deliberate "show nothing" state
	got := FilterByTypes(bookmarks, []model.BookmarkType{})
	if len(got) != 0 {
		t.Fatalf("expected no results for empty selection, got %d", len(got))
	}
}

func TestFilterByTypes(t *testing.T) {
	bookmarks := []*model.Bookmark{
		{ID: "b1", Type: model.TypeLink},
		{ID: "b2", Type: model.TypeImage},
		{ID: "b3", Type: model.TypeLink},
		{ID: "b4", Type: model.TypeTodo},
	}

	got := FilterByTypes(bookmarks, []model.BookmarkType{model.TypeLink, model.TypeTodo})
	want := []string{"b1", "b3", "b4"}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestGroupBookmarksFolderAndCategoryBuckets(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	folders := []*model.Folder{
		{ID: "f-papers", Name: "Papers", CreatedAt: base},
		{ID: "f-drafts", Name: "Drafts", ParentFolderID: strptr("f-papers"), CreatedAt: base.Add(time.Minute)},
	}
	bookmarks := []*model.Bookmark{
		// At board root
		{ID: "root-1", CreatedAt: base},
		{ID: "root-2", Categories: []string{"Reading"}, CreatedAt: base.Add(time.Minute)},
		// Inside Papers
		{ID: "paper-1", FolderID: strptr("f-papers"), CreatedAt: base.Add(2 * time.Minute)},
		// Inside Drafts, a level deeper; invisible at board root
		{ID: "draft-1", FolderID: strptr("f-drafts"), CreatedAt: base.Add(3 * time.Minute)},
	}

	groups := GroupBookmarks(bookmarks, folders, nil)

	// Board root shows one folder bucket: Papers. Drafts is nested under
	// Papers and only appears one level down.
	if len(groups.Folders) != 1 || groups.Folders[0].Folder.ID != "f-papers" {
		t.Fatalf("expected a single Papers bucket at root, got %d buckets", len(groups.Folders))
	}
	if len(groups.Folders[0].Bookmarks) != 1 || groups.Folders[0].Bookmarks[0].ID != "paper-1" {
		t.Errorf("Papers bucket should hold paper-1 only, got %v", ids(groups.Folders[0].Bookmarks))
	}
	if len(groups.Uncategorized) != 1 || groups.Uncategorized[0].ID != "root-1" {
		t.Errorf("expected root-1 uncategorized, got %v", ids(groups.Uncategorized))
	}
	if len(groups.Categories) != 1 || groups.Categories[0].Category != "Reading" {
		t.Fatalf("expected one Reading bucket, got %d", len(groups.Categories))
	}

	// Descending into Papers surfaces the Drafts bucket
	inPapers := GroupBookmarks(bookmarks, folders, strptr("f-papers"))
	if len(inPapers.Folders) != 1 || inPapers.Folders[0].Folder.ID != "f-drafts" {
		t.Fatalf("expected Drafts bucket inside Papers")
	}
	if len(inPapers.Folders[0].Bookmarks) != 1 || inPapers.Folders[0].Bookmarks[0].ID != "draft-1" {
		t.Errorf("Drafts bucket should hold draft-1, got %v", ids(inPapers.Folders[0].Bookmarks))
	}
	if len(inPapers.Uncategorized) != 1 || inPapers.Uncategorized[0].ID != "paper-1" {
		t.Errorf("expected paper-1 direct in Papers, got %v", ids(inPapers.Uncategorized))
	}
}

func TestGroupBookmarksMultiCategoryMembership(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	bookmarks := []*model.Bookmark{
		{ID: "b1", Categories: []string{"Go", "Reading"}, CreatedAt: base},
	}

	groups := GroupBookmarks(bookmarks, nil, nil)
	if len(groups.Categories) != 2 {
		t.Fatalf("expected bookmark in both category buckets, got %d buckets", len(groups.Categories))
	}
	for _, bucket := range groups.Categories {
		if len(bucket.Bookmarks) != 1 || bucket.Bookmarks[0].ID != "b1" {
			t.Errorf("bucket %s missing b1", bucket.Category)
		}
	}
}

func TestGroupBookmarksOrdering(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	bookmarks := []*model.Bookmark{
		{ID: "old-reading", Categories: []string{"Reading"}, CreatedAt: base},
		{ID: "new-go", Categories: []string{"Go"}, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "new-reading", Categories: []string{"Reading"}, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "plain-old", CreatedAt: base.Add(time.Minute)},
		{ID: "plain-new", CreatedAt: base.Add(time.Hour)},
	}

	groups := GroupBookmarks(bookmarks, nil, nil)

	// Buckets ordered by earliest member: Reading (base) before Go (+2h)
	if groups.Categories[0].Category != "Reading" || groups.Categories[1].Category != "Go" {
		t.Errorf("expected Reading before Go, got %s, %s",
			groups.Categories[0].Category, groups.Categories[1].Category)
	}

	// Within a bucket, newest first
	reading := groups.Categories[0].Bookmarks
	if reading[0].ID != "new-reading" || reading[1].ID != "old-reading" {
		t.Errorf("expected newest first in Reading, got %v", ids(reading))
	}
	if groups.Uncategorized[0].ID != "plain-new" {
		t.Errorf("expected newest first in uncategorized, got %v", ids(groups.Uncategorized))
	}
}
