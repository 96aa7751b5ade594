package usecase

import (
	"testing"
	"time"

	"booksmart/model"
)

func searchFixture() ([]*model.Bookmark, map[string][]*model.Note, map[string][]*model.TodoItem) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	bookmarks := []*model.Bookmark{
		{ID: "b1", Title: "Weekly planning", Summary: "meeting agenda", CreatedAt: base},
		{ID: "b2", Title: "Go generics guide", URL: "https://go.dev/blog/generics", CreatedAt: base.Add(time.Minute)},
		{ID: "b3", Title: "Recipes", Categories: []string{"Cooking"}, Tags: []string{"dinner"}, CreatedAt: base.Add(2 * time.Minute)},
		{ID: "b4", Title: "Design doc", MetaDescription: "architecture overview for generics support", CreatedAt: base.Add(3 * time.Minute)},
	}
	notes := map[string][]*model.Note{
		"b1": {{ID: "n1", BookmarkID: "b1", Content: "discuss generics rollout"}},
	}
	todos := map[string][]*model.TodoItem{
		"b3": {{ID: "t1", BookmarkID: "b3", Text: "buy dinner ingredients"}},
	}
	return bookmarks, notes, todos
}

func TestSearchBookmarksEmptyQueryReturnsInput(t *testing.T) {
	bookmarks, notes, todos := searchFixture()

	got := SearchBookmarks(bookmarks, notes, todos, "   ")
	if len(got) != len(bookmarks) {
		t.Fatalf("expected %d bookmarks, got %d", len(bookmarks), len(got))
	}
	for i := range got {
		if got[i].ID != bookmarks[i].ID {
			t.Errorf("position %d: expected %s, got %s", i, bookmarks[i].ID, got[i].ID)
		}
	}
}

func TestSearchBookmarksPriorityOrder(t *testing.T) {
	bookmarks, notes, todos := searchFixture()

	// "generics" hits b2 on URL (priority 1), b4 on meta description
	// (priority 3), b1 on note content (priority 4)
	got := SearchBookmarks(bookmarks, notes, todos, "generics")

	want := []string{"b2", "b4", "b1"}
	if len(got) != len(want) {
		t.Fatalf("expected %d results, got %d", len(want), len(got))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}
}

func TestSearchBookmarksFirstMatchWins(t *testing.T) {
	// Query matching both title and tag must rank by title only
	bookmarks := []*model.Bookmark{
		{ID: "title-hit", Title: "dinner plans"},
		{ID: "tag-hit", Title: "groceries", Tags: []string{"dinner"}},
	}

	got := SearchBookmarks(bookmarks, nil, nil, "dinner")
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].ID != "title-hit" {
		t.Errorf("expected title match first, got %s", got[0].ID)
	}
}

func TestSearchBookmarksCaseInsensitive(t *testing.T) {
	bookmarks, notes, todos := searchFixture()

	got := SearchBookmarks(bookmarks, notes, todos, "COOKING")
	if len(got) != 1 || got[0].ID != "b3" {
		t.Fatalf("expected category match on b3, got %v", ids(got))
	}
}

func TestSearchBookmarksTodoTextLowestPriority(t *testing.T) {
	bookmarks, notes, todos := searchFixture()

	got := SearchBookmarks(bookmarks, notes, todos, "dinner")
	// b3 matches on tag (priority 6); the todo text also matches but the
	// tag match is found first
	if len(got) != 1 || got[0].ID != "b3" {
		t.Fatalf("expected b3, got %v", ids(got))
	}
}

func TestSearchBookmarksNoMatches(t *testing.T) {
	bookmarks, notes, todos := searchFixture()

	got := SearchBookmarks(bookmarks, notes, todos, "zebra")
	if len(got) != 0 {
		t.Fatalf("expected no results, got %v", ids(got))
	}
}

func ids(bookmarks []*model.Bookmark) []string {
	out := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		out[i] = b.ID
	}
	return out
}
