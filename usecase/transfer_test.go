package usecase

import (
	"context"
	"testing"
	"time"

	"booksmart/dto"
	"booksmart/model"
)

func accountFixture() *AccountData {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	return &AccountData{
		Boards: []*model.Board{
			{ID: "board-1", UserID: "u1", Name: "My Board", CreatedAt: base},
		},
		Folders: []*model.Folder{
			{ID: "folder-1", UserID: "u1", BoardID: "board-1", Name: "Papers", CreatedAt: base},
			{ID: "folder-2", UserID: "u1", BoardID: "board-1", Name: "Drafts", ParentFolderID: strptr("folder-1"), CreatedAt: base},
		},
		Bookmarks: []*model.Bookmark{
			{
				ID: "bm-1", UserID: "u1", BoardID: "board-1", FolderID: strptr("folder-2"),
				Title: "Go blog", URL: "https://go.dev/blog", Type: model.TypeLink,
				Categories: []string{"Reading"}, Tags: []string{"go"}, CreatedAt: base,
			},
			{
				ID: "bm-2", UserID: "u1", BoardID: "board-1",
				Title: "Chores", Type: model.TypeTodo, Categories: []string{"Home"}, CreatedAt: base,
			},
		},
		Notes: []*model.Note{
			{ID: "note-1", UserID: "u1", BookmarkID: "bm-1", Content: "read weekly", CreatedAt: base},
		},
		TodoItems: []*model.TodoItem{
			{ID: "todo-1", UserID: "u1", BookmarkID: "bm-2", Text: "laundry", Completed: true, CreatedAt: base},
		},
	}
}

func TestBuildSnapshot(t *testing.T) {
	snapshot := BuildSnapshot(accountFixture(), "board-1")

	if snapshot.Version != dto.ExportVersion {
		t.Errorf("expected version %s, got %s", dto.ExportVersion, snapshot.Version)
	}
	if snapshot.CurrentBoardID != "board-1" {
		t.Errorf("expected currentBoardId board-1, got %s", snapshot.CurrentBoardID)
	}
	if len(snapshot.Boards) != 1 {
		t.Fatalf("expected 1 board, got %d", len(snapshot.Boards))
	}

	board := snapshot.Boards[0]
	if len(board.Folders) != 2 || len(board.Bookmarks) != 2 {
		t.Fatalf("expected 2 folders / 2 bookmarks, got %d / %d", len(board.Folders), len(board.Bookmarks))
	}
	if len(board.Bookmarks[0].Notes) != 1 {
		t.Errorf("bm-1 should carry its note")
	}
	if len(board.Bookmarks[1].TodoItems) != 1 || !board.Bookmarks[1].TodoItems[0].Completed {
		t.Errorf("bm-2 should carry its completed todo item")
	}

	// Derived sets, sorted
	if len(snapshot.Categories) != 2 || snapshot.Categories[0] != "Home" || snapshot.Categories[1] != "Reading" {
		t.Errorf("unexpected categories: %v", snapshot.Categories)
	}
	if len(snapshot.Tags) != 1 || snapshot.Tags[0] != "go" {
		t.Errorf("unexpected tags: %v", snapshot.Tags)
	}
}

func TestSnapshotRoundTripRemapsIDs(t *testing.T) {
	original := accountFixture()
	snapshot := BuildSnapshot(original, "")

	imported := RemapSnapshot(snapshot, "u2")

	if len(imported.Boards) != 1 || len(imported.Folders) != 2 || len(imported.Bookmarks) != 2 {
		t.Fatalf("round trip lost records")
	}

	// Every ID must be fresh
	if imported.Boards[0].ID == "board-1" {
		t.Error("board ID was not remapped")
	}
	for _, f := range imported.Folders {
		if f.ID == "folder-1" || f.ID == "folder-2" {
			t.Errorf("folder ID %s was not remapped", f.ID)
		}
		if f.BoardID != imported.Boards[0].ID {
			t.Errorf("folder points at stale board %s", f.BoardID)
		}
	}

	// Parent and folder links must follow the new IDs
	var drafts *model.Folder
	for _, f := range imported.Folders {
		if f.Name == "Drafts" {
			drafts = f
		}
	}
	if drafts == nil || drafts.ParentFolderID == nil {
		t.Fatal("Drafts lost its parent link")
	}

	var goBlog *model.Bookmark
	for _, b := range imported.Bookmarks {
		if b.Title == "Go blog" {
			goBlog = b
		}
	}
	if goBlog == nil || goBlog.FolderID == nil || *goBlog.FolderID != drafts.ID {
		t.Fatal("bookmark folder link was not remapped")
	}
	if goBlog.UserID != "u2" {
		t.Errorf("bookmark should belong to the importing user, got %s", goBlog.UserID)
	}

	// Attachments follow their bookmark's new ID
	if len(imported.Notes) != 1 || imported.Notes[0].BookmarkID != goBlog.ID {
		t.Error("note did not follow its bookmark")
	}
}

func TestRemapSnapshotDropsDanglingLinks(t *testing.T) {
	snapshot := &dto.ExportSnapshot{
		Boards: []dto.ExportBoard{
			{
				ID:   "b",
				Name: "Board",
				Bookmarks: []dto.ExportBookmark{
					{ID: "bm", Title: "Stray", Type: model.TypeLink, FolderID: strptr("missing-folder")},
				},
			},
		},
	}

	data := RemapSnapshot(snapshot, "u1")
	if data.Bookmarks[0].FolderID != nil {
		t.Error("dangling folder link should drop to board root")
	}
}

func TestRemapSnapshotNormalizesUnknownType(t *testing.T) {
	snapshot := &dto.ExportSnapshot{
		Boards: []dto.ExportBoard{
			{
				ID:   "b",
				Name: "Board",
				Bookmarks: []dto.ExportBookmark{
					{ID: "bm", Title: "Mystery", Type: "hologram"},
				},
			},
		},
	}

	data := RemapSnapshot(snapshot, "u1")
	if data.Bookmarks[0].Type != model.TypeOther {
		t.Errorf("unknown type should fall back to other, got %s", data.Bookmarks[0].Type)
	}
}

func TestImportAllDataRejectsMissingBoards(t *testing.T) {
	svc := &TransferService{}

	if _, err := svc.ImportAllData(context.Background(), "u1", nil); err == nil {
		t.Error("nil snapshot must be rejected")
	}
	if _, err := svc.ImportAllData(context.Background(), "u1", &dto.ExportSnapshot{}); err == nil {
		t.Error("snapshot without boards array must be rejected")
	}
}
