package usecase

import (
	"encoding/json"
	"strings"
	"testing"

	"booksmart/model"
)

func TestBuildFolderTreeNesting(t *testing.T) {
	folders := []*model.Folder{
		{ID: "a", Name: "Work"},
		{ID: "b", Name: "Projects", ParentFolderID: strptr("a")},
		{ID: "c", Name: "Archive", ParentFolderID: strptr("b")},
		{ID: "d", Name: "Personal"},
	}

	roots := BuildFolderTree(folders)
	if len(roots) != 2 {
		t.Fatalf("expected 2 roots, got %d", len(roots))
	}
	if roots[0].Folder.ID != "a" || roots[1].Folder.ID != "d" {
		t.Errorf("roots out of order: %s, %s", roots[0].Folder.ID, roots[1].Folder.ID)
	}
	if len(roots[0].Children) != 1 || roots[0].Children[0].Folder.ID != "b" {
		t.Fatalf("expected b under a")
	}
	if len(roots[0].Children[0].Children) != 1 || roots[0].Children[0].Children[0].Folder.ID != "c" {
		t.Errorf("expected c under b")
	}
}

func TestBuildFolderTreeDanglingParentGoesToRoot(t *testing.T) {
	folders := []*model.Folder{
		{ID: "a", Name: "Kept"},
		{ID: "orphan", Name: "Orphan", ParentFolderID: strptr("deleted-folder")},
	}

	roots := BuildFolderTree(folders)
	if len(roots) != 2 {
		t.Fatalf("orphan should surface at root, got %d roots", len(roots))
	}
	if roots[1].Folder.ID != "orphan" {
		t.Errorf("expected orphan at root, got %s", roots[1].Folder.ID)
	}
}

func TestFolderTreePayloadShape(t *testing.T) {
	folders := []*model.Folder{
		{ID: "a", Name: "Work"},
		{ID: "b", Name: "Projects", ParentFolderID: strptr("a")},
		{ID: "orphan", Name: "Orphan", ParentFolderID: strptr("deleted-folder")},
	}

	payload, err := json.Marshal(BuildFolderTree(folders))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(payload)

	if !strings.Contains(body, `"children":[{"folder":`) {
		t.Errorf("nested child missing from payload: %s", body)
	}
	if !strings.Contains(body, `"Orphan"`) {
		t.Errorf("orphaned folder missing from payload: %s", body)
	}
	var decoded []struct {
		Folder struct {
			ID string `json:"id"`
		} `json:"folder"`
	}
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded) != 2 || decoded[1].Folder.ID != "orphan" {
		t.Errorf("payload roots = %+v, want Work plus surfaced orphan", decoded)
	}
}

func TestBuildFolderTreeEmpty(t *testing.T) {
	if roots := BuildFolderTree(nil); len(roots) != 0 {
		t.Fatalf("expected no roots, got %d", len(roots))
	}
}

func TestIsDescendant(t *testing.T) {
	folders := []*model.Folder{
		{ID: "a"},
		{ID: "b", ParentFolderID: strptr("a")},
		{ID: "c", ParentFolderID: strptr("b")},
		{ID: "x"},
	}

	tests := []struct {
		root, candidate string
		want            bool
	}{
		{"a", "b", true},
		{"a", "c", true},
		{"b", "c", true},
		{"c", "b", false},
		{"a", "x", false},
		{"x", "a", false},
	}
	for _, tt := range tests {
		if got := isDescendant(folders, tt.root, tt.candidate); got != tt.want {
			t.Errorf("isDescendant(%s, %s) = %v, want %v", tt.root, tt.candidate, got, tt.want)
		}
	}
}

func TestIsDescendantCycleTerminates(t *testing.T) {
	// Corrupt data with a parent loop must not hang
	folders := []*model.Folder{
		{ID: "a", ParentFolderID: strptr("b")},
		{ID: "b", ParentFolderID: strptr("a")},
	}
	if isDescendant(folders, "z", "a") {
		t.Error("no folder is a descendant of an unknown root")
	}
}
