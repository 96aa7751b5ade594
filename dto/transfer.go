package dto

import (
	"time"

	"booksmart/model"
)

// ExportVersion identifies the snapshot format written by ExportAllData.
const ExportVersion = "1.0"

// ExportSnapshot is the full-account export format. Each board nests its
// folders and bookmarks, and each bookmark nests its notes and todo items.
type ExportSnapshot struct {
	Boards         []ExportBoard `json:"boards"`
	CurrentBoardID string        `json:"currentBoardId,omitempty"`
	Categories     []string      `json:"categories"`
	Tags           []string      `json:"tags"`
	ExportedAt     time.Time     `json:"exportedAt"`
	Version        string        `json:"version"`
}

type ExportBoard struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	Folders   []ExportFolder   `json:"folders,omitempty"`
	Bookmarks []ExportBookmark `json:"bookmarks"`
}

type ExportFolder struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ParentFolderID *string   `json:"parent_folder_id,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

type ExportBookmark struct {
	ID                  string             `json:"id"`
	FolderID            *string            `json:"folder_id,omitempty"`
	Title               string             `json:"title"`
	Summary             string             `json:"summary,omitempty"`
	URL                 string             `json:"url,omitempty"`
	Type                model.BookmarkType `json:"type"`
	IsFavorite          bool               `json:"is_favorite"`
	Categories          []string           `json:"categories,omitempty"`
	Tags                []string           `json:"tags,omitempty"`
	ImageURL            string             `json:"image_url,omitempty"`
	MetaDescription     string             `json:"meta_description,omitempty"`
	ShowMetaDescription bool               `json:"show_meta_description"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
	Notes               []ExportNote       `json:"notes,omitempty"`
	TodoItems           []ExportTodoItem   `json:"todo_items,omitempty"`
}

type ExportNote struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type ExportTodoItem struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportResult reports a partial-success batch outcome. Imported and
// Failed count individual records of any kind, so the two totals share a
// unit.
type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// Record tallies one record's outcome.
func (r *ImportResult) Record(err error) {
	if err != nil {
		r.Failed++
		r.Errors = append(r.Errors, err.Error())
		return
	}
	r.Imported++
}
