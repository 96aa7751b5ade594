package model

import "time"

type BookmarkType string

const (
	TypeLink     BookmarkType = "link"
	TypeImage    BookmarkType = "image"
	TypeText     BookmarkType = "text"
	TypeTodo     BookmarkType = "todo"
	TypeDocument BookmarkType = "document"
	TypeVideo    BookmarkType = "video"
	TypeOther    BookmarkType = "other"
)

// AllBookmarkTypes lists every valid bookmark type, in display order.
var AllBookmarkTypes = []BookmarkType{
	TypeLink, TypeImage, TypeText, TypeTodo, TypeDocument, TypeVideo, TypeOther,
}

func (t BookmarkType) Valid() bool {
	for _, known := range AllBookmarkTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Bookmark belongs to exactly one board and at most one folder.
// Categories and tags are embedded string sets; a category exists only as
// long as at least one bookmark references it.
type Bookmark struct {
	ID                  string       `bson:"_id,omitempty" json:"id"`
	UserID              string       `bson:"user_id" json:"user_id"`
	BoardID             string       `bson:"board_id" json:"board_id"`
	FolderID            *string      `bson:"folder_id,omitempty" json:"folder_id,omitempty"`
	Title               string       `bson:"title" json:"title" binding:"required"`
	Summary             string       `bson:"summary,omitempty" json:"summary,omitempty"`
	URL                 string       `bson:"url,omitempty" json:"url,omitempty"`
	Type                BookmarkType `bson:"type" json:"type"`
	IsFavorite          bool         `bson:"is_favorite" json:"is_favorite"`
	Categories          []string     `bson:"categories,omitempty" json:"categories,omitempty"`
	Tags                []string     `bson:"tags,omitempty" json:"tags,omitempty"`
	ImageURL            string       `bson:"image_url,omitempty" json:"image_url,omitempty"`
	MetaDescription     string       `bson:"meta_description,omitempty" json:"meta_description,omitempty"`
	ShowMetaDescription bool         `bson:"show_meta_description" json:"show_meta_description"`
	CreatedAt           time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt           time.Time    `bson:"updated_at" json:"updated_at"`
}
