package model

import "time"

// Folder belongs to exactly one board. Folders form a forest rooted at
// ParentFolderID == nil; nesting depth is unbounded. BoardID is immutable
// and must match the parent's BoardID when a parent is set.
type Folder struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	BoardID        string    `bson:"board_id" json:"board_id"`
	Name           string    `bson:"name" json:"name" binding:"required"`
	ParentFolderID *string   `bson:"parent_folder_id,omitempty" json:"parent_folder_id,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
}
