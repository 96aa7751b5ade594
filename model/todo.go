package model

import "time"

// TodoItem is owned by exactly one bookmark of type todo. Display order is
// created_at ascending.
type TodoItem struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	BookmarkID string    `bson:"bookmark_id" json:"bookmark_id"`
	Text       string    `bson:"text" json:"text" binding:"required"`
	Completed  bool      `bson:"completed" json:"completed"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
