package model

import "time"

// Note is owned by exactly one bookmark. Display order is created_at
// descending (most recent first).
type Note struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	UserID     string    `bson:"user_id" json:"user_id"`
	BookmarkID string    `bson:"bookmark_id" json:"bookmark_id"`
	Content    string    `bson:"content" json:"content" binding:"required"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}
