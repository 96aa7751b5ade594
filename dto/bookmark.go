package dto

import (
	"time"

	"booksmart/model"
)

type BookmarkResponse struct {
	ID                  string             `json:"id"`
	BoardID             string             `json:"board_id"`
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
}

func ToBookmarkResponse(b *model.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:                  b.ID,
		BoardID:             b.BoardID,
		FolderID:            b.FolderID,
		Title:               b.Title,
		Summary:             b.Summary,
		URL:                 b.URL,
		Type:                b.Type,
		IsFavorite:          b.IsFavorite,
		Categories:          b.Categories,
		Tags:                b.Tags,
		ImageURL:            b.ImageURL,
		MetaDescription:     b.MetaDescription,
		ShowMetaDescription: b.ShowMetaDescription,
		CreatedAt:           b.CreatedAt,
		UpdatedAt:           b.UpdatedAt,
	}
}

func ToBookmarkResponses(bookmarks []*model.Bookmark) []BookmarkResponse {
	responses := make([]BookmarkResponse, len(bookmarks))
	for i, b := range bookmarks {
		responses[i] = ToBookmarkResponse(b)
	}
	return responses
}
