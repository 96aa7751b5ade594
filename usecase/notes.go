package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"booksmart/model"
	"booksmart/repository"
)

const maxNoteLength = 10000

type NotesService struct {
	notes     *repository.NotesRepo
	bookmarks *repository.BookmarksRepo
}

func NewNotesService(notes *repository.NotesRepo, bookmarks *repository.BookmarksRepo) *NotesService {
	return &NotesService{notes: notes, bookmarks: bookmarks}
}

func (svc *NotesService) CreateNote(ctx context.Context, userID, bookmarkID, content string) (*model.Note, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("note content is required")
	}
	if len(content) > maxNoteLength {
		return nil, errors.New("note content is too long")
	}

	if _, err := svc.bookmarks.GetBookmark(ctx, bookmarkID, userID); err != nil {
		return nil, err
	}

	note := &model.Note{
		ID:         uuid.New().String(),
		UserID:     userID,
		BookmarkID: bookmarkID,
		Content:    content,
		CreatedAt:  time.Now(),
	}
	if err := svc.notes.CreateNote(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

func (svc *NotesService) GetBookmarkNotes(ctx context.Context, userID, bookmarkID string) ([]*model.Note, error) {
	return svc.notes.GetBookmarkNotes(ctx, bookmarkID, userID)
}

func (svc *NotesService) UpdateNote(ctx context.Context, userID, noteID, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return errors.New("note content is required")
	}
	if len(content) > maxNoteLength {
		return errors.New("note content is too long")
	}
	return svc.notes.UpdateNote(ctx, noteID, userID, content)
}

func (svc *NotesService) DeleteNote(ctx context.Context, userID, noteID string) error {
	return svc.notes.DeleteNote(ctx, noteID, userID)
}
