package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"booksmart/dto"
	"booksmart/model"
	"booksmart/repository"
	"booksmart/services"
	"booksmart/utils"
)

const (
	maxCategoriesPerBookmark = 10
	maxTagsPerBookmark       = 20

	// Browser imports enrich metadata a few URLs at a time so a large
	// import does not hammer every site at once.
	importEnrichBatchSize = 5
	importEnrichBatchWait = 500 * time.Millisecond
)

type BookmarksService struct {
	bookmarks  *repository.BookmarksRepo
	folders    *repository.FoldersRepo
	boards     *repository.BoardsRepo
	notes      *repository.NotesRepo
	todos      *repository.TodosRepo
	metadata   *services.MetadataFetcher
	classifier *services.Classifier
	cache      *services.BoardCache
}

func NewBookmarksService(
	bookmarks *repository.BookmarksRepo,
	folders *repository.FoldersRepo,
	boards *repository.BoardsRepo,
	notes *repository.NotesRepo,
	todos *repository.TodosRepo,
	metadata *services.MetadataFetcher,
	classifier *services.Classifier,
	cache *services.BoardCache,
) *BookmarksService {
	return &BookmarksService{
		bookmarks:  bookmarks,
		folders:    folders,
		boards:     boards,
		notes:      notes,
		todos:      todos,
		metadata:   metadata,
		classifier: classifier,
		cache:      cache,
	}
}

// CreateBookmark validates and stores a new bookmark. When the bookmark
// carries a URL and no description yet, page metadata is fetched
// best-effort; enrichment failure never blocks the save.
func (svc *BookmarksService) CreateBookmark(ctx context.Context, bookmark *model.Bookmark) (*model.Bookmark, error) {
	if err := svc.validateBookmark(ctx, bookmark); err != nil {
		return nil, err
	}

	bookmark.ID = uuid.New().String()
	bookmark.CreatedAt = time.Now()
	bookmark.UpdatedAt = bookmark.CreatedAt

	if svc.metadata != nil && bookmark.URL != "" && bookmark.MetaDescription == "" {
		svc.enrich(ctx, bookmark)
	}

	if err := svc.bookmarks.CreateBookmark(ctx, bookmark); err != nil {
		return nil, err
	}
	svc.invalidate(ctx, bookmark.BoardID)
	return bookmark, nil
}

// UpdateBookmark replaces the mutable fields of an existing bookmark.
// Board assignment is immutable; moving between folders goes through
// MoveBookmark or the folder_id field here within the same board.
func (svc *BookmarksService) UpdateBookmark(ctx context.Context, userID, bookmarkID string, updates *model.Bookmark) (*model.Bookmark, error) {
	existing, err := svc.bookmarks.GetBookmark(ctx, bookmarkID, userID)
	if err != nil {
		return nil, err
	}

	updates.UserID = userID
	updates.BoardID = existing.BoardID
	if err := svc.validateBookmark(ctx, updates); err != nil {
		return nil, err
	}

	if err := svc.bookmarks.UpdateBookmark(ctx, bookmarkID, userID, updates); err != nil {
		return nil, err
	}
	svc.invalidate(ctx, existing.BoardID)
	return svc.bookmarks.GetBookmark(ctx, bookmarkID, userID)
}

// MoveBookmark assigns a bookmark to a folder, or to the board root when
// folderID is nil.
func (svc *BookmarksService) MoveBookmark(ctx context.Context, userID, bookmarkID string, folderID *string) error {
	bookmark, err := svc.bookmarks.GetBookmark(ctx, bookmarkID, userID)
	if err != nil {
		return err
	}

	if folderID != nil {
		folder, err := svc.folders.GetFolder(ctx, *folderID, userID)
		if err != nil {
			return errors.New("folder not found")
		}
		if folder.BoardID != bookmark.BoardID {
			return errors.New("folder belongs to a different board")
		}
	}

	bookmark.FolderID = folderID
	if err := svc.bookmarks.UpdateBookmark(ctx, bookmarkID, userID, bookmark); err != nil {
		return err
	}
	svc.invalidate(ctx, bookmark.BoardID)
	return nil
}

func (svc *BookmarksService) ToggleFavorite(ctx context.Context, userID, bookmarkID string) error {
	bookmark, err := svc.bookmarks.GetBookmark(ctx, bookmarkID, userID)
	if err != nil {
		return err
	}
	if err := svc.bookmarks.ToggleFavorite(ctx, bookmarkID, userID); err != nil {
		return err
	}
	svc.invalidate(ctx, bookmark.BoardID)
	return nil
}

// DeleteBookmark removes a bookmark and everything hanging off it.
func (svc *BookmarksService) DeleteBookmark(ctx context.Context, userID, bookmarkID string) error {
	bookmark, err := svc.bookmarks.GetBookmark(ctx, bookmarkID, userID)
	if err != nil {
		return err
	}

	if err := svc.notes.DeleteBookmarkNotes(ctx, bookmarkID, userID); err != nil {
		return err
	}
	if err := svc.todos.DeleteBookmarkTodoItems(ctx, bookmarkID, userID); err != nil {
		return err
	}
	if err := svc.bookmarks.DeleteBookmark(ctx, bookmarkID, userID); err != nil {
		return err
	}
	svc.invalidate(ctx, bookmark.BoardID)
	return nil
}

func (svc *BookmarksService) GetBookmark(ctx context.Context, userID, bookmarkID string) (*model.Bookmark, error) {
	return svc.bookmarks.GetBookmark(ctx, bookmarkID, userID)
}

// GetGroupedBookmarks returns one level of the board's tree: the child
// folders of the current folder context plus the context's own bookmarks
// bucketed by category. An optional type filter applies before grouping.
func (svc *BookmarksService) GetGroupedBookmarks(ctx context.Context, userID, boardID string, currentFolderID *string, types []model.BookmarkType) (*BookmarkGroups, error) {
	if currentFolderID != nil {
		folder, err := svc.folders.GetFolder(ctx, *currentFolderID, userID)
		if err != nil {
			return nil, err
		}
		if folder.BoardID != boardID {
			return nil, errors.New("folder belongs to a different board")
		}
	}

	bookmarks, err := svc.bookmarks.GetBoardBookmarks(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	folders, err := svc.folders.GetBoardFolders(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}

	if types != nil {
		bookmarks = FilterByTypes(bookmarks, types)
	}
	return GroupBookmarks(bookmarks, folders, currentFolderID), nil
}

// Search runs the prioritized board search across bookmarks and their
// attached notes and todo items.
func (svc *BookmarksService) Search(ctx context.Context, userID, boardID, query string) ([]*model.Bookmark, error) {
	bookmarks, err := svc.bookmarks.GetBoardBookmarks(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" || len(bookmarks) == 0 {
		return bookmarks, nil
	}

	ids := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		ids = append(ids, b.ID)
	}

	notes, err := svc.notes.GetNotesForBookmarks(ctx, ids, userID)
	if err != nil {
		return nil, err
	}
	todos, err := svc.todos.GetTodoItemsForBookmarks(ctx, ids, userID)
	if err != nil {
		return nil, err
	}

	notesByBookmark := make(map[string][]*model.Note)
	for _, n := range notes {
		notesByBookmark[n.BookmarkID] = append(notesByBookmark[n.BookmarkID], n)
	}
	todosByBookmark := make(map[string][]*model.TodoItem)
	for _, t := range todos {
		todosByBookmark[t.BookmarkID] = append(todosByBookmark[t.BookmarkID], t)
	}

	return SearchBookmarks(bookmarks, notesByBookmark, todosByBookmark, query), nil
}

// BoardCategories lists the distinct category values currently in use on
// a board. Categories have no life of their own: removing the last
// bookmark referencing one removes it from this list.
func (svc *BookmarksService) BoardCategories(ctx context.Context, userID, boardID string) ([]string, error) {
	return svc.bookmarks.DistinctCategories(ctx, boardID, userID)
}

func (svc *BookmarksService) BoardTags(ctx context.Context, userID, boardID string) ([]string, error) {
	return svc.bookmarks.DistinctTags(ctx, boardID, userID)
}

// FetchMetadata exposes on-demand page metadata for the bookmark form.
func (svc *BookmarksService) FetchMetadata(ctx context.Context, rawURL string) *services.Metadata {
	if svc.metadata == nil {
		return nil
	}
	return svc.metadata.FetchMetadata(ctx, rawURL)
}

// Classify asks the classifier for category and tag suggestions, steering
// it toward the board's existing categories.
func (svc *BookmarksService) Classify(ctx context.Context, userID, bookmarkID string) (*services.Suggestion, error) {
	if svc.classifier == nil {
		return nil, services.ErrNoClassifierKey
	}
	bookmark, err := svc.bookmarks.GetBookmark(ctx, bookmarkID, userID)
	if err != nil {
		return nil, err
	}
	existing, err := svc.bookmarks.DistinctCategories(ctx, bookmark.BoardID, userID)
	if err != nil {
		return nil, err
	}
	return svc.classifier.SuggestClassification(ctx, bookmark.URL, bookmark.Title, existing)
}

// ImportBrowserBookmarks imports a Netscape bookmark HTML export into a
// board, recreating the browser's folder hierarchy. Individual failures
// are collected into the result rather than aborting the import.
func (svc *BookmarksService) ImportBrowserBookmarks(ctx context.Context, userID, boardID string, r io.Reader) (*dto.ImportResult, error) {
	if _, err := svc.boards.GetBoard(ctx, boardID, userID); err != nil {
		return nil, err
	}

	imported, err := services.ParseBookmarksHTML(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse bookmark file: %v", err)
	}

	result := &dto.ImportResult{}
	folderIDs := make(map[string]string) // joined path -> folder ID
	var created []*model.Bookmark

	for _, item := range imported {
		folderID, err := svc.ensureFolderPath(ctx, userID, boardID, item.FolderPath, folderIDs)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.URL, err))
			continue
		}

		title := item.Title
		if title == "" {
			title = item.URL
		}
		bookmark := &model.Bookmark{
			ID:       uuid.New().String(),
			UserID:   userID,
			BoardID:  boardID,
			FolderID: folderID,
			Title:    title,
			URL:      item.URL,
			Type:     model.TypeLink,
		}
		bookmark.CreatedAt = time.Now()
		if !item.AddedAt.IsZero() {
			bookmark.CreatedAt = item.AddedAt
		}
		bookmark.UpdatedAt = bookmark.CreatedAt

		if err := svc.bookmarks.CreateBookmark(ctx, bookmark); err != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", item.URL, err))
			continue
		}
		result.Imported++
		created = append(created, bookmark)
	}

	if svc.metadata != nil {
		svc.enrichBatch(ctx, userID, created)
	}
	svc.invalidate(ctx, boardID)
	utils.TrackBookmarkOperation("import")
	return result, nil
}

// ensureFolderPath resolves a browser folder path to a folder ID, creating
// any missing folders along the way. A nil return means the board root.
func (svc *BookmarksService) ensureFolderPath(ctx context.Context, userID, boardID string, path []string, cache map[string]string) (*string, error) {
	if len(path) == 0 {
		return nil, nil
	}

	var parentID *string
	for i := range path {
		key := strings.Join(path[:i+1], "/")
		if id, ok := cache[key]; ok {
			parentID = &id
			continue
		}

		folder := &model.Folder{
			ID:             uuid.New().String(),
			UserID:         userID,
			BoardID:        boardID,
			Name:           path[i],
			ParentFolderID: parentID,
		}
		if err := svc.folders.CreateFolder(ctx, folder); err != nil {
			return nil, err
		}
		cache[key] = folder.ID
		id := folder.ID
		parentID = &id
	}
	return parentID, nil
}

// enrichBatch fetches page metadata for freshly imported bookmarks a few
// at a time, pausing between batches.
func (svc *BookmarksService) enrichBatch(ctx context.Context, userID string, bookmarks []*model.Bookmark) {
	for start := 0; start < len(bookmarks); start += importEnrichBatchSize {
		end := start + importEnrichBatchSize
		if end > len(bookmarks) {
			end = len(bookmarks)
		}

		var wg sync.WaitGroup
		for _, bookmark := range bookmarks[start:end] {
			wg.Add(1)
			go func(b *model.Bookmark) {
				defer wg.Done()
				svc.enrich(ctx, b)
				if err := svc.bookmarks.UpdateBookmark(ctx, b.ID, userID, b); err != nil {
					log.Printf("failed to store metadata for %s: %v", b.ID, err)
				}
			}(bookmark)
		}
		wg.Wait()

		if end < len(bookmarks) {
			time.Sleep(importEnrichBatchWait)
		}
	}
}

// enrich fills metadata-derived fields in place. FetchMetadata never
// errors; an unreachable page degrades to hostname fallbacks.
func (svc *BookmarksService) enrich(ctx context.Context, bookmark *model.Bookmark) {
	meta := svc.metadata.FetchMetadata(ctx, bookmark.URL)
	if meta == nil {
		return
	}
	if bookmark.Title == "" && meta.Title != "" {
		bookmark.Title = meta.Title
	}
	if bookmark.MetaDescription == "" && meta.Description != "" {
		bookmark.MetaDescription = meta.Description
		bookmark.ShowMetaDescription = true
	}
	if bookmark.ImageURL == "" && meta.Image != "" {
		bookmark.ImageURL = meta.Image
	}
}

func (svc *BookmarksService) validateBookmark(ctx context.Context, bookmark *model.Bookmark) error {
	bookmark.Title = strings.TrimSpace(bookmark.Title)
	if bookmark.Title == "" {
		return errors.New("bookmark title is required")
	}
	if bookmark.Type == "" {
		bookmark.Type = model.TypeLink
	}
	if !bookmark.Type.Valid() {
		return fmt.Errorf("invalid bookmark type: %s", bookmark.Type)
	}
	if bookmark.BoardID == "" {
		return errors.New("board ID is required")
	}
	if _, err := svc.boards.GetBoard(ctx, bookmark.BoardID, bookmark.UserID); err != nil {
		return errors.New("board not found")
	}

	if bookmark.FolderID != nil {
		folder, err := svc.folders.GetFolder(ctx, *bookmark.FolderID, bookmark.UserID)
		if err != nil {
			return errors.New("folder not found")
		}
		if folder.BoardID != bookmark.BoardID {
			return errors.New("folder belongs to a different board")
		}
	}

	var err error
	bookmark.Categories, err = normalizeLabels(bookmark.Categories, maxCategoriesPerBookmark, "categories")
	if err != nil {
		return err
	}
	bookmark.Tags, err = normalizeLabels(bookmark.Tags, maxTagsPerBookmark, "tags")
	if err != nil {
		return err
	}
	return nil
}

// normalizeLabels trims, drops empties and exact duplicates, and enforces
// the per-bookmark cap. Original casing is kept for display.
func normalizeLabels(labels []string, max int, kind string) ([]string, error) {
	if len(labels) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(labels))
	var out []string
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		key := strings.ToLower(label)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, label)
	}

	if len(out) > max {
		return nil, fmt.Errorf("too many %s: maximum is %d", kind, max)
	}
	return out, nil
}

func (svc *BookmarksService) invalidate(ctx context.Context, boardID string) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Invalidate(ctx, boardID); err != nil {
		log.Printf("board cache invalidation failed for %s: %v", boardID, err)
	}
}
