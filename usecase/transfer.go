package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"booksmart/dto"
	"booksmart/model"
	"booksmart/repository"
	"booksmart/services"
	"booksmart/utils"
)

// AccountData is everything a user owns, loaded flat from the store;
// BuildSnapshot turns it into the nested export format.
type AccountData struct {
	Boards    []*model.Board
	Folders   []*model.Folder
	Bookmarks []*model.Bookmark
	Notes     []*model.Note
	TodoItems []*model.TodoItem
}

type TransferService struct {
	boards    *repository.BoardsRepo
	folders   *repository.FoldersRepo
	bookmarks *repository.BookmarksRepo
	notes     *repository.NotesRepo
	todos     *repository.TodosRepo
	cache     *services.BoardCache
}

func NewTransferService(
	boards *repository.BoardsRepo,
	folders *repository.FoldersRepo,
	bookmarks *repository.BookmarksRepo,
	notes *repository.NotesRepo,
	todos *repository.TodosRepo,
	cache *services.BoardCache,
) *TransferService {
	return &TransferService{
		boards:    boards,
		folders:   folders,
		bookmarks: bookmarks,
		notes:     notes,
		todos:     todos,
		cache:     cache,
	}
}

// BuildSnapshot assembles the nested export structure from flat account
// data. Categories and tags are derived from the bookmarks, sorted for a
// stable output.
func BuildSnapshot(data *AccountData, currentBoardID string) *dto.ExportSnapshot {
	snapshot := &dto.ExportSnapshot{
		CurrentBoardID: currentBoardID,
		Categories:     []string{},
		Tags:           []string{},
		ExportedAt:     time.Now(),
		Version:        dto.ExportVersion,
	}

	foldersByBoard := make(map[string][]*model.Folder)
	for _, f := range data.Folders {
		foldersByBoard[f.BoardID] = append(foldersByBoard[f.BoardID], f)
	}
	bookmarksByBoard := make(map[string][]*model.Bookmark)
	for _, b := range data.Bookmarks {
		bookmarksByBoard[b.BoardID] = append(bookmarksByBoard[b.BoardID], b)
	}
	notesByBookmark := make(map[string][]*model.Note)
	for _, n := range data.Notes {
		notesByBookmark[n.BookmarkID] = append(notesByBookmark[n.BookmarkID], n)
	}
	todosByBookmark := make(map[string][]*model.TodoItem)
	for _, t := range data.TodoItems {
		todosByBookmark[t.BookmarkID] = append(todosByBookmark[t.BookmarkID], t)
	}

	categories := make(map[string]bool)
	tags := make(map[string]bool)

	for _, board := range data.Boards {
		exportBoard := dto.ExportBoard{
			ID:        board.ID,
			Name:      board.Name,
			CreatedAt: board.CreatedAt,
			UpdatedAt: board.UpdatedAt,
			Bookmarks: []dto.ExportBookmark{},
		}

		for _, f := range foldersByBoard[board.ID] {
			exportBoard.Folders = append(exportBoard.Folders, dto.ExportFolder{
				ID:             f.ID,
				Name:           f.Name,
				ParentFolderID: f.ParentFolderID,
				CreatedAt:      f.CreatedAt,
			})
		}

		for _, b := range bookmarksByBoard[board.ID] {
			eb := dto.ExportBookmark{
				ID:                  b.ID,
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
			for _, n := range notesByBookmark[b.ID] {
				eb.Notes = append(eb.Notes, dto.ExportNote{ID: n.ID, Content: n.Content, CreatedAt: n.CreatedAt})
			}
			for _, t := range todosByBookmark[b.ID] {
				eb.TodoItems = append(eb.TodoItems, dto.ExportTodoItem{ID: t.ID, Text: t.Text, Completed: t.Completed, CreatedAt: t.CreatedAt})
			}
			for _, c := range b.Categories {
				categories[c] = true
			}
			for _, t := range b.Tags {
				tags[t] = true
			}
			exportBoard.Bookmarks = append(exportBoard.Bookmarks, eb)
		}

		snapshot.Boards = append(snapshot.Boards, exportBoard)
	}

	for c := range categories {
		snapshot.Categories = append(snapshot.Categories, c)
	}
	for t := range tags {
		snapshot.Tags = append(snapshot.Tags, t)
	}
	sort.Strings(snapshot.Categories)
	sort.Strings(snapshot.Tags)

	return snapshot
}

// RemapSnapshot converts a snapshot back into flat account data under
// fresh IDs, so importing the same file twice produces independent copies
// instead of overwriting. Folder parent links and bookmark folder links
// are rewritten through the old-to-new ID map; a link to an ID missing
// from the snapshot is dropped, which puts the item at the board root.
func RemapSnapshot(snapshot *dto.ExportSnapshot, userID string) *AccountData {
	data := &AccountData{}

	for _, eb := range snapshot.Boards {
		boardID := uuid.New().String()
		data.Boards = append(data.Boards, &model.Board{
			ID:        boardID,
			UserID:    userID,
			Name:      eb.Name,
			CreatedAt: eb.CreatedAt,
			UpdatedAt: eb.UpdatedAt,
		})

		folderIDs := make(map[string]string, len(eb.Folders))
		for _, ef := range eb.Folders {
			folderIDs[ef.ID] = uuid.New().String()
		}
		for _, ef := range eb.Folders {
			folder := &model.Folder{
				ID:        folderIDs[ef.ID],
				UserID:    userID,
				BoardID:   boardID,
				Name:      ef.Name,
				CreatedAt: ef.CreatedAt,
			}
			if ef.ParentFolderID != nil {
				if newID, ok := folderIDs[*ef.ParentFolderID]; ok {
					folder.ParentFolderID = &newID
				}
			}
			data.Folders = append(data.Folders, folder)
		}

		for _, ebm := range eb.Bookmarks {
			bookmarkID := uuid.New().String()
			bookmark := &model.Bookmark{
				ID:                  bookmarkID,
				UserID:              userID,
				BoardID:             boardID,
				Title:               ebm.Title,
				Summary:             ebm.Summary,
				URL:                 ebm.URL,
				Type:                ebm.Type,
				IsFavorite:          ebm.IsFavorite,
				Categories:          ebm.Categories,
				Tags:                ebm.Tags,
				ImageURL:            ebm.ImageURL,
				MetaDescription:     ebm.MetaDescription,
				ShowMetaDescription: ebm.ShowMetaDescription,
				CreatedAt:           ebm.CreatedAt,
				UpdatedAt:           ebm.UpdatedAt,
			}
			if !bookmark.Type.Valid() {
				bookmark.Type = model.TypeOther
			}
			if ebm.FolderID != nil {
				if newID, ok := folderIDs[*ebm.FolderID]; ok {
					bookmark.FolderID = &newID
				}
			}
			data.Bookmarks = append(data.Bookmarks, bookmark)

			for _, en := range ebm.Notes {
				data.Notes = append(data.Notes, &model.Note{
					ID:         uuid.New().String(),
					UserID:     userID,
					BookmarkID: bookmarkID,
					Content:    en.Content,
					CreatedAt:  en.CreatedAt,
				})
			}
			for _, et := range ebm.TodoItems {
				data.TodoItems = append(data.TodoItems, &model.TodoItem{
					ID:         uuid.New().String(),
					UserID:     userID,
					BookmarkID: bookmarkID,
					Text:       et.Text,
					Completed:  et.Completed,
					CreatedAt:  et.CreatedAt,
				})
			}
		}
	}

	return data
}

// ExportAllData loads the user's full account and returns it in the
// nested snapshot format.
func (svc *TransferService) ExportAllData(ctx context.Context, userID, currentBoardID string) (*dto.ExportSnapshot, error) {
	data, err := svc.loadAccount(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BuildSnapshot(data, currentBoardID), nil
}

// ImportAllData merges a snapshot into the account as new boards. The
// import is additive: existing data is untouched and every imported
// record gets a fresh ID.
func (svc *TransferService) ImportAllData(ctx context.Context, userID string, snapshot *dto.ExportSnapshot) (*dto.ImportResult, error) {
	if snapshot == nil || snapshot.Boards == nil {
		return nil, errors.New("invalid import file: missing boards")
	}

	data := RemapSnapshot(snapshot, userID)
	result := &dto.ImportResult{}

	for _, board := range data.Boards {
		result.Record(svc.boards.CreateBoard(ctx, board))
	}
	for _, folder := range data.Folders {
		result.Record(svc.folders.CreateFolder(ctx, folder))
	}
	for _, bookmark := range data.Bookmarks {
		result.Record(svc.bookmarks.CreateBookmark(ctx, bookmark))
	}
	for _, note := range data.Notes {
		result.Record(svc.notes.CreateNote(ctx, note))
	}
	for _, item := range data.TodoItems {
		result.Record(svc.todos.CreateTodoItem(ctx, item))
	}

	utils.TrackBookmarkOperation("import_snapshot")
	return result, nil
}

// ClearAllData wipes the user's boards, folders, bookmarks, notes and
// todo items. The next board listing recreates the default board.
func (svc *TransferService) ClearAllData(ctx context.Context, userID string) error {
	boards, err := svc.boards.GetUserBoards(ctx, userID)
	if err != nil {
		return err
	}

	for _, board := range boards {
		bookmarks, err := svc.bookmarks.GetBoardBookmarks(ctx, board.ID, userID)
		if err != nil {
			return err
		}
		ids := make([]string, 0, len(bookmarks))
		for _, b := range bookmarks {
			ids = append(ids, b.ID)
		}
		if err := svc.notes.DeleteNotesForBookmarks(ctx, ids, userID); err != nil {
			return err
		}
		if err := svc.todos.DeleteTodoItemsForBookmarks(ctx, ids, userID); err != nil {
			return err
		}
		if err := svc.bookmarks.DeleteBoardBookmarks(ctx, board.ID, userID); err != nil {
			return err
		}
		if err := svc.folders.DeleteBoardFolders(ctx, board.ID, userID); err != nil {
			return err
		}
		if err := svc.boards.DeleteBoard(ctx, board.ID, userID); err != nil {
			return err
		}
		if svc.cache != nil {
			if err := svc.cache.Invalidate(ctx, board.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func (svc *TransferService) loadAccount(ctx context.Context, userID string) (*AccountData, error) {
	boards, err := svc.boards.GetUserBoards(ctx, userID)
	if err != nil {
		return nil, err
	}

	data := &AccountData{Boards: boards}
	for _, board := range boards {
		folders, err := svc.folders.GetBoardFolders(ctx, board.ID, userID)
		if err != nil {
			return nil, err
		}
		data.Folders = append(data.Folders, folders...)

		bookmarks, err := svc.bookmarks.GetBoardBookmarks(ctx, board.ID, userID)
		if err != nil {
			return nil, err
		}
		data.Bookmarks = append(data.Bookmarks, bookmarks...)
	}

	ids := make([]string, 0, len(data.Bookmarks))
	for _, b := range data.Bookmarks {
		ids = append(ids, b.ID)
	}
	if len(ids) > 0 {
		notes, err := svc.notes.GetNotesForBookmarks(ctx, ids, userID)
		if err != nil {
			return nil, err
		}
		data.Notes = notes

		items, err := svc.todos.GetTodoItemsForBookmarks(ctx, ids, userID)
		if err != nil {
			return nil, err
		}
		data.TodoItems = items
	}
	return data, nil
}
