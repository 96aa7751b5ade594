package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"

	"booksmart/model"
	"booksmart/repository"
	"booksmart/services"
	"booksmart/utils"
)

type BoardsService struct {
	boards    *repository.BoardsRepo
	folders   *repository.FoldersRepo
	bookmarks *repository.BookmarksRepo
	notes     *repository.NotesRepo
	todos     *repository.TodosRepo
	cache     *services.BoardCache
}

func NewBoardsService(
	boards *repository.BoardsRepo,
	folders *repository.FoldersRepo,
	bookmarks *repository.BookmarksRepo,
	notes *repository.NotesRepo,
	todos *repository.TodosRepo,
	cache *services.BoardCache,
) *BoardsService {
	return &BoardsService{
		boards:    boards,
		folders:   folders,
		bookmarks: bookmarks,
		notes:     notes,
		todos:     todos,
		cache:     cache,
	}
}

// ListBoards returns the user's boards. A user always has at least one
// board: first call for a fresh account creates the default board.
func (svc *BoardsService) ListBoards(ctx context.Context, userID string) ([]*model.Board, error) {
	boards, err := svc.boards.GetUserBoards(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(boards) > 0 {
		return boards, nil
	}

	board := &model.Board{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   model.DefaultBoardName,
	}
	if err := svc.boards.CreateBoard(ctx, board); err != nil {
		return nil, err
	}
	return []*model.Board{board}, nil
}

func (svc *BoardsService) CreateBoard(ctx context.Context, userID, name string) (*model.Board, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("board name is required")
	}

	board := &model.Board{
		ID:     uuid.New().String(),
		UserID: userID,
		Name:   name,
	}
	if err := svc.boards.CreateBoard(ctx, board); err != nil {
		return nil, err
	}
	return board, nil
}

func (svc *BoardsService) RenameBoard(ctx context.Context, userID, boardID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("board name is required")
	}
	if err := svc.boards.UpdateBoardName(ctx, boardID, userID, name); err != nil {
		return err
	}
	svc.invalidate(ctx, boardID)
	return nil
}

// DeleteBoard removes a board with everything on it. The user's last
// remaining board cannot be deleted.
func (svc *BoardsService) DeleteBoard(ctx context.Context, userID, boardID string) error {
	count, err := svc.boards.CountUserBoards(ctx, userID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return errors.New("cannot delete the last board")
	}

	if _, err := svc.boards.GetBoard(ctx, boardID, userID); err != nil {
		return err
	}

	bookmarks, err := svc.bookmarks.GetBoardBookmarks(ctx, boardID, userID)
	if err != nil {
		return err
	}
	bookmarkIDs := make([]string, 0, len(bookmarks))
	for _, b := range bookmarks {
		bookmarkIDs = append(bookmarkIDs, b.ID)
	}

	if err := svc.notes.DeleteNotesForBookmarks(ctx, bookmarkIDs, userID); err != nil {
		return err
	}
	if err := svc.todos.DeleteTodoItemsForBookmarks(ctx, bookmarkIDs, userID); err != nil {
		return err
	}
	if err := svc.bookmarks.DeleteBoardBookmarks(ctx, boardID, userID); err != nil {
		return err
	}
	if err := svc.folders.DeleteBoardFolders(ctx, boardID, userID); err != nil {
		return err
	}
	if err := svc.boards.DeleteBoard(ctx, boardID, userID); err != nil {
		return err
	}

	svc.invalidate(ctx, boardID)
	return nil
}

// GetBoardView returns the board with its folders and bookmarks. Cached
// views are served unless skipCache is set; clients pass skipCache right
// after a mutation so the refetch cannot race a stale in-flight fill.
func (svc *BoardsService) GetBoardView(ctx context.Context, userID, boardID string, skipCache bool) (*services.BoardViewEntry, error) {
	if svc.cache != nil && !skipCache {
		entry, err := svc.cache.Get(ctx, boardID)
		if err != nil {
			log.Printf("board cache read failed for %s: %v", boardID, err)
		} else if entry != nil {
			utils.TrackCacheOperation("board_view", true)
			return entry, nil
		}
		utils.TrackCacheOperation("board_view", false)
	}

	var generation int64
	if svc.cache != nil {
		gen, err := svc.cache.Generation(ctx, boardID)
		if err != nil {
			log.Printf("board generation read failed for %s: %v", boardID, err)
		} else {
			generation = gen
		}
	}

	board, err := svc.boards.GetBoard(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	folders, err := svc.folders.GetBoardFolders(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	bookmarks, err := svc.bookmarks.GetBoardBookmarks(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}

	entry := &services.BoardViewEntry{
		Board:      board,
		Folders:    folders,
		Bookmarks:  bookmarks,
		Generation: generation,
	}

	if svc.cache != nil && !skipCache {
		if err := svc.cache.Set(ctx, boardID, entry); err != nil {
			log.Printf("board cache write failed for %s: %v", boardID, err)
		}
	}
	return entry, nil
}

// Prewarm fills the cache for the user's boards so first navigation after
// login hits warm data. Failures are logged and ignored.
func (svc *BoardsService) Prewarm(ctx context.Context, userID string) {
	if svc.cache == nil {
		return
	}
	boards, err := svc.boards.GetUserBoards(ctx, userID)
	if err != nil {
		log.Printf("board prewarm skipped for user %s: %v", userID, err)
		return
	}
	for _, board := range boards {
		if _, err := svc.GetBoardView(ctx, userID, board.ID, false); err != nil {
			log.Printf("board prewarm failed for %s: %v", board.ID, err)
		}
	}
}

// invalidate is called after board-content mutations; cache errors only
// get logged, the write itself already succeeded.
func (svc *BoardsService) invalidate(ctx context.Context, boardID string) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Invalidate(ctx, boardID); err != nil {
		log.Printf("board cache invalidation failed for %s: %v", boardID, err)
	}
}
