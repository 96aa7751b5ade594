package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"booksmart/model"
	"booksmart/repository"
)

// FolderNode is a folder plus its resolved children.
type FolderNode struct {
	Folder   *model.Folder `json:"folder"`
	Children []*FolderNode `json:"children"`
}

// BuildFolderTree assembles the nested folder structure for one board.
// Siblings keep the order the input slice had. A folder whose parent ID
// points at nothing (deleted out from under it, or bad import data) is
// placed at the root rather than dropped.
func BuildFolderTree(folders []*model.Folder) []*FolderNode {
	nodes := make(map[string]*FolderNode, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &FolderNode{Folder: f}
	}

	var roots []*FolderNode
	for _, f := range folders {
		node := nodes[f.ID]
		if f.ParentFolderID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*f.ParentFolderID]
		if !ok {
			roots = append(roots, node)
			continue
		}
		parent.Children = append(parent.Children, node)
	}
	return roots
}

type FoldersService struct {
	folders   *repository.FoldersRepo
	bookmarks *repository.BookmarksRepo
	boards    *repository.BoardsRepo
}

func NewFoldersService(folders *repository.FoldersRepo, bookmarks *repository.BookmarksRepo, boards *repository.BoardsRepo) *FoldersService {
	return &FoldersService{folders: folders, bookmarks: bookmarks, boards: boards}
}

// CreateFolder adds a folder to a board, optionally under a parent folder
// on the same board.
func (svc *FoldersService) CreateFolder(ctx context.Context, userID, boardID, name string, parentFolderID *string) (*model.Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("folder name is required")
	}

	if _, err := svc.boards.GetBoard(ctx, boardID, userID); err != nil {
		return nil, err
	}

	if parentFolderID != nil {
		parent, err := svc.folders.GetFolder(ctx, *parentFolderID, userID)
		if err != nil {
			return nil, errors.New("parent folder not found")
		}
		if parent.BoardID != boardID {
			return nil, errors.New("parent folder belongs to a different board")
		}
	}

	folder := &model.Folder{
		ID:             uuid.New().String(),
		UserID:         userID,
		BoardID:        boardID,
		Name:           name,
		ParentFolderID: parentFolderID,
	}
	if err := svc.folders.CreateFolder(ctx, folder); err != nil {
		return nil, err
	}
	return folder, nil
}

func (svc *FoldersService) RenameFolder(ctx context.Context, userID, folderID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("folder name is required")
	}
	return svc.folders.UpdateFolderName(ctx, folderID, userID, name)
}

// MoveFolder re-parents a folder. A nil newParentID moves it to the board
// root. Moving a folder under itself or under one of its own descendants
// is rejected, otherwise the subtree would detach from the tree entirely.
func (svc *FoldersService) MoveFolder(ctx context.Context, userID, folderID string, newParentID *string) error {
	folder, err := svc.folders.GetFolder(ctx, folderID, userID)
	if err != nil {
		return err
	}

	if newParentID != nil {
		if *newParentID == folderID {
			return errors.New("folder cannot be its own parent")
		}
		parent, err := svc.folders.GetFolder(ctx, *newParentID, userID)
		if err != nil {
			return errors.New("target folder not found")
		}
		if parent.BoardID != folder.BoardID {
			return errors.New("target folder belongs to a different board")
		}

		all, err := svc.folders.GetBoardFolders(ctx, folder.BoardID, userID)
		if err != nil {
			return err
		}
		if isDescendant(all, folderID, *newParentID) {
			return errors.New("cannot move a folder into its own subtree")
		}
	}

	return svc.folders.SetFolderParent(ctx, folderID, userID, newParentID)
}

// DeleteFolder removes one folder. Its bookmarks move to the board root
// and its child folders are re-parented to the deleted folder's parent,
// so nothing under it is lost.
func (svc *FoldersService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	folder, err := svc.folders.GetFolder(ctx, folderID, userID)
	if err != nil {
		return err
	}

	if err := svc.bookmarks.ClearFolder(ctx, folderID, userID); err != nil {
		return err
	}
	if err := svc.folders.ReparentChildren(ctx, folderID, userID, folder.ParentFolderID); err != nil {
		return err
	}
	return svc.folders.DeleteFolder(ctx, folderID, userID)
}

func (svc *FoldersService) GetBoardFolders(ctx context.Context, userID, boardID string) ([]*model.Folder, error) {
	return svc.folders.GetBoardFolders(ctx, boardID, userID)
}

// GetBoardFolderTree returns the board's folders as a nested forest.
func (svc *FoldersService) GetBoardFolderTree(ctx context.Context, userID, boardID string) ([]*FolderNode, error) {
	if _, err := svc.boards.GetBoard(ctx, boardID, userID); err != nil {
		return nil, err
	}
	folders, err := svc.folders.GetBoardFolders(ctx, boardID, userID)
	if err != nil {
		return nil, err
	}
	return BuildFolderTree(folders), nil
}

// isDescendant reports whether candidateID sits anywhere in the subtree
// rooted at rootID.
func isDescendant(folders []*model.Folder, rootID, candidateID string) bool {
	parentOf := make(map[string]*string, len(folders))
	for _, f := range folders {
		parentOf[f.ID] = f.ParentFolderID
	}

	current := candidateID
	for i := 0; i < len(folders)+1; i++ {
		parent, ok := parentOf[current]
		if !ok || parent == nil {
			return false
		}
		if *parent == rootID {
			return true
		}
		current = *parent
	}
	return false
}
