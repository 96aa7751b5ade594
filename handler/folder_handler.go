package handler

import (
	"github.com/gin-gonic/gin"

	"booksmart/usecase"
	"booksmart/utils"
)

func CreateFolderHandler(c *gin.Context, svc *usecase.FoldersService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		BoardID        string  `json:"board_id" binding:"required"`
		Name           string  `json:"name" binding:"required"`
		ParentFolderID *string `json:"parent_folder_id,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	folder, err := svc.CreateFolder(c.Request.Context(), userID.(string), req.BoardID, req.Name, req.ParentFolderID)
	if err != nil {
		switch err.Error() {
		case "board not found":
			utils.NotFound(c, "Board not found")
		case "parent folder not found":
			utils.NotFound(c, "Parent folder not found")
		default:
			utils.BadRequest(c, err.Error())
		}
		return
	}

	utils.Created(c, gin.H{"folder": folder})
}

func RenameFolderHandler(c *gin.Context, svc *usecase.FoldersService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Folder name is required")
		return
	}

	if err := svc.RenameFolder(c.Request.Context(), userID.(string), c.Param("id"), req.Name); err != nil {
		if err.Error() == "folder not found" {
			utils.NotFound(c, "Folder not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Folder renamed"})
}

func MoveFolderHandler(c *gin.Context, svc *usecase.FoldersService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		ParentFolderID *string `json:"parent_folder_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	if err := svc.MoveFolder(c.Request.Context(), userID.(string), c.Param("id"), req.ParentFolderID); err != nil {
		switch err.Error() {
		case "folder not found", "target folder not found":
			utils.NotFound(c, err.Error())
		default:
			utils.BadRequest(c, err.Error())
		}
		return
	}

	utils.Success(c, gin.H{"message": "Folder moved"})
}

func DeleteFolderHandler(c *gin.Context, svc *usecase.FoldersService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	if err := svc.DeleteFolder(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		if err.Error() == "folder not found" {
			utils.NotFound(c, "Folder not found")
			return
		}
		utils.InternalError(c, "Failed to delete folder")
		return
	}

	utils.Success(c, gin.H{"message": "Folder deleted"})
}

// GetBoardFolderTreeHandler returns a board's folders as a nested forest.
func GetBoardFolderTreeHandler(c *gin.Context, svc *usecase.FoldersService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	tree, err := svc.GetBoardFolderTree(c.Request.Context(), userID.(string), c.Param("id"))
	if err != nil {
		if err.Error() == "board not found" {
			utils.NotFound(c, "Board not found")
			return
		}
		utils.InternalError(c, "Failed to fetch folders")
		return
	}

	utils.Success(c, gin.H{"folders": tree})
}
