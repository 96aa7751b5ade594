package handler

import (
	"github.com/gin-gonic/gin"

	"booksmart/usecase"
	"booksmart/utils"
)

func ListBoardsHandler(c *gin.Context, svc *usecase.BoardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	boards, err := svc.ListBoards(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Failed to fetch boards")
		return
	}

	utils.Success(c, gin.H{"boards": boards})
}

func CreateBoardHandler(c *gin.Context, svc *usecase.BoardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Board name is required")
		return
	}

	board, err := svc.CreateBoard(c.Request.Context(), userID.(string), req.Name)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, gin.H{"board": board})
}

func RenameBoardHandler(c *gin.Context, svc *usecase.BoardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Board name is required")
		return
	}

	if err := svc.RenameBoard(c.Request.Context(), userID.(string), c.Param("id"), req.Name); err != nil {
		if err.Error() == "board not found" {
			utils.NotFound(c, "Board not found")
			return
		}
		utils.InternalError(c, "Failed to rename board")
		return
	}

	utils.Success(c, gin.H{"message": "Board renamed"})
}

func DeleteBoardHandler(c *gin.Context, svc *usecase.BoardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	err := svc.DeleteBoard(c.Request.Context(), userID.(string), c.Param("id"))
	if err != nil {
		switch err.Error() {
		case "cannot delete the last board":
			utils.BadRequest(c, "Cannot delete the last board")
		case "board not found":
			utils.NotFound(c, "Board not found")
		default:
			utils.InternalError(c, "Failed to delete board")
		}
		return
	}

	utils.Success(c, gin.H{"message": "Board deleted"})
}

// GetBoardViewHandler returns the board with its folders and bookmarks.
// Clients refetching right after a mutation pass ?skip_cache=true.
func GetBoardViewHandler(c *gin.Context, svc *usecase.BoardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	skipCache := c.Query("skip_cache") == "true"

	view, err := svc.GetBoardView(c.Request.Context(), userID.(string), c.Param("id"), skipCache)
	if err != nil {
		if err.Error() == "board not found" {
			utils.NotFound(c, "Board not found")
			return
		}
		utils.InternalError(c, "Failed to fetch board")
		return
	}

	utils.Success(c, view)
}

// PrewarmBoardsHandler fills the board cache ahead of navigation.
func PrewarmBoardsHandler(c *gin.Context, svc *usecase.BoardsService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	svc.Prewarm(c.Request.Context(), userID.(string))
	utils.Success(c, gin.H{"message": "Boards cached"})
}
