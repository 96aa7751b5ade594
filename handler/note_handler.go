package handler

import (
	"github.com/gin-gonic/gin"

	"booksmart/usecase"
	"booksmart/utils"
)

func CreateNoteHandler(c *gin.Context, svc *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Note content is required")
		return
	}

	note, err := svc.CreateNote(c.Request.Context(), userID.(string), c.Param("id"), req.Content)
	if err != nil {
		if err.Error() == "bookmark not found" {
			utils.NotFound(c, "Bookmark not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, gin.H{"note": note})
}

func GetBookmarkNotesHandler(c *gin.Context, svc *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	notes, err := svc.GetBookmarkNotes(c.Request.Context(), userID.(string), c.Param("id"))
	if err != nil {
		utils.InternalError(c, "Failed to fetch notes")
		return
	}

	utils.Success(c, gin.H{"notes": notes})
}

func UpdateNoteHandler(c *gin.Context, svc *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Note content is required")
		return
	}

	if err := svc.UpdateNote(c.Request.Context(), userID.(string), c.Param("id"), req.Content); err != nil {
		if err.Error() == "note not found" {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Note updated"})
}

func DeleteNoteHandler(c *gin.Context, svc *usecase.NotesService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	if err := svc.DeleteNote(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		if err.Error() == "note not found" {
			utils.NotFound(c, "Note not found")
			return
		}
		utils.InternalError(c, "Failed to delete note")
		return
	}

	utils.Success(c, gin.H{"message": "Note deleted"})
}
