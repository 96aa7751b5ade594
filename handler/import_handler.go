package handler

import (
	"github.com/gin-gonic/gin"

	"booksmart/usecase"
	"booksmart/utils"
)

const maxImportFileSize = 10 << 20 // 10 MB

// ImportBrowserBookmarksHandler accepts a Netscape bookmark HTML export
// (the format every major browser produces) as a multipart file upload
// and imports it into the board, recreating the folder hierarchy.
func ImportBrowserBookmarksHandler(c *gin.Context, svc *usecase.BookmarksService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequest(c, "bookmark file is required")
		return
	}
	if fileHeader.Size > maxImportFileSize {
		utils.BadRequest(c, "bookmark file is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.InternalError(c, "failed to read bookmark file")
		return
	}
	defer file.Close()

	result, err := svc.ImportBrowserBookmarks(c.Request.Context(), userID.(string), c.Param("id"), file)
	if err != nil {
		if err.Error() == "board not found" {
			utils.NotFound(c, "Board not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, result)
}
