package handler

import (
	"net/url"

	"github.com/gin-gonic/gin"

	"booksmart/usecase"
	"booksmart/utils"
)

// FetchMetadataHandler previews page metadata for a URL before the
// bookmark is saved. The fetch is best-effort: unreachable pages come
// back with hostname-derived fallbacks, never an error.
func FetchMetadataHandler(c *gin.Context, svc *usecase.BookmarksService) {
	if _, exists := c.Get("user_id"); !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	rawURL := c.Query("url")
	if rawURL == "" {
		utils.BadRequest(c, "url parameter is required")
		return
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		utils.BadRequest(c, "invalid url")
		return
	}

	meta := svc.FetchMetadata(c.Request.Context(), rawURL)
	if meta == nil {
		utils.InternalError(c, "Metadata fetching is not configured")
		return
	}

	utils.Success(c, gin.H{"metadata": meta})
}
