package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"booksmart/dto"
	"booksmart/model"
	"booksmart/services"
	"booksmart/usecase"
	"booksmart/utils"
)

type BookmarkRequest struct {
	BoardID             string             `json:"board_id" binding:"required"`
	FolderID            *string            `json:"folder_id,omitempty"`
	Title               string             `json:"title"`
	Summary             string             `json:"summary,omitempty"`
	URL                 string             `json:"url,omitempty"`
	Type                model.BookmarkType `json:"type" binding:"omitempty,bookmarktype"`
	Categories          []string           `json:"categories,omitempty"`
	Tags                []string           `json:"tags,omitempty"`
	ImageURL            string             `json:"image_url,omitempty"`
	MetaDescription     string             `json:"meta_description,omitempty"`
	ShowMetaDescription bool               `json:"show_meta_description"`
}

func (r *BookmarkRequest) toModel(userID string) *model.Bookmark {
	return &model.Bookmark{
		UserID:              userID,
		BoardID:             r.BoardID,
		FolderID:            r.FolderID,
		Title:               r.Title,
		Summary:             r.Summary,
		URL:                 r.URL,
		Type:                r.Type,
		Categories:          r.Categories,
		Tags:                r.Tags,
		ImageURL:            r.ImageURL,
		MetaDescription:     r.MetaDescription,
		ShowMetaDescription: r.ShowMetaDescription,
	}
}

func CreateBookmarkHandler(c *gin.Context, svc *usecase.BookmarksService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	bookmark, err := svc.CreateBookmark(c.Request.Context(), req.toModel(userID.(string)))
	if err != nil {
		switch err.Error() {
		case "board not found":
			utils.NotFound(c, "Board not found")
		case "folder not found":
			utils.NotFound(c, "Folder not found")
		default:
			utils.BadRequest(c, err.Error())
		}
		return
	}

	utils.Created(c, gin.H{"bookmark": dto.ToBookmarkResponse(bookmark)})
}

func GetBookmarkHandler(c *gin.Context, svc *usecase.BookmarksService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	bookmark, err := svc.GetBookmark(c.Request.Context(), userID.(string), c.Param("id"))
	if err != nil {
		utils.NotFound(c, "Bookmark not found")
		return
	}

	utils.Success(c, gin.H{"bookmark": dto.ToBookmarkResponse(bookmark)})
}

func UpdateBookmarkHandler(c *gin.Context, svc *usecase.BookmarksService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req BookmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	bookmark, err := svc.UpdateBookmark(c.Request.Context(), userID.(string), c.Param("id"), req.toModel(userID.(string)))
	if err != nil {
		switch err.Error() {
		case "bookmark not found":
			utils.NotFound(c, "Bookmark not found")
		case "folder not found":
			utils.NotFound(c, "Folder not found")
		default:
			utils.BadRequest(c, err.Error())
		}
		return
	}

	utils.Success(c, gin.H{"bookmark": dto.ToBookmarkResponse(bookmark)})
}

func MoveBookmarkHandler(c *gin.Context, svc *usecase.BookmarksService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		FolderID *string `json:"folder_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	if err := svc.MoveBookmark(c.Request.Context(), userID.(string), c.Param("id"), req.FolderID); err != nil {
		switch err.Error() {
		case "bookmark not found", "folder not found":
			utils.NotFound(c, err.Error())
		default:
			utils.BadRequest(c, err.Error())
		}
		return
	}

	utils.Success(c, gin.H{"message": "Bookmark moved"})
}

func ToggleFavoriteHandler(c *gin.Context, svc *usecase.BookmarksService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	if err := svc.ToggleFavorite(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		if err.Error() == "bookmark not found" {
			utils.NotFound(c, "Bookmark not found")
			return
		}
		utils.InternalError(c, "Failed to toggle favorite")
		return
	}

	utils.Success(c, gin.H{"message": "Favorite toggled"})
}

func DeleteBookmarkHandler(c *gin.Context, svc *usecase.BookmarksService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	if err := svc.DeleteBookmark(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		if err.Error() == "bookmark not found" {
			utils.NotFound(c, "Bookmark not found")
			return
		}
		utils.InternalError(c, "Failed to delete bookmark")
		return
	}

	utils.Success(c, gin.H{"message": "Bookmark deleted"})
}

// GetGroupedBookmarksHandler returns one level of a board's tree, grouped
// for display. Optional query params: folder_id scopes to a folder, types
// is a comma-separated type filter.
func GetGroupedBookmarksHandler(c *gin.Context, svc *usecase.BookmarksService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var currentFolderID *string
	if folderID := c.Query("folder_id"); folderID != "" {
		currentFolderID = &folderID
	}

	types := parseTypesParam(c)

	groups, err := svc.GetGroupedBookmarks(c.Request.Context(), userID.(string), c.Param("id"), currentFolderID, types)
	if err != nil {
		switch err.Error() {
		case "board not found", "folder not found":
			utils.NotFound(c, err.Error())
		default:
			utils.InternalError(c, "Failed to fetch bookmarks")
		}
		return
	}

	utils.Success(c, groups)
}

// parseTypesParam reads the types query param into a filter. An absent
// param means no filter (nil); a present-but-empty param is an explicit
// empty selection and filters everything out.
func parseTypesParam(c *gin.Context) []model.BookmarkType {
	raw, present := c.GetQuery("types")
	if !present {
		return nil
	}

	types := []model.BookmarkType{}
	for _, t := range strings.Split(raw, ",") {
		bt := model.BookmarkType(strings.TrimSpace(t))
		if bt.Valid() {
			types = append(types, bt)
		}
	}
	return types
}

// SearchBookmarksHandler runs the prioritized search over one board.
func SearchBookmarksHandler(c *gin.Context, svc *usecase.BookmarksService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	results, err := svc.Search(c.Request.Context(), userID.(string), c.Param("id"), c.Query("q"))
	if err != nil {
		utils.InternalError(c, "Search failed")
		return
	}

	utils.Success(c, gin.H{"bookmarks": dto.ToBookmarkResponses(results)})
}

func GetBoardCategoriesHandler(c *gin.Context, svc *usecase.BookmarksService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	categories, err := svc.BoardCategories(c.Request.Context(), userID.(string), c.Param("id"))
	if err != nil {
		utils.InternalError(c, "Failed to fetch categories")
		return
	}

	utils.Success(c, gin.H{"categories": categories})
}

func GetBoardTagsHandler(c *gin.Context, svc *usecase.BookmarksService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	tags, err := svc.BoardTags(c.Request.Context(), userID.(string), c.Param("id"))
	if err != nil {
		utils.InternalError(c, "Failed to fetch tags")
		return
	}

	utils.Success(c, gin.H{"tags": tags})
}

// ClassifyBookmarkHandler returns suggested categories and tags for a
// bookmark. Unavailable when no classifier key is configured.
func ClassifyBookmarkHandler(c *gin.Context, svc *usecase.BookmarksService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	suggestion, err := svc.Classify(c.Request.Context(), userID.(string), c.Param("id"))
	if err != nil {
		switch {
		case err == services.ErrNoClassifierKey:
			utils.BadRequest(c, "Classification is not configured")
		case err.Error() == "bookmark not found":
			utils.NotFound(c, "Bookmark not found")
		default:
			utils.InternalError(c, "Classification failed")
		}
		return
	}

	utils.Success(c, gin.H{"suggestion": suggestion})
}
