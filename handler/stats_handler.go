package handler

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"booksmart/repository"
	"booksmart/services"
	"booksmart/utils"
)

var serverStart = time.Now()

type StatsHandler struct {
	userRepo     *repository.UsersRepo
	boardRepo    *repository.BoardsRepo
	bookmarkRepo *repository.BookmarksRepo
	noteRepo     *repository.NotesRepo
	todoRepo     *repository.TodosRepo
	sessionRepo  *repository.SessionRepo
}

func NewStatsHandler(
	userRepo *repository.UsersRepo,
	boardRepo *repository.BoardsRepo,
	bookmarkRepo *repository.BookmarksRepo,
	noteRepo *repository.NotesRepo,
	todoRepo *repository.TodosRepo,
	sessionRepo *repository.SessionRepo,
) *StatsHandler {
	return &StatsHandler{
		userRepo:     userRepo,
		boardRepo:    boardRepo,
		bookmarkRepo: bookmarkRepo,
		noteRepo:     noteRepo,
		todoRepo:     todoRepo,
		sessionRepo:  sessionRepo,
	}
}

type accountStats struct {
	Boards       int            `json:"boards"`
	Folders      int            `json:"folders"`
	Bookmarks    int            `json:"bookmarks"`
	Favorites    int            `json:"favorites"`
	Notes        int            `json:"notes"`
	TodoItems    int            `json:"todo_items"`
	TodosDone    int            `json:"todos_done"`
	Categories   int            `json:"categories"`
	Tags         int            `json:"tags"`
	Sessions     int            `json:"sessions"`
	AccountStart time.Time      `json:"account_created"`
	LastActive   time.Time      `json:"last_active,omitempty"`
	ByType       map[string]int `json:"by_type"`
}

func (h *StatsHandler) GetUserStats(c *gin.Context) {
	ctx := c.Request.Context()
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing or invalid token")
		return
	}
	uid := userID.(string)

	user, err := h.userRepo.FindUser(ctx, uid)
	if err != nil {
		log.Printf("Error fetching user %s: %v", uid, err)
		utils.InternalError(c, "Failed to fetch user details")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	stats := accountStats{
		AccountStart: user.CreatedAt,
		ByType:       make(map[string]int),
	}

	boards, err := h.boardRepo.GetUserBoards(ctx, uid)
	if err != nil {
		utils.InternalError(c, "Failed to count boards")
		return
	}
	stats.Boards = len(boards)

	categories := make(map[string]bool)
	tags := make(map[string]bool)
	var bookmarkIDs []string

	folderRepo := repository.GetFoldersRepo(utils.MongoClient)
	for _, board := range boards {
		boardFolders, err := folderRepo.GetBoardFolders(ctx, board.ID, uid)
		if err == nil {
			stats.Folders += len(boardFolders)
		}

		bookmarks, err := h.bookmarkRepo.GetBoardBookmarks(ctx, board.ID, uid)
		if err != nil {
			continue
		}
		stats.Bookmarks += len(bookmarks)
		for _, b := range bookmarks {
			bookmarkIDs = append(bookmarkIDs, b.ID)
			stats.ByType[string(b.Type)]++
			if b.IsFavorite {
				stats.Favorites++
			}
			for _, cat := range b.Categories {
				categories[cat] = true
			}
			for _, tag := range b.Tags {
				tags[tag] = true
			}
		}
	}
	stats.Categories = len(categories)
	stats.Tags = len(tags)

	if len(bookmarkIDs) > 0 {
		notes, err := h.noteRepo.GetNotesForBookmarks(ctx, bookmarkIDs, uid)
		if err == nil {
			stats.Notes = len(notes)
		}
		items, err := h.todoRepo.GetTodoItemsForBookmarks(ctx, bookmarkIDs, uid)
		if err == nil {
			stats.TodoItems = len(items)
			for _, item := range items {
				if item.Completed {
					stats.TodosDone++
				}
			}
		}
	}

	sessions, err := h.sessionRepo.GetUserActiveSessions(uid)
	if err == nil {
		stats.Sessions = len(sessions)
		for _, session := range sessions {
			if session.LastActivityAt.After(stats.LastActive) {
				stats.LastActive = session.LastActivityAt
			}
		}
	}

	utils.Success(c, gin.H{"stats": stats})
}

// HealthHandler reports process and dependency health.
func HealthHandler(c *gin.Context) {
	mongoStatus := "ok"
	if utils.MongoClient == nil {
		mongoStatus = "unavailable"
	} else if err := utils.MongoClient.Ping(c.Request.Context(), nil); err != nil {
		mongoStatus = "unreachable"
	}

	redisStatus := "ok"
	if services.TokenBlacklist == nil || !services.TokenBlacklist.IsConnected() {
		redisStatus = "unavailable"
	}

	status := "healthy"
	if mongoStatus != "ok" || redisStatus != "ok" {
		status = "degraded"
	}

	utils.Success(c, gin.H{
		"status":         status,
		"uptime_seconds": int(time.Since(serverStart).Seconds()),
		"cpu_percent":    utils.GetCPUUsage(),
		"memory_percent": utils.GetMemoryUsage(),
		"mongo":          mongoStatus,
		"redis":          redisStatus,
	})
}
