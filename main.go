package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"booksmart/config"
	"booksmart/handler"
	"booksmart/middleware"
	"booksmart/repository"
	"booksmart/services"
	"booksmart/usecase"
	"booksmart/utils"
)

func init() {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"JWT_SECRET_KEY",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"REDIS_URL",
		"PORT",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
	utils.InitMongoClient()
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	// Repositories
	userRepo := repository.GetUsersRepo(utils.MongoClient)
	sessionRepo := repository.GetSessionRepo(utils.MongoClient)
	boardRepo := repository.GetBoardsRepo(utils.MongoClient)
	folderRepo := repository.GetFoldersRepo(utils.MongoClient)
	bookmarkRepo := repository.GetBookmarksRepo(utils.MongoClient)
	noteRepo := repository.GetNotesRepo(utils.MongoClient)
	todoRepo := repository.GetTodosRepo(utils.MongoClient)

	// Collaborators
	metadataFetcher := services.NewMetadataFetcher()
	classifier, err := services.NewClassifier()
	if err != nil {
		log.Printf("Classifier disabled: %v", err)
	}

	// Services
	boardsService := usecase.NewBoardsService(boardRepo, folderRepo, bookmarkRepo, noteRepo, todoRepo, services.GlobalBoardCache)
	foldersService := usecase.NewFoldersService(folderRepo, bookmarkRepo, boardRepo)
	bookmarksService := usecase.NewBookmarksService(bookmarkRepo, folderRepo, boardRepo, noteRepo, todoRepo, metadataFetcher, classifier, services.GlobalBoardCache)
	notesService := usecase.NewNotesService(noteRepo, bookmarkRepo)
	todosService := usecase.NewTodosService(todoRepo)
	transferService := usecase.NewTransferService(boardRepo, folderRepo, bookmarkRepo, noteRepo, todoRepo, services.GlobalBoardCache)
	statsHandler := handler.NewStatsHandler(userRepo, boardRepo, bookmarkRepo, noteRepo, todoRepo, sessionRepo)

	// Global middleware
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(16 << 20))
	router.Use(middleware.SessionMiddleware(sessionRepo))

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Public routes
	public := router.Group("/api")
	{
		auth := public.Group("/auth")
		{
			auth.POST("/register", handler.RegistrationHandler)
			auth.POST("/login", func(c *gin.Context) {
				handler.LoginHandler(c, sessionRepo, boardsService)
			})
			auth.POST("/refresh", handler.RefreshTokenHandler)
		}
	}

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		user := protected.Group("/user")
		{
			user.GET("/profile", handler.GetUserProfileHandler)
			user.PUT("/email", handler.ChangeEmailHandler)
			user.PUT("/password", handler.ChangePasswordHandler)
			user.POST("/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, sessionRepo)
			})
			user.DELETE("", func(c *gin.Context) {
				handler.DeleteUserHandler(c, sessionRepo, transferService)
			})
			user.GET("/stats", statsHandler.GetUserStats)
		}

		twoFactor := protected.Group("/2fa")
		{
			twoFactor.POST("/generate", handler.Generate2FASecretHandler)
			twoFactor.POST("/enable", handler.Enable2FAHandler)
			twoFactor.POST("/verify", handler.Verify2FAHandler)
			twoFactor.POST("/disable", handler.Disable2FAHandler)
			twoFactor.POST("/recovery", handler.UseRecoveryCodeHandler)
		}

		sessions := protected.Group("/sessions")
		{
			sessions.GET("/active", func(c *gin.Context) {
				handler.GetActiveSessions(c, sessionRepo)
			})
			sessions.DELETE("/:id", func(c *gin.Context) {
				handler.LogoutSession(c, sessionRepo)
			})
			sessions.POST("/logout-all", func(c *gin.Context) {
				handler.LogoutAllSessions(c, sessionRepo)
			})
		}

		boards := protected.Group("/boards")
		{
			boards.GET("", func(c *gin.Context) {
				handler.ListBoardsHandler(c, boardsService)
			})
			boards.POST("", func(c *gin.Context) {
				handler.CreateBoardHandler(c, boardsService)
			})
			boards.POST("/prewarm", func(c *gin.Context) {
				handler.PrewarmBoardsHandler(c, boardsService)
			})
			boards.GET("/:id", func(c *gin.Context) {
				handler.GetBoardViewHandler(c, boardsService)
			})
			boards.PUT("/:id", func(c *gin.Context) {
				handler.RenameBoardHandler(c, boardsService)
			})
			boards.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteBoardHandler(c, boardsService)
			})

			boards.GET("/:id/folders", func(c *gin.Context) {
				handler.GetBoardFolderTreeHandler(c, foldersService)
			})
			boards.GET("/:id/bookmarks", func(c *gin.Context) {
				handler.GetGroupedBookmarksHandler(c, bookmarksService)
			})
			boards.GET("/:id/search", func(c *gin.Context) {
				handler.SearchBookmarksHandler(c, bookmarksService)
			})
			boards.GET("/:id/categories", func(c *gin.Context) {
				handler.GetBoardCategoriesHandler(c, bookmarksService)
			})
			boards.GET("/:id/tags", func(c *gin.Context) {
				handler.GetBoardTagsHandler(c, bookmarksService)
			})
			boards.POST("/:id/import", func(c *gin.Context) {
				handler.ImportBrowserBookmarksHandler(c, bookmarksService)
			})
		}

		folders := protected.Group("/folders")
		{
			folders.POST("", func(c *gin.Context) {
				handler.CreateFolderHandler(c, foldersService)
			})
			folders.PUT("/:id", func(c *gin.Context) {
				handler.RenameFolderHandler(c, foldersService)
			})
			folders.PUT("/:id/move", func(c *gin.Context) {
				handler.MoveFolderHandler(c, foldersService)
			})
			folders.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteFolderHandler(c, foldersService)
			})
		}

		bookmarks := protected.Group("/bookmarks")
		{
			bookmarks.POST("", func(c *gin.Context) {
				handler.CreateBookmarkHandler(c, bookmarksService)
			})
			bookmarks.GET("/:id", func(c *gin.Context) {
				handler.GetBookmarkHandler(c, bookmarksService)
			})
			bookmarks.PUT("/:id", func(c *gin.Context) {
				handler.UpdateBookmarkHandler(c, bookmarksService)
			})
			bookmarks.PUT("/:id/move", func(c *gin.Context) {
				handler.MoveBookmarkHandler(c, bookmarksService)
			})
			bookmarks.POST("/:id/favorite", func(c *gin.Context) {
				handler.ToggleFavoriteHandler(c, bookmarksService)
			})
			bookmarks.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteBookmarkHandler(c, bookmarksService)
			})
			bookmarks.POST("/:id/classify", func(c *gin.Context) {
				handler.ClassifyBookmarkHandler(c, bookmarksService)
			})

			bookmarks.GET("/:id/notes", func(c *gin.Context) {
				handler.GetBookmarkNotesHandler(c, notesService)
			})
			bookmarks.POST("/:id/notes", func(c *gin.Context) {
				handler.CreateNoteHandler(c, notesService)
			})
			bookmarks.GET("/:id/todos", func(c *gin.Context) {
				handler.GetBookmarkTodoItemsHandler(c, todosService)
			})
			bookmarks.POST("/:id/todos", func(c *gin.Context) {
				handler.CreateTodoItemHandler(c, todosService)
			})
		}

		notes := protected.Group("/notes")
		{
			notes.PUT("/:id", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, notesService)
			})
			notes.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteNoteHandler(c, notesService)
			})
		}

		todos := protected.Group("/todos")
		{
			todos.PUT("/:id", func(c *gin.Context) {
				handler.UpdateTodoTextHandler(c, todosService)
			})
			todos.POST("/:id/toggle", func(c *gin.Context) {
				handler.ToggleTodoItemHandler(c, todosService)
			})
			todos.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteTodoItemHandler(c, todosService)
			})
		}

		metadata := protected.Group("/metadata")
		{
			metadata.GET("", func(c *gin.Context) {
				handler.FetchMetadataHandler(c, bookmarksService)
			})
		}

		transfer := protected.Group("/transfer")
		{
			transfer.GET("/export", func(c *gin.Context) {
				handler.ExportDataHandler(c, transferService)
			})
			transfer.POST("/import", func(c *gin.Context) {
				handler.ImportDataHandler(c, transferService)
			})
			transfer.POST("/clear", func(c *gin.Context) {
				handler.ClearDataHandler(c, transferService)
			})
		}

		protected.POST("/feedback", handler.CreateFeedbackHandler)
	}

	return router
}

func main() {
	cacheConfig := config.LoadCacheConfig()

	blacklist, err := services.NewTokenBlacklist(cacheConfig.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect token blacklist: %v", err)
	}
	services.TokenBlacklist = blacklist
	defer blacklist.Close()

	sessionCache, err := services.NewSessionCache(cacheConfig.RedisURL)
	if err != nil {
		log.Fatalf("Failed to connect session cache: %v", err)
	}
	services.GlobalSessionCache = sessionCache

	boardCache, err := services.NewBoardCache(cacheConfig.RedisURL, cacheConfig.BoardTTL)
	if err != nil {
		log.Fatalf("Failed to connect board cache: %v", err)
	}
	services.GlobalBoardCache = boardCache
	defer boardCache.Close()

	dbConfig := config.LoadDatabaseConfig()
	if err := repository.SetupIndexes(utils.MongoClient.Database(dbConfig.DatabaseName)); err != nil {
		log.Printf("Index setup failed: %v", err)
	}

	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
