package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"booksmart/usecase"
	"booksmart/utils"
)

func CreateTodoItemHandler(c *gin.Context, svc *usecase.TodosService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Todo text is required")
		return
	}

	item, err := svc.CreateTodoItem(c.Request.Context(), userID.(string), c.Param("id"), req.Text)
	if err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Created(c, gin.H{"todo_item": item})
}

func GetBookmarkTodoItemsHandler(c *gin.Context, svc *usecase.TodosService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	items, err := svc.GetBookmarkTodoItems(c.Request.Context(), userID.(string), c.Param("id"))
	if err != nil {
		utils.InternalError(c, "Failed to fetch todo items")
		return
	}

	utils.Success(c, gin.H{"todo_items": items})
}

func UpdateTodoTextHandler(c *gin.Context, svc *usecase.TodosService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Todo text is required")
		return
	}

	if err := svc.UpdateTodoText(c.Request.Context(), userID.(string), c.Param("id"), req.Text); err != nil {
		if err.Error() == "todo item not found" {
			utils.NotFound(c, "Todo item not found")
			return
		}
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Todo updated"})
}

// ToggleTodoItemHandler flips a todo's completed state and always returns
// the stored state, so an optimistic client can re-sync after a failure.
func ToggleTodoItemHandler(c *gin.Context, svc *usecase.TodosService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	item, err := svc.ToggleCompleted(c.Request.Context(), userID.(string), c.Param("id"))
	if err != nil {
		if item != nil {
			// Write failed but we know the stored state; hand it back
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Failed to toggle todo item",
				"todo_item": item,
			})
			return
		}
		if err.Error() == "todo item not found" {
			utils.NotFound(c, "Todo item not found")
			return
		}
		utils.InternalError(c, "Failed to toggle todo item")
		return
	}

	utils.Success(c, gin.H{"todo_item": item})
}

func DeleteTodoItemHandler(c *gin.Context, svc *usecase.TodosService) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	if err := svc.DeleteTodoItem(c.Request.Context(), userID.(string), c.Param("id")); err != nil {
		if err.Error() == "todo item not found" {
			utils.NotFound(c, "Todo item not found")
			return
		}
		utils.InternalError(c, "Failed to delete todo item")
		return
	}

	utils.Success(c, gin.H{"message": "Todo item deleted"})
}
