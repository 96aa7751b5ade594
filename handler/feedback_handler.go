package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"booksmart/model"
	"booksmart/repository"
	"booksmart/utils"
)

func CreateFeedbackHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	var feedback model.Feedback
	if err := c.ShouldBindJSON(&feedback); err != nil {
		utils.BadRequest(c, "Feedback message is required")
		return
	}
	if feedback.Rating < 0 || feedback.Rating > 5 {
		utils.BadRequest(c, "Rating must be between 0 and 5")
		return
	}

	feedback.ID = uuid.New().String()
	feedback.UserID = userID.(string)
	feedback.CreatedAt = time.Now()

	feedbackRepo := repository.GetFeedbackRepo(utils.MongoClient)
	if err := feedbackRepo.CreateFeedback(c.Request.Context(), &feedback); err != nil {
		utils.InternalError(c, "Failed to submit feedback")
		return
	}

	utils.Created(c, gin.H{"message": "Feedback submitted, thank you"})
}
