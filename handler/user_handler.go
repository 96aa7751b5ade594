package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"booksmart/dto"
	"booksmart/repository"
	"booksmart/services"
	"booksmart/utils"
)

func GetUserProfileHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Unauthorized")
		return
	}

	userRepo := repository.GetUsersRepo(utils.MongoClient)
	user, err := userRepo.FindUser(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, "Could not fetch user details")
		return
	}
	if user == nil {
		utils.NotFound(c, "User not found")
		return
	}

	baseURL := utils.GetBaseURL(c)
	links := map[string]dto.UserLink{
		"self":            {Href: baseURL + "/user", Method: http.MethodGet},
		"update-email":    {Href: baseURL + "/user/email", Method: http.MethodPut},
		"update-password": {Href: baseURL + "/user/password", Method: http.MethodPut},
		"delete":          {Href: baseURL + "/user", Method: http.MethodDelete},
	}

	utils.Success(c, dto.ToUserProfileResponse(user, links))
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,password"`
}

func ChangePasswordHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	ctx := c.Request.Context()
	userRepo := repository.GetUsersRepo(utils.MongoClient)

	user, err := userRepo.FindUser(ctx, userID.(string))
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	ok, err := services.VerifyPassword(user.Password, req.OldPassword)
	if err != nil || !ok {
		utils.TrackAuthAttempt("failure", "password_change")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}
	if req.OldPassword == req.NewPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password cannot be the same as current"})
		return
	}

	hashed, err := services.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	if _, err := userRepo.UpdateUserPassword(ctx, userID.(string), hashed); err != nil {
		log.Printf("Error updating password for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	log.Printf("Password changed successfully for user %s", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Password updated successfully"})
}

type ChangeEmailRequest struct {
	NewEmail string `json:"new_email" binding:"required,email"`
}

func ChangeEmailHandler(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return
	}

	var req ChangeEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userRepo := repository.GetUsersRepo(utils.MongoClient)
	modified, err := userRepo.UpdateUserEmail(c.Request.Context(), userID.(string), req.NewEmail)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update email"})
		return
	}
	if modified == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is unchanged"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email updated successfully"})
}

// DeleteUserHandler removes the account and everything it owns.
func DeleteUserHandler(c *gin.Context, sessionRepo *repository.SessionRepo, transferService TransferClearer) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid token"})
		return
	}

	ctx := c.Request.Context()

	if err := transferService.ClearAllData(ctx, userID.(string)); err != nil {
		log.Printf("Error clearing data for user %s: %v", userID, err)
		utils.InternalError(c, "Failed to delete user data")
		return
	}

	if err := sessionRepo.DeleteUserSessions(userID.(string)); err != nil {
		log.Printf("Error deleting sessions for user %s: %v", userID, err)
	}

	userRepo := repository.GetUsersRepo(utils.MongoClient)
	deleted, err := userRepo.DeleteUserByID(ctx, userID.(string))
	if err != nil || deleted == 0 {
		utils.InternalError(c, "Failed to delete user")
		return
	}

	c.SetCookie("session_id", "", -1, "/", "", true, true)
	utils.Success(c, gin.H{"message": "Account deleted"})
}

// TransferClearer is the slice of the transfer service account deletion
// needs.
type TransferClearer interface {
	ClearAllData(ctx context.Context, userID string) error
}
