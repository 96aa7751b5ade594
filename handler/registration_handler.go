package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"booksmart/model"
	"booksmart/repository"
	"booksmart/services"
	"booksmart/utils"
)

func RegistrationHandler(c *gin.Context) {
	var req model.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.TrackAuthAttempt("failure", "registration_validation")
		utils.BadRequest(c, "invalid request")
		return
	}

	userRepo := repository.GetUsersRepo(utils.MongoClient)
	ctx := c.Request.Context()

	existing, err := userRepo.FindUserByUsername(ctx, req.Username)
	if err != nil {
		utils.TrackError("database", "user_lookup")
		utils.InternalError(c, "failed to check username")
		return
	}
	if existing != nil {
		utils.Conflict(c, "username already exists")
		return
	}

	hashedPassword, err := services.HashPassword(req.Password)
	if err != nil {
		utils.TrackError("auth", "password_hashing")
		utils.InternalError(c, "failed to process registration")
		return
	}

	user := &model.User{
		UserID:    utils.GenerateUserID(),
		Username:  req.Username,
		Email:     req.Email,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}

	if _, err := userRepo.AddUser(ctx, user); err != nil {
		utils.TrackError("database", "user_create")
		utils.InternalError(c, "failed to create user")
		return
	}

	token, err := services.GenerateJWT(user.UserID)
	if err != nil {
		utils.TrackError("auth", "token_generation")
		utils.InternalError(c, "failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.TrackError("auth", "refresh_token_generation")
		utils.InternalError(c, "failed to generate refresh token")
		return
	}

	utils.TrackAuthAttempt("success", "registration")
	utils.Created(c, gin.H{
		"message": "user registered successfully",
		"token":   token,
		"refresh": refreshToken,
	})
}
