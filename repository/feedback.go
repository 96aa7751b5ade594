package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"booksmart/model"
	"booksmart/utils"

	"go.mongodb.org/mongo-driver/mongo"
)

type FeedbackRepo struct {
	MongoCollection *mongo.Collection
}

func GetFeedbackRepo(client *mongo.Client) *FeedbackRepo {
	return &FeedbackRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("feedback"),
	}
}

func (r *FeedbackRepo) CreateFeedback(ctx context.Context, feedback *model.Feedback) error {
	timer := utils.TrackDBOperation("insert", "feedback")
	defer timer.ObserveDuration()

	if feedback.UserID == "" {
		utils.TrackError("database", "invalid_feedback_data")
		return errors.New("user ID is required")
	}

	feedback.CreatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, feedback)
	return err
}
