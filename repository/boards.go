package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"booksmart/model"
	"booksmart/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type BoardsRepo struct {
	MongoCollection *mongo.Collection
}

func GetBoardsRepo(client *mongo.Client) *BoardsRepo {
	return &BoardsRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("boards"),
	}
}

func (r *BoardsRepo) CreateBoard(ctx context.Context, board *model.Board) error {
	timer := utils.TrackDBOperation("insert", "boards")
	defer timer.ObserveDuration()

	if board.UserID == "" {
		utils.TrackError("database", "invalid_board_data")
		return errors.New("user ID is required")
	}

	board.CreatedAt = time.Now()
	board.UpdatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, board)
	if err != nil {
		utils.TrackError("database", "board_creation_failed")
		return fmt.Errorf("failed to create board: %w", err)
	}
	return nil
}

// GetUserBoards returns the user's boards in creation order.
func (r *BoardsRepo) GetUserBoards(ctx context.Context, userID string) ([]*model.Board, error) {
	timer := utils.TrackDBOperation("find", "boards")
	defer timer.ObserveDuration()

	var boards []*model.Board
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "board_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &boards); err != nil {
		return nil, err
	}
	return boards, nil
}

func (r *BoardsRepo) GetBoard(ctx context.Context, boardID string, userID string) (*model.Board, error) {
	timer := utils.TrackDBOperation("find", "boards")
	defer timer.ObserveDuration()

	var board model.Board
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": boardID, "user_id": userID}).Decode(&board)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.TrackError("database", "board_not_found")
			return nil, errors.New("board not found")
		}
		return nil, err
	}
	return &board, nil
}

func (r *BoardsRepo) UpdateBoardName(ctx context.Context, boardID string, userID string, name string) error {
	timer := utils.TrackDBOperation("update", "boards")
	defer timer.ObserveDuration()

	filter := bson.M{"_id": boardID, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"name":       name,
			"updated_at": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "board_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("board not found")
	}
	return nil
}

func (r *BoardsRepo) DeleteBoard(ctx context.Context, boardID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "boards")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": boardID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "board_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("board not found")
	}
	return nil
}

func (r *BoardsRepo) CountUserBoards(ctx context.Context, userID string) (int, error) {
	timer := utils.TrackDBOperation("count", "boards")
	defer timer.ObserveDuration()

	count, err := r.MongoCollection.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
