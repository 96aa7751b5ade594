package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"booksmart/model"
	"booksmart/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type TodosRepo struct {
	MongoCollection *mongo.Collection
}

func GetTodosRepo(client *mongo.Client) *TodosRepo {
	return &TodosRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("todo_items"),
	}
}

func (r *TodosRepo) CreateTodoItem(ctx context.Context, item *model.TodoItem) error {
	timer := utils.TrackDBOperation("insert", "todo_items")
	defer timer.ObserveDuration()

	if item.UserID == "" || item.BookmarkID == "" {
		utils.TrackError("database", "invalid_todo_data")
		return errors.New("user ID and bookmark ID are required")
	}

	item.CreatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, item)
	return err
}

// GetBookmarkTodoItems retrieves a bookmark's todo items, oldest first.
func (r *TodosRepo) GetBookmarkTodoItems(ctx context.Context, bookmarkID string, userID string) ([]*model.TodoItem, error) {
	timer := utils.TrackDBOperation("find", "todo_items")
	defer timer.ObserveDuration()

	var items []*model.TodoItem
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"bookmark_id": bookmarkID, "user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TodosRepo) GetTodoItem(ctx context.Context, itemID string, userID string) (*model.TodoItem, error) {
	timer := utils.TrackDBOperation("find", "todo_items")
	defer timer.ObserveDuration()

	var item model.TodoItem
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": itemID, "user_id": userID}).Decode(&item)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errors.New("todo item not found")
		}
		return nil, err
	}
	return &item, nil
}

// GetTodoItemsForBookmarks fetches todo items across many bookmarks in one
// query, for the search path.
func (r *TodosRepo) GetTodoItemsForBookmarks(ctx context.Context, bookmarkIDs []string, userID string) ([]*model.TodoItem, error) {
	timer := utils.TrackDBOperation("find", "todo_items")
	defer timer.ObserveDuration()

	if len(bookmarkIDs) == 0 {
		return nil, nil
	}

	var items []*model.TodoItem
	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"bookmark_id": bson.M{"$in": bookmarkIDs}, "user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *TodosRepo) UpdateTodoText(ctx context.Context, itemID string, userID string, text string) error {
	timer := utils.TrackDBOperation("update", "todo_items")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": itemID, "user_id": userID},
		bson.M{"$set": bson.M{"text": text}})
	if err != nil {
		utils.TrackError("database", "todo_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("todo item not found")
	}
	return nil
}

func (r *TodosRepo) SetTodoCompleted(ctx context.Context, itemID string, userID string, completed bool) error {
	timer := utils.TrackDBOperation("update", "todo_items")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": itemID, "user_id": userID},
		bson.M{"$set": bson.M{"completed": completed}})
	if err != nil {
		utils.TrackError("database", "todo_toggle_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("todo item not found")
	}
	return nil
}

func (r *TodosRepo) DeleteTodoItem(ctx context.Context, itemID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "todo_items")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": itemID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "todo_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("todo item not found")
	}
	return nil
}

func (r *TodosRepo) DeleteBookmarkTodoItems(ctx context.Context, bookmarkID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "todo_items")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx,
		bson.M{"bookmark_id": bookmarkID, "user_id": userID})
	return err
}

func (r *TodosRepo) DeleteTodoItemsForBookmarks(ctx context.Context, bookmarkIDs []string, userID string) error {
	if len(bookmarkIDs) == 0 {
		return nil
	}

	timer := utils.TrackDBOperation("delete", "todo_items")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx,
		bson.M{"bookmark_id": bson.M{"$in": bookmarkIDs}, "user_id": userID})
	return err
}
