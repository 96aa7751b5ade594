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

type BookmarksRepo struct {
	MongoCollection *mongo.Collection
}

func GetBookmarksRepo(client *mongo.Client) *BookmarksRepo {
	return &BookmarksRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("bookmarks"),
	}
}

func (r *BookmarksRepo) CreateBookmark(ctx context.Context, bookmark *model.Bookmark) error {
	timer := utils.TrackDBOperation("insert", "bookmarks")
	defer timer.ObserveDuration()

	if bookmark.UserID == "" || bookmark.BoardID == "" {
		utils.TrackError("database", "invalid_bookmark_data")
		return errors.New("user ID and board ID are required")
	}

	bookmark.CreatedAt = time.Now()
	bookmark.UpdatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, bookmark)
	if err != nil {
		utils.TrackError("database", "bookmark_creation_failed")
		return err
	}

	utils.TrackBookmarkOperation("create")
	return nil
}

// GetBoardBookmarks retrieves all bookmarks on a board, newest first.
func (r *BookmarksRepo) GetBoardBookmarks(ctx context.Context, boardID string, userID string) ([]*model.Bookmark, error) {
	timer := utils.TrackDBOperation("find", "bookmarks")
	defer timer.ObserveDuration()

	var bookmarks []*model.Bookmark
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"board_id": boardID, "user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "bookmark_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &bookmarks); err != nil {
		return nil, err
	}
	return bookmarks, nil
}

func (r *BookmarksRepo) GetBookmark(ctx context.Context, bookmarkID string, userID string) (*model.Bookmark, error) {
	timer := utils.TrackDBOperation("find", "bookmarks")
	defer timer.ObserveDuration()

	var bookmark model.Bookmark
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": bookmarkID, "user_id": userID}).Decode(&bookmark)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.TrackError("database", "bookmark_not_found")
			return nil, errors.New("bookmark not found")
		}
		return nil, err
	}
	return &bookmark, nil
}

func (r *BookmarksRepo) UpdateBookmark(ctx context.Context, bookmarkID string, userID string, updates *model.Bookmark) error {
	timer := utils.TrackDBOperation("update", "bookmarks")
	defer timer.ObserveDuration()

	updates.UpdatedAt = time.Now()

	filter := bson.M{"_id": bookmarkID, "user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"folder_id":             updates.FolderID,
			"title":                 updates.Title,
			"summary":               updates.Summary,
			"url":                   updates.URL,
			"type":                  updates.Type,
			"categories":            updates.Categories,
			"tags":                  updates.Tags,
			"image_url":             updates.ImageURL,
			"meta_description":      updates.MetaDescription,
			"show_meta_description": updates.ShowMetaDescription,
			"updated_at":            updates.UpdatedAt,
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "bookmark_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("bookmark not found")
	}

	utils.TrackBookmarkOperation("update")
	return nil
}

func (r *BookmarksRepo) ToggleFavorite(ctx context.Context, bookmarkID string, userID string) error {
	timer := utils.TrackDBOperation("update", "bookmarks")
	defer timer.ObserveDuration()

	var bookmark model.Bookmark
	filter := bson.M{"_id": bookmarkID, "user_id": userID}

	err := r.MongoCollection.FindOne(ctx, filter).Decode(&bookmark)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return errors.New("bookmark not found")
		}
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"is_favorite": !bookmark.IsFavorite,
			"updated_at":  time.Now(),
		},
	}

	_, err = r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "bookmark_favorite_failed")
		return err
	}

	utils.TrackBookmarkOperation("favorite")
	return nil
}

func (r *BookmarksRepo) DeleteBookmark(ctx context.Context, bookmarkID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "bookmarks")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": bookmarkID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "bookmark_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("bookmark not found")
	}

	utils.TrackBookmarkOperation("delete")
	return nil
}

// ClearFolder reassigns every bookmark in the folder to "uncategorized"
// (no folder). Used when the folder itself is deleted.
func (r *BookmarksRepo) ClearFolder(ctx context.Context, folderID string, userID string) error {
	timer := utils.TrackDBOperation("update", "bookmarks")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.UpdateMany(ctx,
		bson.M{"folder_id": folderID, "user_id": userID},
		bson.M{"$unset": bson.M{"folder_id": ""}})
	return err
}

func (r *BookmarksRepo) DeleteBoardBookmarks(ctx context.Context, boardID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "bookmarks")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx,
		bson.M{"board_id": boardID, "user_id": userID})
	return err
}

// DistinctCategories returns the distinct category strings present on a
// board's bookmarks. Categories are derived values with no backing table;
// one that no bookmark references no longer exists.
func (r *BookmarksRepo) DistinctCategories(ctx context.Context, boardID string, userID string) ([]string, error) {
	timer := utils.TrackDBOperation("distinct", "bookmarks")
	defer timer.ObserveDuration()

	values, err := r.MongoCollection.Distinct(ctx, "categories",
		bson.M{"board_id": boardID, "user_id": userID})
	if err != nil {
		return nil, err
	}
	return toStrings(values), nil
}

func (r *BookmarksRepo) DistinctTags(ctx context.Context, boardID string, userID string) ([]string, error) {
	timer := utils.TrackDBOperation("distinct", "bookmarks")
	defer timer.ObserveDuration()

	values, err := r.MongoCollection.Distinct(ctx, "tags",
		bson.M{"board_id": boardID, "user_id": userID})
	if err != nil {
		return nil, err
	}
	return toStrings(values), nil
}

func toStrings(values []interface{}) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
