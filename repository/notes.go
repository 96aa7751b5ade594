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

type NotesRepo struct {
	MongoCollection *mongo.Collection
}

func GetNotesRepo(client *mongo.Client) *NotesRepo {
	return &NotesRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("notes"),
	}
}

func (r *NotesRepo) CreateNote(ctx context.Context, note *model.Note) error {
	timer := utils.TrackDBOperation("insert", "notes")
	defer timer.ObserveDuration()

	if note.UserID == "" || note.BookmarkID == "" {
		utils.TrackError("database", "invalid_note_data")
		return errors.New("user ID and bookmark ID are required")
	}

	note.CreatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, note)
	return err
}

// GetBookmarkNotes retrieves a bookmark's notes, most recent first.
func (r *NotesRepo) GetBookmarkNotes(ctx context.Context, bookmarkID string, userID string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	var notes []*model.Note
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"bookmark_id": bookmarkID, "user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// GetNotesForBookmarks fetches notes across many bookmarks in one query.
// The search path uses this to avoid a query per bookmark.
func (r *NotesRepo) GetNotesForBookmarks(ctx context.Context, bookmarkIDs []string, userID string) ([]*model.Note, error) {
	timer := utils.TrackDBOperation("find", "notes")
	defer timer.ObserveDuration()

	if len(bookmarkIDs) == 0 {
		return nil, nil
	}

	var notes []*model.Note
	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"bookmark_id": bson.M{"$in": bookmarkIDs}, "user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (r *NotesRepo) UpdateNote(ctx context.Context, noteID string, userID string, content string) error {
	timer := utils.TrackDBOperation("update", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": noteID, "user_id": userID},
		bson.M{"$set": bson.M{"content": content}})
	if err != nil {
		utils.TrackError("database", "note_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("note not found")
	}
	return nil
}

func (r *NotesRepo) DeleteNote(ctx context.Context, noteID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": noteID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "note_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("note not found")
	}
	return nil
}

func (r *NotesRepo) DeleteBookmarkNotes(ctx context.Context, bookmarkID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx,
		bson.M{"bookmark_id": bookmarkID, "user_id": userID})
	return err
}

func (r *NotesRepo) DeleteNotesForBookmarks(ctx context.Context, bookmarkIDs []string, userID string) error {
	if len(bookmarkIDs) == 0 {
		return nil
	}

	timer := utils.TrackDBOperation("delete", "notes")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx,
		bson.M{"bookmark_id": bson.M{"$in": bookmarkIDs}, "user_id": userID})
	return err
}
