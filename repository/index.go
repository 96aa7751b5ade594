package repository

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func SetupIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	boardIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("user_boards_date"),
		},
	}

	folderIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "board_id", Value: 1},
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("board_folders_date"),
		},
		{
			Keys:    bson.D{{Key: "parent_folder_id", Value: 1}},
			Options: options.Index().SetName("folder_parent"),
		},
	}

	bookmarkIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "board_id", Value: 1},
				{Key: "user_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("board_bookmarks_date"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "folder_id", Value: 1},
			},
			Options: options.Index().SetName("user_folder_bookmarks"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "categories", Value: 1},
			},
			Options: options.Index().SetName("user_categories"),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "tags", Value: 1},
			},
			Options: options.Index().SetName("user_tags"),
		},
	}

	noteIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "bookmark_id", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("bookmark_notes_date"),
		},
	}

	todoIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "bookmark_id", Value: 1},
				{Key: "created_at", Value: 1},
			},
			Options: options.Index().SetName("bookmark_todos_date"),
		},
	}

	sessionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetName("session_id_index").SetUnique(true),
		},
		{
			Keys: bson.D{
				{Key: "user_id", Value: 1},
				{Key: "is_active", Value: 1},
			},
			Options: options.Index().SetName("user_active_sessions"),
		},
	}

	for collection, indexes := range map[string][]mongo.IndexModel{
		"boards":     boardIndexes,
		"folders":    folderIndexes,
		"bookmarks":  bookmarkIndexes,
		"notes":      noteIndexes,
		"todo_items": todoIndexes,
		"sessions":   sessionIndexes,
	} {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return fmt.Errorf("failed to create %s indexes: %w", collection, err)
		}
	}

	log.Println("Successfully created all indexes")
	return nil
}
