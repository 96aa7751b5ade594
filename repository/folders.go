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

type FoldersRepo struct {
	MongoCollection *mongo.Collection
}

func GetFoldersRepo(client *mongo.Client) *FoldersRepo {
	return &FoldersRepo{
		MongoCollection: client.Database(os.Getenv("MONGO_DB")).Collection("folders"),
	}
}

func (r *FoldersRepo) CreateFolder(ctx context.Context, folder *model.Folder) error {
	timer := utils.TrackDBOperation("insert", "folders")
	defer timer.ObserveDuration()

	if folder.UserID == "" || folder.BoardID == "" {
		utils.TrackError("database", "invalid_folder_data")
		return errors.New("user ID and board ID are required")
	}

	folder.CreatedAt = time.Now()

	_, err := r.MongoCollection.InsertOne(ctx, folder)
	return err
}

// GetBoardFolders returns the board's folders in creation order. The
// grouping logic relies on this order for folder bucket placement.
func (r *FoldersRepo) GetBoardFolders(ctx context.Context, boardID string, userID string) ([]*model.Folder, error) {
	timer := utils.TrackDBOperation("find", "folders")
	defer timer.ObserveDuration()

	var folders []*model.Folder
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.MongoCollection.Find(ctx,
		bson.M{"board_id": boardID, "user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "folder_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &folders); err != nil {
		return nil, err
	}
	return folders, nil
}

func (r *FoldersRepo) GetFolder(ctx context.Context, folderID string, userID string) (*model.Folder, error) {
	timer := utils.TrackDBOperation("find", "folders")
	defer timer.ObserveDuration()

	var folder model.Folder
	err := r.MongoCollection.FindOne(ctx,
		bson.M{"_id": folderID, "user_id": userID}).Decode(&folder)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.TrackError("database", "folder_not_found")
			return nil, errors.New("folder not found")
		}
		return nil, err
	}
	return &folder, nil
}

func (r *FoldersRepo) UpdateFolderName(ctx context.Context, folderID string, userID string, name string) error {
	timer := utils.TrackDBOperation("update", "folders")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": folderID, "user_id": userID},
		bson.M{"$set": bson.M{"name": name}})
	if err != nil {
		utils.TrackError("database", "folder_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("folder not found")
	}
	return nil
}

// SetFolderParent moves a folder under a new parent (nil = board root).
// BoardID never changes; cycle validation happens in the usecase layer.
func (r *FoldersRepo) SetFolderParent(ctx context.Context, folderID string, userID string, parentID *string) error {
	timer := utils.TrackDBOperation("update", "folders")
	defer timer.ObserveDuration()

	var update bson.M
	if parentID == nil {
		update = bson.M{"$unset": bson.M{"parent_folder_id": ""}}
	} else {
		update = bson.M{"$set": bson.M{"parent_folder_id": *parentID}}
	}

	result, err := r.MongoCollection.UpdateOne(ctx,
		bson.M{"_id": folderID, "user_id": userID}, update)
	if err != nil {
		utils.TrackError("database", "folder_move_failed")
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New("folder not found")
	}
	return nil
}

// ReparentChildren moves every direct child of oldParentID under newParentID.
func (r *FoldersRepo) ReparentChildren(ctx context.Context, oldParentID string, userID string, newParentID *string) error {
	timer := utils.TrackDBOperation("update", "folders")
	defer timer.ObserveDuration()

	filter := bson.M{"parent_folder_id": oldParentID, "user_id": userID}

	var update bson.M
	if newParentID == nil {
		update = bson.M{"$unset": bson.M{"parent_folder_id": ""}}
	} else {
		update = bson.M{"$set": bson.M{"parent_folder_id": *newParentID}}
	}

	_, err := r.MongoCollection.UpdateMany(ctx, filter, update)
	return err
}

func (r *FoldersRepo) DeleteFolder(ctx context.Context, folderID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "folders")
	defer timer.ObserveDuration()

	result, err := r.MongoCollection.DeleteOne(ctx,
		bson.M{"_id": folderID, "user_id": userID})
	if err != nil {
		utils.TrackError("database", "folder_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		return errors.New("folder not found")
	}
	return nil
}

func (r *FoldersRepo) DeleteBoardFolders(ctx context.Context, boardID string, userID string) error {
	timer := utils.TrackDBOperation("delete", "folders")
	defer timer.ObserveDuration()

	_, err := r.MongoCollection.DeleteMany(ctx,
		bson.M{"board_id": boardID, "user_id": userID})
	return err
}
