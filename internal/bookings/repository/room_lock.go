package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	bookingserrors "bokning/internal/bookings/errors"
	"bokning/pkg/config"
	"bokning/pkg/model"
)

const LockCollectionName = "Room_locks"

// RoomLockRepository provides per-room advisory locks. Acquisition relies on
// the unique _id: the second insert for the same room fails with a duplicate
// key error.
type RoomLockRepository interface {
	Acquire(ctx context.Context, lock *model.RoomLock) error
	Release(ctx context.Context, lockID string) error
}

type mongoRoomLockRepository struct {
	collection *mongo.Collection
}

func NewRoomLockRepository(cfg *config.Config) RoomLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoRoomLockRepository{
		collection: db.Collection(LockCollectionName),
	}
}

// EnsureLockIndexes creates the TTL index that reaps locks left behind by a
// crashed process once expires_at passes.
func EnsureLockIndexes(ctx context.Context, cfg *config.Config) error {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	_, err := db.Collection(LockCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "expires_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0),
	})
	if err != nil {
		return fmt.Errorf("failed to create lock TTL index: %w", err)
	}
	return nil
}

func (r *mongoRoomLockRepository) Acquire(ctx context.Context, lock *model.RoomLock) error {
	lock.CreatedAt = time.Now()

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return bookingserrors.ErrLockHeld
		}
		return err
	}

	return nil
}

func (r *mongoRoomLockRepository) Release(ctx context.Context, lockID string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID})
	return err
}
