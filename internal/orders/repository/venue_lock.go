package repository

import (
	"context"
	"fmt"
	"time"

	orderserrors "vowsuite/internal/orders/errors"
	"vowsuite/pkg/config"
	"vowsuite/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	VenueLockCollectionName = "Venue_locks"
)

// VenueLockRepository implements an advisory lock as a unique document per
// venue. Acquire succeeds by inserting; a duplicate key means another
// request holds the lock. Stale locks are reaped by the TTL index on
// expires_at, so Release is best effort.
type VenueLockRepository interface {
	Acquire(ctx context.Context, venueID string, ttl time.Duration) error
	Release(ctx context.Context, venueID string) error
}

type mongoVenueLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoVenueLockRepository(cfg *config.Config) VenueLockRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoVenueLockRepository{
		cfg:        cfg,
		collection: db.Collection(VenueLockCollectionName),
	}
}

func lockID(venueID string) string {
	return "venue_lock_" + venueID
}

func (r *mongoVenueLockRepository) Acquire(ctx context.Context, venueID string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	lock := model.VenueLock{
		ID:        lockID(venueID),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	}

	_, err := r.collection.InsertOne(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return orderserrors.ErrLockHeld
		}
		return fmt.Errorf("failed to acquire venue lock: %w", err)
	}

	return nil
}

func (r *mongoVenueLockRepository) Release(ctx context.Context, venueID string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": lockID(venueID)})
	if err != nil {
		return fmt.Errorf("failed to release venue lock: %w", err)
	}

	return nil
}
