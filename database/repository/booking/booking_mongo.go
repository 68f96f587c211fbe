package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"slotly/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateIdempotencyKey is returned by Insert when another booking
// already holds the same (provider_user_id, idempotency_key) pair. Callers
// re-read by that pair and apply the match-or-conflict rule.
var ErrDuplicateIdempotencyKey = errors.New("duplicate idempotency key")

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a new instance of BookingRepository using MongoDB.
func NewMongoBookingRepo() BookingRepository {
	coll := database.DB().Collection("bookings")
	repo := &MongoBookingRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext bounds a caller context with a repository-level timeout.
func newContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries. The
// partial unique index on (provider_user_id, idempotency_key) backs the
// idempotent-creation protocol; documents without a key are exempt.
func (r *MongoBookingRepo) ensureIndexes() error {
	ctx, cancel := newContext(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "start_time", Value: 1}, {Key: "id", Value: 1}}},
		{Keys: bson.D{{Key: "provider_user_id", Value: 1}, {Key: "start_time", Value: 1}}},
		{Keys: bson.D{{Key: "customer_user_id", Value: 1}, {Key: "start_time", Value: 1}}},
		{
			Keys: bson.D{{Key: "provider_user_id", Value: 1}, {Key: "idempotency_key", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"idempotency_key": bson.M{"$type": "string"}}),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
