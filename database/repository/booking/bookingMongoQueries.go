package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"slotly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// List runs an ordered range scan over bookings. When a cursor position is
// present the scan resumes strictly after (AfterStartTime, AfterID), which
// handles ties on start_time without skipping or duplicating rows.
func (r *MongoBookingRepo) List(ctx context.Context, query ListQuery) ([]models.Booking, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{}
	if query.ProviderUserID != "" {
		filter["provider_user_id"] = query.ProviderUserID
	}
	if query.CustomerUserID != "" {
		filter["customer_user_id"] = query.CustomerUserID
	}
	if query.Status != "" {
		filter["status"] = query.Status
	}
	if query.AfterID != "" {
		filter["$or"] = bson.A{
			bson.M{"start_time": bson.M{"$gt": query.AfterStartTime}},
			bson.M{"start_time": query.AfterStartTime, "id": bson.M{"$gt": query.AfterID}},
		}
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "start_time", Value: 1}, {Key: "id", Value: 1}})
	if query.Limit > 0 {
		opts = opts.SetLimit(query.Limit)
	}

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var b models.Booking
		if err := cursor.Decode(&b); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return bookings, nil
}
