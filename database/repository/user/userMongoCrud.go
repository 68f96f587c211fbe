package userRepo

import (
	"context"
	"fmt"
	"time"

	"slotly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Create inserts a new user document.
func (r *MongoUserRepo) Create(ctx context.Context, user *models.User) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by its unique ID.
func (r *MongoUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", id, err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by its email address.
func (r *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	var user models.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	return &user, nil
}

// UpdateRoles replaces the granted role set and the active role.
func (r *MongoUserRepo) UpdateRoles(ctx context.Context, id string, roles []models.Role, activeRole models.Role) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"roles":       roles,
		"active_role": activeRole,
		"updated_at":  time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update roles for user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", id)
	}
	return nil
}

// UpdateActiveRole changes the currently worn role.
func (r *MongoUserRepo) UpdateActiveRole(ctx context.Context, id string, activeRole models.Role) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"active_role": activeRole, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update active role for user %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("user with id %s not found", id)
	}
	return nil
}

// CreateProviderProfile marks the user bookable as a provider.
func (r *MongoUserRepo) CreateProviderProfile(ctx context.Context, profile *models.ProviderProfile) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if _, err := r.providerColl.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to create provider profile: %w", err)
	}
	return nil
}

// CreateCustomerProfile marks the user bookable as a customer.
func (r *MongoUserRepo) CreateCustomerProfile(ctx context.Context, profile *models.CustomerProfile) error {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	now := time.Now()
	profile.CreatedAt = now
	profile.UpdatedAt = now

	if _, err := r.customerColl.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil
		}
		return fmt.Errorf("failed to create customer profile: %w", err)
	}
	return nil
}

// HasProviderProfile reports whether a provider profile exists for the user.
func (r *MongoUserRepo) HasProviderProfile(ctx context.Context, userID string) (bool, error) {
	return r.profileExists(ctx, r.providerColl, userID)
}

// HasCustomerProfile reports whether a customer profile exists for the user.
func (r *MongoUserRepo) HasCustomerProfile(ctx context.Context, userID string) (bool, error) {
	return r.profileExists(ctx, r.customerColl, userID)
}

func (r *MongoUserRepo) profileExists(ctx context.Context, coll *mongo.Collection, userID string) (bool, error) {
	ctx, cancel := newContext(ctx, 5*time.Second)
	defer cancel()

	count, err := coll.CountDocuments(ctx, bson.M{"user_id": userID})
	if err != nil {
		return false, fmt.Errorf("failed to check profile for user %s: %w", userID, err)
	}
	return count > 0, nil
}
