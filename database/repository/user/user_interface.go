package userRepo

import (
	"context"

	"slotly/models"
)

// UserRepository defines data access for users and the provider/customer
// profiles that make a user eligible to appear on a booking.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID; (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address; (nil, nil) when absent.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateRoles replaces the granted role set and active role.
	UpdateRoles(ctx context.Context, id string, roles []models.Role, activeRole models.Role) error
	// UpdateActiveRole changes only the currently worn role.
	UpdateActiveRole(ctx context.Context, id string, activeRole models.Role) error

	// CreateProviderProfile marks the user bookable as a provider.
	CreateProviderProfile(ctx context.Context, profile *models.ProviderProfile) error
	// CreateCustomerProfile marks the user bookable as a customer.
	CreateCustomerProfile(ctx context.Context, profile *models.CustomerProfile) error
	// HasProviderProfile reports whether a provider profile exists.
	HasProviderProfile(ctx context.Context, userID string) (bool, error)
	// HasCustomerProfile reports whether a customer profile exists.
	HasCustomerProfile(ctx context.Context, userID string) (bool, error)
}
