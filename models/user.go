package models

import "time"

// User represents a platform account. Roles are stored denormalized on the
// user document; profile documents establish eligibility to appear on a
// booking as provider or customer.
type User struct {
	ID           string    `bson:"id" json:"id"`
	FirstName    string    `bson:"first_name" json:"firstName"`
	LastName     string    `bson:"last_name" json:"lastName"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Roles        []Role    `bson:"roles" json:"roles"`
	ActiveRole   Role      `bson:"active_role,omitempty" json:"activeRole,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// HasRole reports whether the role was granted to the user.
func (u User) HasRole(role Role) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// ProviderProfile marks a user as bookable in the provider position.
type ProviderProfile struct {
	UserID       string    `bson:"user_id" json:"userId"`
	BusinessName string    `bson:"business_name" json:"businessName"`
	CreatedAt    time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updatedAt"`
}

// CustomerProfile marks a user as bookable in the customer position.
type CustomerProfile struct {
	UserID    string    `bson:"user_id" json:"userId"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
