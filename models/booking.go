package models

import "time"

// BookingStatus is the closed set of lifecycle states for a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

// ParseBookingStatus maps a raw string onto the status enum.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch BookingStatus(s) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return BookingStatus(s), true
	}
	return "", false
}

// Booking represents one reservation between a provider and a customer.
type Booking struct {
	ID             string        `bson:"id" json:"id"`
	ProviderUserID string        `bson:"provider_user_id" json:"providerUserId"`
	CustomerUserID string        `bson:"customer_user_id" json:"customerUserId"`
	StartTime      time.Time     `bson:"start_time" json:"startTime"`
	EndTime        time.Time     `bson:"end_time" json:"endTime"`
	Status         BookingStatus `bson:"status" json:"status"`
	IdempotencyKey string        `bson:"idempotency_key,omitempty" json:"idempotencyKey,omitempty"`
	CreatedAt      time.Time     `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time     `bson:"updated_at" json:"updatedAt"`
}
