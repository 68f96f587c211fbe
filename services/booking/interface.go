package booking

import (
	"context"
	"time"

	bookingRepo "slotly/database/repository/booking"
	userRepo "slotly/database/repository/user"
	"slotly/models"
)

// CreateBookingInput carries the raw creation payload. Times arrive as
// RFC 3339 strings and are validated before any store access.
type CreateBookingInput struct {
	ProviderUserID string `json:"providerUserId"`
	StartTime      string `json:"startTime"`
	EndTime        string `json:"endTime"`
	IdempotencyKey string `json:"idempotencyKey,omitempty"`
}

// CreateBookingResult distinguishes a fresh insert from an idempotent replay.
type CreateBookingResult struct {
	Booking *models.Booking
	Created bool
}

// ListBookingsInput carries raw list parameters. Limit zero means "use the
// default"; anything outside [1, 100] is a validation error, not clamped.
type ListBookingsInput struct {
	ProviderUserID string
	CustomerUserID string
	Status         string
	Cursor         string
	Limit          int
}

// ListBookingsResult is one page of a keyset-paginated scan.
type ListBookingsResult struct {
	Items      []models.Booking
	NextCursor string
	HasMore    bool
}

// BookingService exposes the booking lifecycle to the HTTP layer. Every
// operation takes the resolved acting identity; authorization happens here,
// not in handlers.
type BookingService interface {
	CreateBooking(ctx context.Context, identity models.AuthUser, input CreateBookingInput) (*CreateBookingResult, error)
	GetBooking(ctx context.Context, identity models.AuthUser, id string) (*models.Booking, error)
	ListBookings(ctx context.Context, identity models.AuthUser, input ListBookingsInput) (*ListBookingsResult, error)
	UpdateStatus(ctx context.Context, identity models.AuthUser, id, requestedStatus string) (*models.Booking, error)
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Repo  bookingRepo.BookingRepository
	Users userRepo.UserRepository
	// Now is overridable for tests; defaults to time.Now.
	Now func() time.Time
}

func (svc *DefaultBookingService) now() time.Time {
	if svc.Now != nil {
		return svc.Now()
	}
	return time.Now()
}
