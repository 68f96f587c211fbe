package bookingRepo

import (
	"context"
	"time"

	"slotly/models"
)

// ListQuery narrows and pages an ordered booking scan. Filters combine with
// the keyset cursor (AfterStartTime, AfterID) by logical AND; results are
// ordered by (start_time, id) ascending.
type ListQuery struct {
	ProviderUserID string
	CustomerUserID string
	Status         models.BookingStatus

	AfterStartTime time.Time
	AfterID        string

	Limit int64
}

// BookingRepository defines durable keyed storage for booking records.
type BookingRepository interface {
	// Insert stores a new booking. Returns ErrDuplicateIdempotencyKey when
	// the (provider_user_id, idempotency_key) uniqueness constraint fires.
	Insert(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by id; (nil, nil) when absent.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// GetByProviderAndIdempotencyKey retrieves the booking sharing the
	// provider-scoped idempotency key; (nil, nil) when absent.
	GetByProviderAndIdempotencyKey(ctx context.Context, providerUserID, key string) (*models.Booking, error)
	// UpdateStatusIfCurrent applies a compare-and-swap status update: the
	// document is modified only while its status still equals current.
	// Returns the updated booking, or (nil, nil) when no document matched.
	UpdateStatusIfCurrent(ctx context.Context, id string, current, next models.BookingStatus, updatedAt time.Time) (*models.Booking, error)
	// List runs an ordered range scan under the query's filters and cursor.
	List(ctx context.Context, query ListQuery) ([]models.Booking, error)
}
