package booking

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	bookingRepo "slotly/database/repository/booking"
	"slotly/models"
	"slotly/utils"
)

// CreateBooking creates a booking exactly once per (providerUserId,
// idempotencyKey) pair. A retried request with an identical payload returns
// the original record; reusing a key for a different time window is a
// conflict, never a silent overwrite.
func (svc *DefaultBookingService) CreateBooking(ctx context.Context, identity models.AuthUser, input CreateBookingInput) (*CreateBookingResult, error) {
	logger := utils.GetLogger()

	if identity.ActiveRole != models.RoleCustomer {
		return nil, utils.NewForbidden()
	}
	customerUserID := identity.Subject()

	startTime, endTime, issues := svc.validateCreateInput(input)
	if len(issues) > 0 {
		return nil, utils.NewBadRequest("Validation failed", issues...)
	}

	if input.ProviderUserID == customerUserID {
		logger.Warn("createBooking rejected: self-booking", zap.String("userId", customerUserID))
		return nil, utils.NewBadRequest("Bad request")
	}

	hasProvider, err := svc.Users.HasProviderProfile(ctx, input.ProviderUserID)
	if err != nil {
		return nil, err
	}
	if !hasProvider {
		logger.Warn("createBooking rejected: provider missing", zap.String("providerUserId", input.ProviderUserID))
		return nil, utils.NewBadRequest("Bad request")
	}

	hasCustomer, err := svc.Users.HasCustomerProfile(ctx, customerUserID)
	if err != nil {
		return nil, err
	}
	if !hasCustomer {
		logger.Warn("createBooking rejected: customer missing", zap.String("customerUserId", customerUserID))
		return nil, utils.NewBadRequest("Bad request")
	}

	if input.IdempotencyKey != "" {
		existing, err := svc.Repo.GetByProviderAndIdempotencyKey(ctx, input.ProviderUserID, input.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return svc.resolveIdempotentHit(existing, input.ProviderUserID, startTime, endTime)
		}
	}

	now := svc.now()
	created := &models.Booking{
		ID:             uuid.NewString(),
		ProviderUserID: input.ProviderUserID,
		CustomerUserID: customerUserID,
		StartTime:      startTime,
		EndTime:        endTime,
		Status:         models.BookingPending,
		IdempotencyKey: input.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := svc.Repo.Insert(ctx, created); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateIdempotencyKey) {
			// Lost the insert race: another request with the same key landed
			// first. Re-read and apply the same match-or-conflict rule.
			existing, readErr := svc.Repo.GetByProviderAndIdempotencyKey(ctx, input.ProviderUserID, input.IdempotencyKey)
			if readErr != nil {
				return nil, readErr
			}
			if existing == nil {
				return nil, utils.NewConflict("Idempotency key conflict")
			}
			return svc.resolveIdempotentHit(existing, input.ProviderUserID, startTime, endTime)
		}
		return nil, err
	}

	logger.Info("createBooking success", zap.String("bookingId", created.ID))
	return &CreateBookingResult{Booking: created, Created: true}, nil
}

// resolveIdempotentHit compares the stored booking against the retried
// payload. The idempotency key is payload-bound: provider and both instants
// must match exactly.
func (svc *DefaultBookingService) resolveIdempotentHit(existing *models.Booking, providerUserID string, startTime, endTime time.Time) (*CreateBookingResult, error) {
	if existing.ProviderUserID == providerUserID &&
		sameInstant(existing.StartTime, startTime) &&
		sameInstant(existing.EndTime, endTime) {
		utils.GetLogger().Info("createBooking idempotent hit", zap.String("bookingId", existing.ID))
		return &CreateBookingResult{Booking: existing, Created: false}, nil
	}
	utils.GetLogger().Warn("createBooking conflict: idempotency mismatch", zap.String("bookingId", existing.ID))
	return nil, utils.NewConflict("Idempotency key conflict")
}

// sameInstant compares two timestamps at millisecond granularity, the
// precision the store round-trips.
func sameInstant(a, b time.Time) bool {
	return a.Truncate(time.Millisecond).Equal(b.Truncate(time.Millisecond))
}
