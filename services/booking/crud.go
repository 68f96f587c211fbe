package booking

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slotly/models"
	"slotly/utils"
)

// GetBooking fetches one booking and verifies the identity may see it.
func (svc *DefaultBookingService) GetBooking(ctx context.Context, identity models.AuthUser, id string) (*models.Booking, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, utils.NewBadRequest("Validation failed", utils.FieldIssue{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}

	b, err := svc.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		utils.GetLogger().Warn("getBooking not found", zap.String("bookingId", id))
		return nil, utils.NewNotFound("Booking not found")
	}
	if scopeErr := canReadBooking(identity, b); scopeErr != nil {
		return nil, scopeErr
	}
	return b, nil
}
