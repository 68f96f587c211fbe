package booking

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"slotly/models"
	"slotly/utils"
)

// UpdateStatus advances a booking through its lifecycle. The transition
// policy decides against the freshly fetched state, and the write is a
// compare-and-swap on (id, current status): if the row changed underneath,
// the caller gets a retryable conflict rather than a silently re-decided
// transition.
func (svc *DefaultBookingService) UpdateStatus(ctx context.Context, identity models.AuthUser, id, requestedStatus string) (*models.Booking, error) {
	logger := utils.GetLogger()

	var issues []utils.FieldIssue
	if _, err := uuid.Parse(id); err != nil {
		issues = append(issues, utils.FieldIssue{
			Field:   "id",
			Message: "id must be a valid UUID",
		})
	}
	requested, ok := models.ParseBookingStatus(requestedStatus)
	if !ok {
		issues = append(issues, utils.FieldIssue{
			Field:   "status",
			Message: "status must be one of: pending, confirmed, cancelled, completed",
		})
	}
	if len(issues) > 0 {
		return nil, utils.NewBadRequest("Validation failed", issues...)
	}

	// Admins mutate bookings only through impersonation; the real admin
	// principal is read-only.
	if identity.HasRole(models.RoleAdmin) && !identity.IsImpersonating() {
		return nil, utils.NewForbidden()
	}

	b, err := svc.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		logger.Warn("updateStatus not found", zap.String("bookingId", id))
		return nil, utils.NewNotFound("Booking not found")
	}

	subject := identity.Subject()
	isProviderOwner := b.ProviderUserID == subject
	isCustomerOwner := b.CustomerUserID == subject
	if !isProviderOwner && !isCustomerOwner {
		return nil, utils.NewForbidden()
	}

	if policyErr := CheckTransition(TransitionInput{
		Current:         b.Status,
		Requested:       requested,
		ActiveRole:      identity.ActiveRole,
		IsProviderOwner: isProviderOwner,
		IsCustomerOwner: isCustomerOwner,
		IsImpersonating: identity.IsImpersonating(),
	}); policyErr != nil {
		return nil, policyErr
	}

	updated, err := svc.Repo.UpdateStatusIfCurrent(ctx, b.ID, b.Status, requested, svc.now())
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// Zero rows matched: either the booking vanished or its status
		// moved concurrently. Re-read to tell the two apart.
		current, err := svc.Repo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if current == nil {
			logger.Warn("updateStatus not found after conditional update", zap.String("bookingId", id))
			return nil, utils.NewNotFound("Booking not found")
		}
		logger.Warn("updateStatus conflict", zap.String("bookingId", id))
		return nil, utils.NewConflict("Status changed, retry")
	}

	logger.Info("updateStatus success",
		zap.String("bookingId", id),
		zap.String("status", string(requested)))
	return updated, nil
}
