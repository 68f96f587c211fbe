package booking

import (
	"context"

	"github.com/google/uuid"

	bookingRepo "slotly/database/repository/booking"
	"slotly/models"
	"slotly/utils"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// ListBookings runs a keyset-paginated scan over the identity's visible
// bookings, ordered by (startTime, id) ascending. Filters combine with the
// cursor by AND; a cursor is not bound to the filter set that produced it,
// so replaying it under a different filter set is the caller's discipline.
func (svc *DefaultBookingService) ListBookings(ctx context.Context, identity models.AuthUser, input ListBookingsInput) (*ListBookingsResult, error) {
	var issues []utils.FieldIssue

	limit := input.Limit
	if limit == 0 {
		limit = defaultPageLimit
	}
	if limit < 1 || limit > maxPageLimit {
		issues = append(issues, utils.FieldIssue{
			Field:   "limit",
			Message: "limit must be between 1 and 100",
		})
	}

	var status models.BookingStatus
	if input.Status != "" {
		parsed, ok := models.ParseBookingStatus(input.Status)
		if !ok {
			issues = append(issues, utils.FieldIssue{
				Field:   "status",
				Message: "status must be one of: pending, confirmed, cancelled, completed",
			})
		}
		status = parsed
	}

	if input.ProviderUserID != "" {
		if _, err := uuid.Parse(input.ProviderUserID); err != nil {
			issues = append(issues, utils.FieldIssue{
				Field:   "providerUserId",
				Message: "providerUserId must be a valid UUID",
			})
		}
	}
	if input.CustomerUserID != "" {
		if _, err := uuid.Parse(input.CustomerUserID); err != nil {
			issues = append(issues, utils.FieldIssue{
				Field:   "customerUserId",
				Message: "customerUserId must be a valid UUID",
			})
		}
	}

	query := bookingRepo.ListQuery{Status: status}
	if input.Cursor != "" {
		afterStart, afterID, err := DecodeCursor(input.Cursor)
		if err != nil {
			issues = append(issues, utils.FieldIssue{
				Field:   "cursor",
				Message: "cursor must be a valid continuation token",
			})
		} else {
			query.AfterStartTime = afterStart
			query.AfterID = afterID
		}
	}

	if len(issues) > 0 {
		return nil, utils.NewBadRequest("Validation failed", issues...)
	}

	scope, scopeErr := scopeList(identity, input.ProviderUserID, input.CustomerUserID)
	if scopeErr != nil {
		return nil, scopeErr
	}
	query.ProviderUserID = scope.ProviderUserID
	query.CustomerUserID = scope.CustomerUserID

	// Probe one row past the page to learn whether more remain.
	query.Limit = int64(limit) + 1
	rows, err := svc.Repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	hasMore := len(rows) > limit
	items := rows
	if hasMore {
		items = rows[:limit]
	}

	result := &ListBookingsResult{Items: items, HasMore: hasMore}
	if hasMore {
		// The cursor points at the last row of the returned page, not the
		// probe row.
		result.NextCursor = EncodeCursor(&items[len(items)-1])
	}
	return result, nil
}
