package booking

import (
	"time"

	"github.com/google/uuid"

	"slotly/utils"
)

const (
	minStartLead       = 5 * time.Minute
	maxStartHorizonMon = 6
	maxDuration        = 8 * time.Hour
	maxIdempotencyKey  = 255
)

// validateCreateInput checks the raw creation payload and collects every
// violation into one field-level issue list, so a bad payload reports all
// of its problems at once.
func (svc *DefaultBookingService) validateCreateInput(input CreateBookingInput) (startTime, endTime time.Time, issues []utils.FieldIssue) {
	if _, err := uuid.Parse(input.ProviderUserID); err != nil {
		issues = append(issues, utils.FieldIssue{
			Field:   "providerUserId",
			Message: "providerUserId must be a valid UUID",
		})
	}

	startTime, startOK := parseInstant(input.StartTime)
	if !startOK {
		issues = append(issues, utils.FieldIssue{
			Field:   "startTime",
			Message: "startTime must be a valid RFC 3339 timestamp with timezone",
		})
	}
	endTime, endOK := parseInstant(input.EndTime)
	if !endOK {
		issues = append(issues, utils.FieldIssue{
			Field:   "endTime",
			Message: "endTime must be a valid RFC 3339 timestamp with timezone",
		})
	}

	if startOK {
		now := svc.now()
		if !startTime.After(now) {
			issues = append(issues, utils.FieldIssue{
				Field:   "startTime",
				Message: "startTime must be in the future",
			})
		} else if startTime.Before(now.Add(minStartLead)) {
			issues = append(issues, utils.FieldIssue{
				Field:   "startTime",
				Message: "startTime must be at least 5 minutes from now",
			})
		}
		if startTime.After(now.AddDate(0, maxStartHorizonMon, 0)) {
			issues = append(issues, utils.FieldIssue{
				Field:   "startTime",
				Message: "startTime must be within 6 months",
			})
		}
	}

	if startOK && endOK {
		if !endTime.After(startTime) {
			issues = append(issues, utils.FieldIssue{
				Field:   "endTime",
				Message: "endTime must be after startTime",
			})
		} else if endTime.Sub(startTime) > maxDuration {
			issues = append(issues, utils.FieldIssue{
				Field:   "endTime",
				Message: "duration must be no more than 8 hours",
			})
		}
	}

	if len(input.IdempotencyKey) > maxIdempotencyKey {
		issues = append(issues, utils.FieldIssue{
			Field:   "idempotencyKey",
			Message: "idempotencyKey must be at most 255 characters",
		})
	}

	return startTime, endTime, issues
}

// parseInstant accepts an RFC 3339 timestamp; the layout itself requires an
// explicit timezone, so zoneless inputs fail here.
func parseInstant(value string) (time.Time, bool) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}
