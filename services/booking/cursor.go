package booking

import (
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"slotly/models"
)

var errInvalidCursor = errors.New("invalid cursor")

// EncodeCursor renders the continuation token for a page ending at the given
// booking. The token is the url-safe base64 encoding of
// "<RFC 3339 start time>|<booking id>".
func EncodeCursor(b *models.Booking) string {
	payload := b.StartTime.UTC().Format(time.RFC3339Nano) + "|" + b.ID
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}

// DecodeCursor parses a continuation token back into its (startTime, id)
// position. The token must round-trip byte-for-byte through the base64
// transform and its payload must be a valid timestamp and a valid UUID;
// every failure collapses into the same invalid-cursor error.
func DecodeCursor(token string) (time.Time, string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(token), "=")
	raw, err := base64.RawURLEncoding.DecodeString(trimmed)
	if err != nil {
		return time.Time{}, "", errInvalidCursor
	}
	if base64.RawURLEncoding.EncodeToString(raw) != trimmed {
		return time.Time{}, "", errInvalidCursor
	}

	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return time.Time{}, "", errInvalidCursor
	}

	startTime, err := time.Parse(time.RFC3339Nano, parts[0])
	if err != nil {
		return time.Time{}, "", errInvalidCursor
	}
	id, err := uuid.Parse(parts[1])
	if err != nil {
		return time.Time{}, "", errInvalidCursor
	}
	return startTime, id.String(), nil
}
