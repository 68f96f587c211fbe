package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotly/middleware"
	"slotly/models"
	"slotly/services/booking"
	"slotly/utils"
)

// BookingHandler exposes the booking lifecycle over HTTP.
type BookingHandler struct {
	Service booking.BookingService
	Logger  *zap.Logger
}

func NewBookingHandler(svc booking.BookingService, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Service: svc, Logger: logger}
}

// CreateBooking handles POST /api/bookings. A fresh insert answers 201; an
// idempotent replay of the same payload answers 200 with the original record.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Authentication required"})
		return
	}

	var input booking.CreateBookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, utils.NewBadRequest("Invalid request body"))
		return
	}

	result, err := h.Service.CreateBooking(c.Request.Context(), identity, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"data": result.Booking})
}

// GetBooking handles GET /api/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Authentication required"})
		return
	}

	b, err := h.Service.GetBooking(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": b})
}

// ListBookings handles GET /api/bookings with keyset pagination.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Authentication required"})
		return
	}

	input := booking.ListBookingsInput{
		ProviderUserID: c.Query("providerUserId"),
		CustomerUserID: c.Query("customerUserId"),
		Status:         c.Query("status"),
		Cursor:         c.Query("cursor"),
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondError(c, utils.NewBadRequest("Validation failed", utils.FieldIssue{
				Field:   "limit",
				Message: "limit must be an integer",
			}))
			return
		}
		input.Limit = limit
	}

	result, err := h.Service.ListBookings(c.Request.Context(), identity, input)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	var nextCursor interface{}
	if result.NextCursor != "" {
		nextCursor = result.NextCursor
	}
	items := result.Items
	if items == nil {
		items = []models.Booking{}
	}
	c.JSON(http.StatusOK, gin.H{
		"data":       items,
		"nextCursor": nextCursor,
		"hasMore":    result.HasMore,
	})
}

// UpdateStatus handles PATCH /api/bookings/:id/status.
func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	identity, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"code": "UNAUTHENTICATED", "message": "Authentication required"})
		return
	}

	var body struct {
		Status string `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, utils.NewBadRequest("Invalid request body"))
		return
	}

	updated, err := h.Service.UpdateStatus(c.Request.Context(), identity, c.Param("id"), body.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": updated})
}
