package handlers

import (
	"errors"
	"net/http"

	"parkslot/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HistoryHandler serves the active and past bookings pages.
type HistoryHandler struct {
	HistorySvc booking.BookingHistoryService
}

func NewHistoryHandler(svc booking.BookingHistoryService) *HistoryHandler {
	return &HistoryHandler{HistorySvc: svc}
}

// ListActive handles GET /api/bookings/active?q=.
func (h *HistoryHandler) ListActive(c *gin.Context) {
	bookings, err := h.HistorySvc.ListActive(c.Request.Context(), c.Query("q"))
	if err != nil {
		getLogger(c).Error("ListActive: failed to fetch bookings", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"bookings": []interface{}{}, "message": "Failed to load bookings"})
		return
	}
	resp := gin.H{"bookings": bookings}
	if len(bookings) == 0 {
		resp["emptyMessage"] = "No active bookings"
	}
	c.JSON(http.StatusOK, resp)
}

// ListPast handles GET /api/bookings/past?q=&status=.
func (h *HistoryHandler) ListPast(c *gin.Context) {
	past, err := h.HistorySvc.ListPast(c.Request.Context(), c.Query("q"), c.Query("status"))
	if errors.Is(err, booking.ErrInvalidStatusFilter) {
		respondError(c, err)
		return
	}
	if err != nil {
		getLogger(c).Error("ListPast: failed to fetch bookings", zap.Error(err))
		c.JSON(http.StatusOK, gin.H{"bookings": []interface{}{}, "message": "Failed to load bookings"})
		return
	}
	resp := gin.H{"bookings": past}
	if len(past) == 0 {
		resp["emptyMessage"] = "No past bookings"
	}
	c.JSON(http.StatusOK, resp)
}

// CancelBooking handles POST /api/bookings/:bookingID/cancel.
func (h *HistoryHandler) CancelBooking(c *gin.Context) {
	past, err := h.HistorySvc.CancelBooking(c.Request.Context(), c.Param("bookingID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled", "booking": past})
}
