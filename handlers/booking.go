package handlers

import (
	"errors"
	"net/http"
	"time"

	"parkslot/models"
	"parkslot/services/booking"
	"parkslot/services/wizard"
	"parkslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the booking wizard and the parking catalogue.
type BookingHandler struct {
	BookingSvc booking.BookingSessionService
}

func NewBookingHandler(svc booking.BookingSessionService) *BookingHandler {
	return &BookingHandler{BookingSvc: svc}
}

// StartSession handles POST /api/booking/session.
func (h *BookingHandler) StartSession(c *gin.Context) {
	view, err := h.BookingSvc.StartSession(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// GetSession handles GET /api/booking/session/:sessionID.
func (h *BookingHandler) GetSession(c *gin.Context) {
	view, err := h.BookingSvc.GetSession(c.Request.Context(), currentUserID(c), c.Param("sessionID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// CancelSession handles DELETE /api/booking/session/:sessionID.
func (h *BookingHandler) CancelSession(c *gin.Context) {
	if err := h.BookingSvc.CancelSession(c.Request.Context(), currentUserID(c), c.Param("sessionID")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking session cancelled"})
}

// SelectArea handles PUT /api/booking/session/:sessionID/area.
func (h *BookingHandler) SelectArea(c *gin.Context) {
	var body struct {
		AreaID string `json:"areaId"`
	}
	if !bindJSON(c, &body) {
		return
	}
	view, err := h.BookingSvc.SelectArea(c.Request.Context(), currentUserID(c), c.Param("sessionID"), body.AreaID)
	h.reply(c, view, err)
}

// SelectSlot handles PUT /api/booking/session/:sessionID/slot.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	var body struct {
		SlotID string `json:"slotId"`
	}
	if !bindJSON(c, &body) {
		return
	}
	view, err := h.BookingSvc.SelectSlot(c.Request.Context(), currentUserID(c), c.Param("sessionID"), body.SlotID)
	h.reply(c, view, err)
}

// SelectSchedule handles PUT /api/booking/session/:sessionID/schedule.
func (h *BookingHandler) SelectSchedule(c *gin.Context) {
	var body struct {
		BookingType models.BookingType `json:"bookingType"`
		EntryTime   *time.Time         `json:"entryTime"`
		ExitTime    *time.Time         `json:"exitTime"`
	}
	if !bindJSON(c, &body) {
		return
	}
	req := booking.ScheduleRequest{
		BookingType: body.BookingType,
		EntryTime:   body.EntryTime,
		ExitTime:    body.ExitTime,
	}
	view, err := h.BookingSvc.SelectSchedule(c.Request.Context(), currentUserID(c), c.Param("sessionID"), req)
	h.reply(c, view, err)
}

// SetDetails handles PUT /api/booking/session/:sessionID/details.
func (h *BookingHandler) SetDetails(c *gin.Context) {
	var body struct {
		VehicleNumber string `json:"vehicleNumber"`
		CustomerName  string `json:"customerName"`
		ContactNumber string `json:"contactNumber"`
	}
	if !bindJSON(c, &body) {
		return
	}
	details := wizard.Details{
		VehicleNumber: body.VehicleNumber,
		CustomerName:  body.CustomerName,
		ContactNumber: body.ContactNumber,
	}
	view, err := h.BookingSvc.SetDetails(c.Request.Context(), currentUserID(c), c.Param("sessionID"), details)
	h.reply(c, view, err)
}

// Next handles POST /api/booking/session/:sessionID/next.
func (h *BookingHandler) Next(c *gin.Context) {
	view, err := h.BookingSvc.Next(c.Request.Context(), currentUserID(c), c.Param("sessionID"))
	h.reply(c, view, err)
}

// Back handles POST /api/booking/session/:sessionID/back.
func (h *BookingHandler) Back(c *gin.Context) {
	view, err := h.BookingSvc.Back(c.Request.Context(), currentUserID(c), c.Param("sessionID"))
	h.reply(c, view, err)
}

// Submit handles POST /api/booking/session/:sessionID/submit.
func (h *BookingHandler) Submit(c *gin.Context) {
	sessionID := c.Param("sessionID")
	view, err := h.BookingSvc.Submit(c.Request.Context(), currentUserID(c), sessionID)
	if err != nil {
		h.reply(c, view, err)
		return
	}
	getLogger(c).Info("Booking confirmed", zap.String("sessionID", sessionID), zap.String("bookingID", view.BookingID))
	c.JSON(http.StatusCreated, view)
}

// reply writes the session view, or the error. A rejected step move carries
// the view alongside the field messages.
func (h *BookingHandler) reply(c *gin.Context, view *booking.SessionView, err error) {
	if err == nil {
		c.JSON(http.StatusOK, view)
		return
	}
	var verr *wizard.ValidationError
	if view != nil && errors.As(err, &verr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message": "Please complete the required fields",
			"fields":  verr.Messages(),
			"session": view,
		})
		return
	}
	respondError(c, err)
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		getLogger(c).Debug("Invalid request body", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return false
	}
	return true
}
