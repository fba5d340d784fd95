package handlers

import (
	"errors"
	"net/http"

	"parkslot/services/booking"
	"parkslot/services/wizard"
	"parkslot/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service errors to HTTP responses.
func respondError(c *gin.Context, err error) {
	logger := getLogger(c)

	var verr *wizard.ValidationError
	var serr *booking.SubmitError
	var ferr *booking.FetchError

	switch {
	case errors.As(err, &verr):
		utils.JSONValidationError(c, "Please complete the required fields", verr.Messages())
	case errors.Is(err, wizard.ErrEntryInPast):
		utils.JSONValidationError(c, "Invalid entry date", map[string]string{string(wizard.FieldEntryTime): err.Error()})
	case errors.Is(err, wizard.ErrUnknownExitTime):
		utils.JSONValidationError(c, "Invalid exit time", map[string]string{string(wizard.FieldExitTime): err.Error()})
	case errors.Is(err, wizard.ErrBookingType), errors.Is(err, booking.ErrInvalidStatusFilter):
		utils.JSONError(c, http.StatusBadRequest, "Invalid request", err.Error())
	case errors.Is(err, booking.ErrSessionNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking session not found or expired", "")
	case errors.Is(err, booking.ErrBookingNotFound):
		utils.JSONError(c, http.StatusNotFound, "Booking not found", "")
	case errors.Is(err, booking.ErrSubmitInFlight):
		utils.JSONError(c, http.StatusConflict, "Booking is already being submitted", "")
	case errors.Is(err, wizard.ErrIllegalTransition), errors.Is(err, wizard.ErrWrongStep):
		utils.JSONError(c, http.StatusConflict, "Action not allowed on the current step", err.Error())
	case errors.Is(err, booking.ErrNotCancellable):
		utils.JSONError(c, http.StatusConflict, "Booking cannot be cancelled", err.Error())
	case errors.As(err, &serr):
		logger.Error("Booking submit failed", zap.String("step", serr.Step), zap.Error(serr.Err))
		utils.JSONError(c, http.StatusBadGateway, "Failed to create booking", serr.Error())
	case errors.As(err, &ferr):
		utils.JSONError(c, http.StatusBadGateway, "Failed to load "+ferr.What, ferr.Err.Error())
	default:
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", "")
	}
}
