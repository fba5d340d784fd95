package routes

import (
	"parkslot/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBookingRoutes registers the booking wizard endpoints.
func RegisterBookingRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle) {
	booking := api.Group("/booking")
	{
		booking.POST("/session", hb.StartSession)
		booking.GET("/session/:sessionID", hb.GetSession)
		booking.DELETE("/session/:sessionID", hb.CancelSession)

		booking.PUT("/session/:sessionID/area", hb.SelectArea)
		booking.PUT("/session/:sessionID/slot", hb.SelectSlot)
		booking.PUT("/session/:sessionID/schedule", hb.SelectSchedule)
		booking.PUT("/session/:sessionID/details", hb.SetDetails)

		booking.POST("/session/:sessionID/next", hb.NextStep)
		booking.POST("/session/:sessionID/back", hb.PreviousStep)
		booking.POST("/session/:sessionID/submit", hb.SubmitBooking)
	}
}
