package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the endpoint handlers the router mounts.
type HandlerBundle struct {
	// AuthMiddleware guards every /api route.
	AuthMiddleware gin.HandlerFunc

	// Parking catalogue.
	ListAreas gin.HandlerFunc
	ListSlots gin.HandlerFunc
	Quote     gin.HandlerFunc

	// Booking wizard.
	StartSession   gin.HandlerFunc
	GetSession     gin.HandlerFunc
	CancelSession  gin.HandlerFunc
	SelectArea     gin.HandlerFunc
	SelectSlot     gin.HandlerFunc
	SelectSchedule gin.HandlerFunc
	SetDetails     gin.HandlerFunc
	NextStep       gin.HandlerFunc
	PreviousStep   gin.HandlerFunc
	SubmitBooking  gin.HandlerFunc

	// Bookings pages.
	ListActiveBookings gin.HandlerFunc
	ListPastBookings   gin.HandlerFunc
	CancelBooking      gin.HandlerFunc
}

// NewHandlerBundle wires the booking and history handlers into a bundle.
func NewHandlerBundle(auth gin.HandlerFunc, bh *BookingHandler, hh *HistoryHandler) *HandlerBundle {
	return &HandlerBundle{
		AuthMiddleware: auth,

		ListAreas: bh.ListAreas,
		ListSlots: bh.ListSlots,
		Quote:     bh.Quote,

		StartSession:   bh.StartSession,
		GetSession:     bh.GetSession,
		CancelSession:  bh.CancelSession,
		SelectArea:     bh.SelectArea,
		SelectSlot:     bh.SelectSlot,
		SelectSchedule: bh.SelectSchedule,
		SetDetails:     bh.SetDetails,
		NextStep:       bh.Next,
		PreviousStep:   bh.Back,
		SubmitBooking:  bh.Submit,

		ListActiveBookings: hh.ListActive,
		ListPastBookings:   hh.ListPast,
		CancelBooking:      hh.CancelBooking,
	}
}
