package models

import "time"

const (
	BookingStatusBooked    = "booked"
	BookingStatusActive    = "active"
	BookingStatusCompleted = "completed"
	BookingStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// ActiveBookingStatuses are the statuses listed under active bookings.
var ActiveBookingStatuses = []string{BookingStatusBooked, BookingStatusActive}

// Booking represents a persisted parking booking.
type Booking struct {
	ID            string    `bson:"booking_id" json:"bookingId"`
	VehicleNumber string    `bson:"vehicle_number" json:"vehicleNumber"`
	SlotID        string    `bson:"slot_id" json:"slotId"`
	EntryTime     time.Time `bson:"entry_time" json:"entryTime"`
	ExitTime      time.Time `bson:"exit_time" json:"exitTime"`
	Status        string    `bson:"status" json:"status"`
	PaymentStatus string    `bson:"payment_status" json:"paymentStatus"`
	AmountPaid    int       `bson:"amount_paid" json:"amountPaid"`
	UserID        string    `bson:"user_id,omitempty" json:"userId,omitempty"`
	CreatedAt     time.Time `bson:"created_at" json:"createdAt"`
}

// PastBooking is the archived copy of a booking that left the active set.
type PastBooking struct {
	ID            string     `bson:"id" json:"id"`
	BookingID     string     `bson:"booking_id" json:"bookingId"`
	VehicleNumber string     `bson:"vehicle_number" json:"vehicleNumber"`
	SlotID        string     `bson:"slot_id" json:"slotId"`
	AreaName      string     `bson:"area_name" json:"areaName"`
	CustomerName  string     `bson:"customer_name" json:"customerName"`
	ContactNumber string     `bson:"contact_number" json:"contactNumber"`
	EntryTime     time.Time  `bson:"entry_time" json:"entryTime"`
	ExitTime      time.Time  `bson:"exit_time" json:"exitTime"`
	Status        string     `bson:"status" json:"status"`
	PaymentStatus string     `bson:"payment_status" json:"paymentStatus"`
	AmountPaid    int        `bson:"amount_paid" json:"amountPaid"`
	CancelledAt   *time.Time `bson:"cancelled_at,omitempty" json:"cancelledAt,omitempty"`
	CreatedAt     time.Time  `bson:"created_at" json:"createdAt"`
}
