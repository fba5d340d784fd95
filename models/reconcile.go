package models

import "time"

const (
	CompensateDeleteVehicle = "delete_vehicle"
	CompensateDeleteBooking = "delete_booking"
)

// ReconcileAction is one compensating write that could not be applied inline.
type ReconcileAction struct {
	Kind string `json:"kind"`
	Ref  string `json:"ref"`
}

// ReconcilePayload is queued when a failed submit leaves partial writes behind.
type ReconcilePayload struct {
	SessionID string            `json:"sessionId"`
	Reason    string            `json:"reason"`
	Actions   []ReconcileAction `json:"actions"`
	CreatedAt time.Time         `json:"createdAt"`
}
