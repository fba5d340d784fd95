package booking

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound     = errors.New("booking session not found or expired")
	ErrSubmitInFlight      = errors.New("booking submission already in progress")
	ErrBookingNotFound     = errors.New("booking not found")
	ErrNotCancellable      = errors.New("only booked reservations can be cancelled")
	ErrInvalidStatusFilter = errors.New("status filter must be all, completed or cancelled")
)

// Submit sequence steps, in execution order.
const (
	StepFindVehicle   = "find_vehicle"
	StepCreateVehicle = "create_vehicle"
	StepCreateBooking = "create_booking"
	StepUpdateSlot    = "update_slot"
)

// SubmitError reports which write of the submit sequence failed.
type SubmitError struct {
	Step string
	Err  error
	// Pending is true when some compensations were queued for reconciliation.
	Pending bool
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("booking submit failed at %s: %v", e.Step, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// FetchError wraps a failed read of areas or slots.
type FetchError struct {
	What string
	Err  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.What, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }
