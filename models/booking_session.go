package models

import "time"

type BookingType string

const (
	BookingImmediate BookingType = "immediate"
	BookingReserve   BookingType = "reserve"
)

// BookingDraft is the in-progress booking data collected by the wizard.
type BookingDraft struct {
	AreaID         string      `json:"areaId,omitempty"`
	SlotID         string      `json:"slotId,omitempty"`
	EntryTime      *time.Time  `json:"entryTime,omitempty"`
	ExitTime       *time.Time  `json:"exitTime,omitempty"`
	EstimatedPrice int         `json:"estimatedPrice,omitempty"`
	VehicleNumber  string      `json:"vehicleNumber,omitempty"`
	CustomerName   string      `json:"customerName,omitempty"`
	ContactNumber  string      `json:"contactNumber,omitempty"`
	BookingType    BookingType `json:"bookingType,omitempty"`
}

// WizardState is the persisted position of a wizard.
type WizardState struct {
	Step             int             `json:"step"`
	ValidationErrors map[string]bool `json:"validationErrors,omitempty"`
}

// BookingSession holds a wizard between HTTP calls.
type BookingSession struct {
	SessionID string       `json:"sessionId"`
	UserID    string       `json:"userId"`
	State     WizardState  `json:"state"`
	Draft     BookingDraft `json:"draft"`
	BookingID string       `json:"bookingId,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}
