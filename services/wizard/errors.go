package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrIllegalTransition = errors.New("illegal wizard transition")
	ErrWrongStep         = errors.New("field cannot be changed on the current step")
	ErrUnknownExitTime   = errors.New("exit time is not one of the offered options")
	ErrEntryInPast       = errors.New("entry date cannot be in the past")
	ErrBookingType       = errors.New("booking type must be immediate or reserve")
)

// Field names a draft field that a step requires.
type Field string

const (
	FieldArea          Field = "areaId"
	FieldSlot          Field = "slotId"
	FieldEntryTime     Field = "entryTime"
	FieldExitTime      Field = "exitTime"
	FieldVehicleNumber Field = "vehicleNumber"
	FieldCustomerName  Field = "customerName"
	FieldContactNumber Field = "contactNumber"
)

var fieldMessages = map[Field]string{
	FieldArea:          "Please select a parking area",
	FieldSlot:          "Please select a parking slot",
	FieldEntryTime:     "Please select an entry date",
	FieldExitTime:      "Please select an exit time",
	FieldVehicleNumber: "Vehicle number is required",
	FieldCustomerName:  "Your name is required",
	FieldContactNumber: "Contact number is required",
}

// Message is the user-facing text for a missing field.
func (f Field) Message() string {
	if msg, ok := fieldMessages[f]; ok {
		return msg
	}
	return string(f) + " is required"
}

// ValidationError lists the required fields missing on a step.
type ValidationError struct {
	Step   Step
	Fields []Field
}

func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = string(f)
	}
	sort.Strings(names)
	return fmt.Sprintf("step %s: missing %s", e.Step, strings.Join(names, ", "))
}

// Messages maps each missing field to its user-facing message.
func (e *ValidationError) Messages() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		out[string(f)] = f.Message()
	}
	return out
}
