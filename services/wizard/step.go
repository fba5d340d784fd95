package wizard

import "fmt"

// Step is a position in the booking wizard.
type Step int

const (
	StepArea Step = iota + 1
	StepSlot
	StepSchedule
	StepDetails
	StepConfirm
	// StepSubmitted is terminal; no event leaves it.
	StepSubmitted
)

var stepNames = map[Step]string{
	StepArea:      "area",
	StepSlot:      "slot",
	StepSchedule:  "schedule",
	StepDetails:   "details",
	StepConfirm:   "confirm",
	StepSubmitted: "submitted",
}

func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return fmt.Sprintf("step(%d)", int(s))
}

func (s Step) valid() bool {
	return s >= StepArea && s <= StepSubmitted
}

// Event drives a transition between steps.
type Event string

const (
	EventNext   Event = "next"
	EventBack   Event = "back"
	EventSubmit Event = "submit"
)
