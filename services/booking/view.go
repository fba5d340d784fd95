package booking

import (
	"context"
	"time"

	"parkslot/models"
	"parkslot/services/pricing"
	"parkslot/services/wizard"

	"go.uber.org/zap"
)

const (
	noAreasMessage      = "No parking areas available"
	noSlotsMessage      = "No available slots in this area"
	areasFailedMessage  = "Failed to load parking areas"
	slotsFailedMessage  = "Failed to load parking slots"
	areaNotChosenNotice = "Select a parking area first"
)

// ExitOption is one selectable exit time with its display strings.
type ExitOption struct {
	ExitTime     time.Time `json:"exitTime"`
	Display      string    `json:"display"`
	Price        int       `json:"price"`
	PriceDisplay string    `json:"priceDisplay"`
}

// Summary is what the confirmation step shows before submit.
type Summary struct {
	AreaID        string `json:"areaId"`
	SlotID        string `json:"slotId"`
	BookingType   string `json:"bookingType"`
	Entry         string `json:"entry"`
	Exit          string `json:"exit"`
	Price         string `json:"price"`
	VehicleNumber string `json:"vehicleNumber"`
	CustomerName  string `json:"customerName"`
	ContactNumber string `json:"contactNumber"`
}

// SessionView is the client-facing state of one wizard session.
type SessionView struct {
	SessionID        string               `json:"sessionId"`
	Step             int                  `json:"step"`
	StepName         string               `json:"stepName"`
	Draft            models.BookingDraft  `json:"draft"`
	ValidationErrors map[string]string    `json:"validationErrors,omitempty"`
	Areas            []models.Area        `json:"areas,omitempty"`
	Slots            []models.ParkingSlot `json:"slots,omitempty"`
	ExitOptions      []ExitOption         `json:"exitOptions,omitempty"`
	Summary          *Summary             `json:"summary,omitempty"`
	EmptyMessage     string               `json:"emptyMessage,omitempty"`
	Notice           string               `json:"notice,omitempty"`
	BookingID        string               `json:"bookingId,omitempty"`
}

// buildView attaches the data the current step needs. Lookup failures are
// logged and shown as a notice with an empty list.
func (s *DefaultBookingSessionService) buildView(ctx context.Context, session *models.BookingSession, m *wizard.Machine) *SessionView {
	draft := m.Draft()
	view := &SessionView{
		SessionID: session.SessionID,
		Step:      int(m.Step()),
		StepName:  m.Step().String(),
		Draft:     draft,
		BookingID: session.BookingID,
	}
	if errs := m.ValidationErrors(); len(errs) > 0 {
		view.ValidationErrors = make(map[string]string, len(errs))
		for f, missing := range errs {
			if missing {
				view.ValidationErrors[string(f)] = f.Message()
			}
		}
	}

	switch m.Step() {
	case wizard.StepArea:
		areas, err := s.Gateway.ListAreas(ctx)
		if err != nil {
			s.Logger.Error("Failed to fetch parking areas", zap.Error(err))
			view.Notice = areasFailedMessage
			view.Areas = []models.Area{}
			break
		}
		view.Areas = areas
		if len(areas) == 0 {
			view.EmptyMessage = noAreasMessage
		}
	case wizard.StepSlot:
		if draft.AreaID == "" {
			view.Notice = areaNotChosenNotice
			break
		}
		slots, err := s.Gateway.ListAvailableSlots(ctx, draft.AreaID)
		if err != nil {
			s.Logger.Error("Failed to fetch parking slots", zap.String("areaID", draft.AreaID), zap.Error(err))
			view.Notice = slotsFailedMessage
			view.Slots = []models.ParkingSlot{}
			break
		}
		view.Slots = slots
		if len(slots) == 0 {
			view.EmptyMessage = noSlotsMessage
		}
	case wizard.StepSchedule:
		view.ExitOptions = ExitOptionsFrom(m.ExitOptions())
	case wizard.StepConfirm:
		view.Summary = summarize(draft)
	}
	return view
}

// ExitOptionsFrom adds IST and rupee display strings to price quotes.
func ExitOptionsFrom(quotes []pricing.PriceQuote) []ExitOption {
	if len(quotes) == 0 {
		return nil
	}
	out := make([]ExitOption, len(quotes))
	for i, q := range quotes {
		out[i] = ExitOption{
			ExitTime:     q.ExitTime,
			Display:      pricing.FormatInIST(q.ExitTime),
			Price:        q.Price,
			PriceDisplay: pricing.FormatINR(q.Price),
		}
	}
	return out
}

func summarize(d models.BookingDraft) *Summary {
	sum := &Summary{
		AreaID:        d.AreaID,
		SlotID:        d.SlotID,
		BookingType:   string(d.BookingType),
		Price:         pricing.FormatINR(d.EstimatedPrice),
		VehicleNumber: d.VehicleNumber,
		CustomerName:  d.CustomerName,
		ContactNumber: d.ContactNumber,
	}
	if d.EntryTime != nil {
		sum.Entry = pricing.FormatInIST(*d.EntryTime)
	}
	if d.ExitTime != nil {
		sum.Exit = pricing.FormatInIST(*d.ExitTime)
	}
	return sum
}
