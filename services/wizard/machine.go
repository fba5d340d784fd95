// Package wizard implements the five-step parking booking flow:
// area, slot, schedule, customer details and confirmation.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"parkslot/models"
	"parkslot/services/pricing"
)

type guard func(d models.BookingDraft) []Field

type transitionKey struct {
	from  Step
	event Event
}

type transition struct {
	guard guard
	to    Step
}

// transitions is the complete table; any (step, event) pair missing here is illegal.
var transitions = map[transitionKey]transition{
	{StepArea, EventNext}:     {guard: requireArea, to: StepSlot},
	{StepSlot, EventNext}:     {guard: requireSlot, to: StepSchedule},
	{StepSchedule, EventNext}: {guard: requireSchedule, to: StepDetails},
	{StepDetails, EventNext}:  {guard: requireDetails, to: StepConfirm},

	{StepSlot, EventBack}:     {to: StepArea},
	{StepSchedule, EventBack}: {to: StepSlot},
	{StepDetails, EventBack}:  {to: StepSchedule},
	{StepConfirm, EventBack}:  {to: StepDetails},

	{StepConfirm, EventSubmit}: {guard: requireDetails, to: StepSubmitted},
}

func requireArea(d models.BookingDraft) []Field {
	if d.AreaID == "" {
		return []Field{FieldArea}
	}
	return nil
}

func requireSlot(d models.BookingDraft) []Field {
	if d.SlotID == "" {
		return []Field{FieldSlot}
	}
	return nil
}

func requireSchedule(d models.BookingDraft) []Field {
	var missing []Field
	if d.EntryTime == nil {
		missing = append(missing, FieldEntryTime)
	}
	if d.ExitTime == nil {
		missing = append(missing, FieldExitTime)
	}
	return missing
}

func requireDetails(d models.BookingDraft) []Field {
	var missing []Field
	if strings.TrimSpace(d.VehicleNumber) == "" {
		missing = append(missing, FieldVehicleNumber)
	}
	if strings.TrimSpace(d.CustomerName) == "" {
		missing = append(missing, FieldCustomerName)
	}
	if strings.TrimSpace(d.ContactNumber) == "" {
		missing = append(missing, FieldContactNumber)
	}
	return missing
}

// Machine holds one wizard's step, draft and last validation result.
// It is not safe for concurrent use.
type Machine struct {
	step   Step
	draft  models.BookingDraft
	errors map[Field]bool
	now    func() time.Time
}

type Option func(*Machine)

// WithClock overrides the time source used for immediate bookings and
// past-date checks.
func WithClock(now func() time.Time) Option {
	return func(m *Machine) { m.now = now }
}

// New returns a wizard on the area step with an empty draft.
func New(opts ...Option) *Machine {
	m := &Machine{
		step:  StepArea,
		draft: models.BookingDraft{BookingType: models.BookingReserve},
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Restore rebuilds a wizard from a persisted snapshot.
func Restore(state models.WizardState, draft models.BookingDraft, opts ...Option) (*Machine, error) {
	step := Step(state.Step)
	if !step.valid() {
		return nil, fmt.Errorf("restore wizard: invalid step %d", state.Step)
	}
	m := New(opts...)
	m.step = step
	m.draft = draft
	for name, missing := range state.ValidationErrors {
		if missing {
			m.markMissing(Field(name))
		}
	}
	return m, nil
}

// Snapshot returns the persistable state and a copy of the draft.
func (m *Machine) Snapshot() (models.WizardState, models.BookingDraft) {
	state := models.WizardState{Step: int(m.step)}
	if len(m.errors) > 0 {
		state.ValidationErrors = make(map[string]bool, len(m.errors))
		for f, missing := range m.errors {
			state.ValidationErrors[string(f)] = missing
		}
	}
	return state, m.draft
}

func (m *Machine) Step() Step                 { return m.step }
func (m *Machine) Draft() models.BookingDraft { return m.draft }

// ValidationErrors reports the fields that blocked the last transition.
func (m *Machine) ValidationErrors() map[Field]bool {
	out := make(map[Field]bool, len(m.errors))
	for f, v := range m.errors {
		out[f] = v
	}
	return out
}

// Next advances one step when the current step's required fields are set.
func (m *Machine) Next() error {
	return m.fire(EventNext)
}

// Back returns to the previous step keeping every entered value.
func (m *Machine) Back() error {
	return m.fire(EventBack)
}

// SubmitFunc performs the external writes for a confirmed draft.
type SubmitFunc func(ctx context.Context, draft models.BookingDraft) error

// Submit re-validates the customer details and runs fn. The wizard reaches
// StepSubmitted and drops the draft only when fn succeeds; otherwise it stays
// on the confirmation step so the user can retry.
func (m *Machine) Submit(ctx context.Context, fn SubmitFunc) error {
	t, err := m.lookup(EventSubmit)
	if err != nil {
		return err
	}
	if err := m.check(t); err != nil {
		return err
	}
	if err := fn(ctx, m.draft); err != nil {
		return err
	}
	m.step = t.to
	m.draft = models.BookingDraft{}
	m.errors = nil
	return nil
}

func (m *Machine) fire(ev Event) error {
	t, err := m.lookup(ev)
	if err != nil {
		return err
	}
	if err := m.check(t); err != nil {
		return err
	}
	m.step = t.to
	m.errors = nil
	return nil
}

func (m *Machine) lookup(ev Event) (transition, error) {
	t, ok := transitions[transitionKey{from: m.step, event: ev}]
	if !ok {
		return transition{}, fmt.Errorf("%w: %s from step %s", ErrIllegalTransition, ev, m.step)
	}
	return t, nil
}

func (m *Machine) check(t transition) error {
	if t.guard == nil {
		return nil
	}
	missing := t.guard(m.draft)
	if len(missing) == 0 {
		return nil
	}
	m.errors = make(map[Field]bool, len(missing))
	for _, f := range missing {
		m.errors[f] = true
	}
	return &ValidationError{Step: m.step, Fields: missing}
}

func (m *Machine) requireStep(s Step) error {
	if m.step != s {
		return fmt.Errorf("%w: on step %s, need %s", ErrWrongStep, m.step, s)
	}
	return nil
}

func (m *Machine) markMissing(f Field) {
	if m.errors == nil {
		m.errors = make(map[Field]bool)
	}
	m.errors[f] = true
}

func (m *Machine) clearError(fields ...Field) {
	for _, f := range fields {
		delete(m.errors, f)
	}
}

// SelectArea picks the parking area. Changing it drops the chosen slot,
// since slots belong to an area.
func (m *Machine) SelectArea(areaID string) error {
	if err := m.requireStep(StepArea); err != nil {
		return err
	}
	areaID = strings.TrimSpace(areaID)
	if areaID != m.draft.AreaID {
		m.draft.SlotID = ""
	}
	m.draft.AreaID = areaID
	if areaID != "" {
		m.clearError(FieldArea)
	}
	return nil
}

func (m *Machine) SelectSlot(slotID string) error {
	if err := m.requireStep(StepSlot); err != nil {
		return err
	}
	m.draft.SlotID = strings.TrimSpace(slotID)
	if m.draft.SlotID != "" {
		m.clearError(FieldSlot)
	}
	return nil
}

// SelectEntry sets the entry time. Immediate bookings ignore entry and start
// now; reserve bookings may not start before today. A changed entry clears
// the exit time because exit options are relative to it.
func (m *Machine) SelectEntry(entry time.Time, kind models.BookingType) error {
	if err := m.requireStep(StepSchedule); err != nil {
		return err
	}
	now := m.now()
	switch kind {
	case models.BookingImmediate:
		entry = now.Truncate(time.Minute)
	case models.BookingReserve, "":
		kind = models.BookingReserve
		if entry.IsZero() {
			return &ValidationError{Step: m.step, Fields: []Field{FieldEntryTime}}
		}
		y, mo, d := now.In(entry.Location()).Date()
		if entry.Before(time.Date(y, mo, d, 0, 0, 0, 0, entry.Location())) {
			return ErrEntryInPast
		}
	default:
		return ErrBookingType
	}

	if m.draft.EntryTime == nil || !m.draft.EntryTime.Equal(entry) {
		m.draft.ExitTime = nil
		m.draft.EstimatedPrice = 0
	}
	m.draft.EntryTime = &entry
	m.draft.BookingType = kind
	m.clearError(FieldEntryTime)
	return nil
}

// ExitOptions lists the selectable exit times for the current entry time.
func (m *Machine) ExitOptions() []pricing.PriceQuote {
	if m.draft.EntryTime == nil {
		return nil
	}
	return pricing.GenerateExitTimeOptions(*m.draft.EntryTime, pricing.DefaultExitOptionCount)
}

// SelectExitTime accepts only one of ExitOptions and records its price.
func (m *Machine) SelectExitTime(exit time.Time) error {
	if err := m.requireStep(StepSchedule); err != nil {
		return err
	}
	if m.draft.EntryTime == nil {
		m.markMissing(FieldEntryTime)
		return &ValidationError{Step: m.step, Fields: []Field{FieldEntryTime}}
	}
	option, ok := pricing.FindOption(m.ExitOptions(), exit)
	if !ok {
		return ErrUnknownExitTime
	}
	exitTime := option.ExitTime
	m.draft.ExitTime = &exitTime
	m.draft.EstimatedPrice = option.Price
	m.clearError(FieldExitTime)
	return nil
}

// Details are the customer fields collected on the details step.
type Details struct {
	VehicleNumber string
	CustomerName  string
	ContactNumber string
}

func (m *Machine) SetDetails(d Details) error {
	if err := m.requireStep(StepDetails); err != nil {
		return err
	}
	m.draft.VehicleNumber = strings.TrimSpace(d.VehicleNumber)
	m.draft.CustomerName = strings.TrimSpace(d.CustomerName)
	m.draft.ContactNumber = strings.TrimSpace(d.ContactNumber)
	m.clearError(FieldVehicleNumber, FieldCustomerName, FieldContactNumber)
	for _, f := range requireDetails(m.draft) {
		m.markMissing(f)
	}
	return nil
}
