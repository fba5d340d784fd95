package booking

import (
	"context"
	"fmt"
	"sync"
	"time"

	parkingRepo "parkslot/database/repository/parking"
	"parkslot/models"
)

// fakeGateway is an in-memory parking gateway that records every call.
type fakeGateway struct {
	mu       sync.Mutex
	calls    []string
	fail     map[string]error
	areas    []models.Area
	slots    map[string]*models.ParkingSlot
	vehicles map[string]models.Vehicle
	bookings map[string]models.Booking
	past     []models.PastBooking
	nextID   int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		fail:     map[string]error{},
		slots:    map[string]*models.ParkingSlot{},
		vehicles: map[string]models.Vehicle{},
		bookings: map[string]models.Booking{},
	}
}

func (g *fakeGateway) record(call string) error {
	g.calls = append(g.calls, call)
	return g.fail[call]
}

func (g *fakeGateway) Calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.calls...)
}

func (g *fakeGateway) ListAreas(context.Context) ([]models.Area, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("ListAreas"); err != nil {
		return nil, err
	}
	return append([]models.Area{}, g.areas...), nil
}

func (g *fakeGateway) ListAvailableSlots(_ context.Context, areaID string) ([]models.ParkingSlot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("ListAvailableSlots"); err != nil {
		return nil, err
	}
	out := []models.ParkingSlot{}
	for _, s := range g.slots {
		if s.AreaID == areaID && s.Status == models.SlotAvailable {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (g *fakeGateway) FindVehicle(_ context.Context, number string) (*models.Vehicle, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("FindVehicle"); err != nil {
		return nil, err
	}
	v, ok := g.vehicles[number]
	if !ok {
		return nil, parkingRepo.ErrNotFound
	}
	return &v, nil
}

func (g *fakeGateway) CreateVehicle(_ context.Context, v models.Vehicle) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("CreateVehicle"); err != nil {
		return err
	}
	g.vehicles[v.Number] = v
	return nil
}

func (g *fakeGateway) CreateBooking(_ context.Context, b models.Booking) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("CreateBooking"); err != nil {
		return "", err
	}
	g.nextID++
	b.ID = fmt.Sprintf("B%d", g.nextID)
	g.bookings[b.ID] = b
	return b.ID, nil
}

func (g *fakeGateway) UpdateSlotStatus(_ context.Context, slotID string, status models.SlotStatus) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("UpdateSlotStatus"); err != nil {
		return err
	}
	s, ok := g.slots[slotID]
	if !ok {
		return parkingRepo.ErrNotFound
	}
	s.Status = status
	return nil
}

func (g *fakeGateway) DeleteVehicle(_ context.Context, number string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("DeleteVehicle"); err != nil {
		return err
	}
	delete(g.vehicles, number)
	return nil
}

func (g *fakeGateway) DeleteBooking(_ context.Context, bookingID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("DeleteBooking"); err != nil {
		return err
	}
	delete(g.bookings, bookingID)
	return nil
}

func (g *fakeGateway) GetArea(_ context.Context, areaID string) (*models.Area, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("GetArea"); err != nil {
		return nil, err
	}
	for _, a := range g.areas {
		if a.ID == areaID {
			a := a
			return &a, nil
		}
	}
	return nil, parkingRepo.ErrNotFound
}

func (g *fakeGateway) GetSlot(_ context.Context, slotID string) (*models.ParkingSlot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("GetSlot"); err != nil {
		return nil, err
	}
	s, ok := g.slots[slotID]
	if !ok {
		return nil, parkingRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (g *fakeGateway) GetBooking(_ context.Context, bookingID string) (*models.Booking, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("GetBooking"); err != nil {
		return nil, err
	}
	b, ok := g.bookings[bookingID]
	if !ok {
		return nil, parkingRepo.ErrNotFound
	}
	return &b, nil
}

func (g *fakeGateway) ListBookingsByStatus(_ context.Context, statuses []string) ([]models.Booking, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("ListBookingsByStatus"); err != nil {
		return nil, err
	}
	out := []models.Booking{}
	for _, b := range g.bookings {
		for _, st := range statuses {
			if b.Status == st {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (g *fakeGateway) ListPastBookings(context.Context) ([]models.PastBooking, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("ListPastBookings"); err != nil {
		return nil, err
	}
	return append([]models.PastBooking{}, g.past...), nil
}

func (g *fakeGateway) ArchiveBooking(_ context.Context, past models.PastBooking) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := g.record("ArchiveBooking"); err != nil {
		return err
	}
	g.past = append(g.past, past)
	if s, ok := g.slots[past.SlotID]; ok {
		s.Status = models.SlotAvailable
	}
	delete(g.bookings, past.BookingID)
	return nil
}

// fakeStore keeps sessions in memory.
type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]models.BookingSession
	locks    map[string]string
	tokens   int
	saveErr  error
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: map[string]models.BookingSession{}, locks: map[string]string{}}
}

func (s *fakeStore) Save(_ context.Context, session models.BookingSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.sessions[session.SessionID] = session
	return nil
}

func (s *fakeStore) Load(_ context.Context, sessionID string) (*models.BookingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return &session, nil
}

func (s *fakeStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}

func (s *fakeStore) AcquireSubmitLock(_ context.Context, sessionID string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[sessionID] != "" {
		return "", false, nil
	}
	s.tokens++
	token := fmt.Sprintf("lock-%d", s.tokens)
	s.locks[sessionID] = token
	return token, true, nil
}

func (s *fakeStore) ReleaseSubmitLock(_ context.Context, sessionID, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.locks[sessionID] == token {
		delete(s.locks, sessionID)
	}
	return nil
}

type fakeEnqueuer struct {
	payloads []models.ReconcilePayload
	err      error
}

func (e *fakeEnqueuer) EnqueueReconcile(_ context.Context, p models.ReconcilePayload) error {
	if e.err != nil {
		return e.err
	}
	e.payloads = append(e.payloads, p)
	return nil
}

var testNow = time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)

func seededGateway() *fakeGateway {
	g := newFakeGateway()
	g.areas = []models.Area{{ID: "A", Name: "Central Mall"}, {ID: "B", Name: "Airport"}}
	g.slots["S1"] = &models.ParkingSlot{ID: "S1", AreaID: "A", Status: models.SlotAvailable}
	g.slots["S2"] = &models.ParkingSlot{ID: "S2", AreaID: "A", Status: models.SlotBooked}
	g.slots["S3"] = &models.ParkingSlot{ID: "S3", AreaID: "B", Status: models.SlotAvailable}
	return g
}
