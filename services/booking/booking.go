package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	parkingRepo "parkslot/database/repository/parking"
	"parkslot/metrics"
	"parkslot/models"
	"parkslot/services/wizard"
	"parkslot/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewBookingSessionService wires the session service with the global logger.
func NewBookingSessionService(gateway parkingRepo.WizardGateway, store SessionStore, reconciler ReconcileEnqueuer) *DefaultBookingSessionService {
	return &DefaultBookingSessionService{
		Gateway:    gateway,
		Store:      store,
		Reconciler: reconciler,
		Logger:     utils.GetLogger(),
		Now:        time.Now,
	}
}

func (s *DefaultBookingSessionService) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// StartSession opens a fresh wizard on the area step.
func (s *DefaultBookingSessionService) StartSession(ctx context.Context, userID string) (*SessionView, error) {
	m := s.newMachine()
	state, draft := m.Snapshot()
	now := s.now().UTC()
	session := models.BookingSession{
		SessionID: uuid.New().String(),
		UserID:    userID,
		State:     state,
		Draft:     draft,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Store.Save(ctx, session); err != nil {
		s.Logger.Error("Failed to store booking session", zap.String("userID", userID), zap.Error(err))
		return nil, err
	}
	s.Logger.Info("Booking session started", zap.String("sessionID", session.SessionID), zap.String("userID", userID))
	return s.buildView(ctx, &session, m), nil
}

// GetSession returns the session as the owner last left it.
func (s *DefaultBookingSessionService) GetSession(ctx context.Context, userID, sessionID string) (*SessionView, error) {
	session, m, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, session, m), nil
}

func (s *DefaultBookingSessionService) SelectArea(ctx context.Context, userID, sessionID, areaID string) (*SessionView, error) {
	return s.mutate(ctx, userID, sessionID, func(m *wizard.Machine) error {
		return m.SelectArea(areaID)
	})
}

func (s *DefaultBookingSessionService) SelectSlot(ctx context.Context, userID, sessionID, slotID string) (*SessionView, error) {
	return s.mutate(ctx, userID, sessionID, func(m *wizard.Machine) error {
		return m.SelectSlot(slotID)
	})
}

// ScheduleRequest carries the step-3 inputs. Either field may be omitted to
// change only the other one.
type ScheduleRequest struct {
	BookingType models.BookingType
	EntryTime   *time.Time
	ExitTime    *time.Time
}

// SelectSchedule applies the entry selection first, then the exit time, so a
// single call can set both.
func (s *DefaultBookingSessionService) SelectSchedule(ctx context.Context, userID, sessionID string, req ScheduleRequest) (*SessionView, error) {
	return s.mutate(ctx, userID, sessionID, func(m *wizard.Machine) error {
		if req.EntryTime != nil || req.BookingType == models.BookingImmediate {
			var entry time.Time
			if req.EntryTime != nil {
				entry = *req.EntryTime
			}
			if err := m.SelectEntry(entry, req.BookingType); err != nil {
				return err
			}
		}
		if req.ExitTime != nil {
			return m.SelectExitTime(*req.ExitTime)
		}
		return nil
	})
}

func (s *DefaultBookingSessionService) SetDetails(ctx context.Context, userID, sessionID string, details wizard.Details) (*SessionView, error) {
	return s.mutate(ctx, userID, sessionID, func(m *wizard.Machine) error {
		return m.SetDetails(details)
	})
}

// Next persists the validation errors even when the guard rejects the move,
// so a later GetSession still highlights the missing fields.
func (s *DefaultBookingSessionService) Next(ctx context.Context, userID, sessionID string) (*SessionView, error) {
	return s.transition(ctx, userID, sessionID, wizard.EventNext, (*wizard.Machine).Next)
}

func (s *DefaultBookingSessionService) Back(ctx context.Context, userID, sessionID string) (*SessionView, error) {
	return s.transition(ctx, userID, sessionID, wizard.EventBack, (*wizard.Machine).Back)
}

// CancelSession discards the wizard and its draft.
func (s *DefaultBookingSessionService) CancelSession(ctx context.Context, userID, sessionID string) error {
	if _, _, err := s.load(ctx, userID, sessionID); err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		s.Logger.Error("Failed to delete booking session", zap.String("sessionID", sessionID), zap.Error(err))
		return err
	}
	s.Logger.Info("Booking session cancelled", zap.String("sessionID", sessionID))
	return nil
}

func (s *DefaultBookingSessionService) ListAreas(ctx context.Context) ([]models.Area, error) {
	areas, err := s.Gateway.ListAreas(ctx)
	if err != nil {
		return nil, &FetchError{What: "parking areas", Err: err}
	}
	return areas, nil
}

func (s *DefaultBookingSessionService) ListAvailableSlots(ctx context.Context, areaID string) ([]models.ParkingSlot, error) {
	slots, err := s.Gateway.ListAvailableSlots(ctx, areaID)
	if err != nil {
		return nil, &FetchError{What: "parking slots", Err: err}
	}
	return slots, nil
}

func (s *DefaultBookingSessionService) newMachine() *wizard.Machine {
	return wizard.New(wizard.WithClock(s.now))
}

// load fetches a session and rebuilds its wizard. Sessions of other users
// are reported as missing.
func (s *DefaultBookingSessionService) load(ctx context.Context, userID, sessionID string) (*models.BookingSession, *wizard.Machine, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, nil, ErrSessionNotFound
	}
	session, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			s.Logger.Error("Failed to load booking session", zap.String("sessionID", sessionID), zap.Error(err))
		}
		return nil, nil, err
	}
	if session.UserID != userID {
		s.Logger.Warn("Booking session accessed by another user",
			zap.String("sessionID", sessionID), zap.String("userID", userID))
		return nil, nil, ErrSessionNotFound
	}
	m, err := wizard.Restore(session.State, session.Draft, wizard.WithClock(s.now))
	if err != nil {
		return nil, nil, fmt.Errorf("corrupt booking session %s: %w", sessionID, err)
	}
	return session, m, nil
}

func (s *DefaultBookingSessionService) save(ctx context.Context, session *models.BookingSession, m *wizard.Machine) error {
	session.State, session.Draft = m.Snapshot()
	session.UpdatedAt = s.now().UTC()
	if err := s.Store.Save(ctx, *session); err != nil {
		s.Logger.Error("Failed to store booking session", zap.String("sessionID", session.SessionID), zap.Error(err))
		return err
	}
	return nil
}

// mutate applies a field change. A rejected change leaves the stored session untouched.
func (s *DefaultBookingSessionService) mutate(ctx context.Context, userID, sessionID string, fn func(*wizard.Machine) error) (*SessionView, error) {
	session, m, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := fn(m); err != nil {
		return nil, err
	}
	if err := s.save(ctx, session, m); err != nil {
		return nil, err
	}
	return s.buildView(ctx, session, m), nil
}

func (s *DefaultBookingSessionService) transition(ctx context.Context, userID, sessionID string, ev wizard.Event, fire func(*wizard.Machine) error) (*SessionView, error) {
	session, m, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	fireErr := fire(m)
	metrics.IncWizardTransition(string(ev), outcomeOf(fireErr))

	var verr *wizard.ValidationError
	if fireErr != nil && !errors.As(fireErr, &verr) {
		return nil, fireErr
	}
	if err := s.save(ctx, session, m); err != nil {
		return nil, err
	}
	view := s.buildView(ctx, session, m)
	if fireErr != nil {
		return view, fireErr
	}
	s.Logger.Debug("Wizard transition",
		zap.String("sessionID", sessionID), zap.String("event", string(ev)), zap.Stringer("step", m.Step()))
	return view, nil
}

func outcomeOf(err error) string {
	var verr *wizard.ValidationError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, wizard.ErrIllegalTransition):
		return "illegal"
	default:
		return "error"
	}
}
