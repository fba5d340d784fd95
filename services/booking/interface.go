package booking

import (
	"context"
	"time"

	parkingRepo "parkslot/database/repository/parking"
	"parkslot/models"
	"parkslot/services/wizard"

	"go.uber.org/zap"
)

// BookingSessionService drives booking wizards held between HTTP calls.
type BookingSessionService interface {
	StartSession(ctx context.Context, userID string) (*SessionView, error)
	GetSession(ctx context.Context, userID, sessionID string) (*SessionView, error)
	SelectArea(ctx context.Context, userID, sessionID, areaID string) (*SessionView, error)
	SelectSlot(ctx context.Context, userID, sessionID, slotID string) (*SessionView, error)
	SelectSchedule(ctx context.Context, userID, sessionID string, req ScheduleRequest) (*SessionView, error)
	SetDetails(ctx context.Context, userID, sessionID string, details wizard.Details) (*SessionView, error)
	Next(ctx context.Context, userID, sessionID string) (*SessionView, error)
	Back(ctx context.Context, userID, sessionID string) (*SessionView, error)
	Submit(ctx context.Context, userID, sessionID string) (*SessionView, error)
	CancelSession(ctx context.Context, userID, sessionID string) error

	ListAreas(ctx context.Context) ([]models.Area, error)
	ListAvailableSlots(ctx context.Context, areaID string) ([]models.ParkingSlot, error)
}

// BookingHistoryService serves the active/past booking views and cancellation.
type BookingHistoryService interface {
	ListActive(ctx context.Context, search string) ([]models.Booking, error)
	ListPast(ctx context.Context, search, status string) ([]models.PastBooking, error)
	CancelBooking(ctx context.Context, bookingID string) (*models.PastBooking, error)
}

// SessionStore persists wizard sessions and guards submits against re-entry.
type SessionStore interface {
	Save(ctx context.Context, session models.BookingSession) error
	Load(ctx context.Context, sessionID string) (*models.BookingSession, error)
	Delete(ctx context.Context, sessionID string) error
	// AcquireSubmitLock returns an owner token when the lock was taken.
	AcquireSubmitLock(ctx context.Context, sessionID string) (token string, acquired bool, err error)
	// ReleaseSubmitLock drops the lock only while token still owns it.
	ReleaseSubmitLock(ctx context.Context, sessionID, token string) error
}

// ReconcileEnqueuer hands compensations that failed inline to a background worker.
type ReconcileEnqueuer interface {
	EnqueueReconcile(ctx context.Context, payload models.ReconcilePayload) error
}

// DefaultBookingSessionService implements BookingSessionService.
type DefaultBookingSessionService struct {
	Gateway    parkingRepo.WizardGateway
	Store      SessionStore
	Reconciler ReconcileEnqueuer
	Logger     *zap.Logger
	Now        func() time.Time
}

// DefaultBookingHistoryService implements BookingHistoryService.
type DefaultBookingHistoryService struct {
	Gateway parkingRepo.HistoryGateway
	Logger  *zap.Logger
	Now     func() time.Time
}
