package booking

import (
	"context"
	"errors"
	"time"

	parkingRepo "parkslot/database/repository/parking"
	"parkslot/metrics"
	"parkslot/models"
	"parkslot/services/wizard"

	"go.uber.org/zap"
)

// Submit runs the booking writes for a confirmed wizard. Only one submit per
// session may run at a time. On success the session is removed; on failure it
// stays on the confirmation step so the user can retry.
func (s *DefaultBookingSessionService) Submit(ctx context.Context, userID, sessionID string) (*SessionView, error) {
	token, acquired, err := s.Store.AcquireSubmitLock(ctx, sessionID)
	if err != nil {
		s.Logger.Error("Failed to acquire submit lock", zap.String("sessionID", sessionID), zap.Error(err))
		return nil, err
	}
	if !acquired {
		s.Logger.Warn("Submit already in progress", zap.String("sessionID", sessionID))
		return nil, ErrSubmitInFlight
	}
	defer func() {
		if err := s.Store.ReleaseSubmitLock(context.WithoutCancel(ctx), sessionID, token); err != nil {
			s.Logger.Warn("Failed to release submit lock", zap.String("sessionID", sessionID), zap.Error(err))
		}
	}()

	// Read under the lock: a submit that finished in between has deleted the session.
	session, m, err := s.load(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	sg := &submitSaga{
		gateway:   s.Gateway,
		logger:    s.Logger.With(zap.String("sessionID", sessionID)),
		sessionID: sessionID,
		userID:    userID,
		now:       s.now().UTC(),
	}
	submitErr := m.Submit(ctx, sg.run)
	metrics.IncWizardTransition(string(wizard.EventSubmit), outcomeOf(submitErr))

	if submitErr != nil {
		var verr *wizard.ValidationError
		if !errors.As(submitErr, &verr) {
			metrics.IncBookingSubmitted("failed")
			if pending := sg.pending(); len(pending) > 0 {
				s.enqueueReconcile(ctx, sessionID, submitErr, pending)
			}
			return nil, submitErr
		}
		metrics.IncBookingSubmitted("invalid")
		if err := s.save(ctx, session, m); err != nil {
			return nil, err
		}
		return s.buildView(ctx, session, m), submitErr
	}

	metrics.IncBookingSubmitted("ok")
	session.BookingID = sg.bookingID
	if err := s.Store.Delete(context.WithoutCancel(ctx), sessionID); err != nil {
		// The booking exists; an orphaned session only lingers until its TTL.
		s.Logger.Warn("Failed to delete submitted session", zap.String("sessionID", sessionID), zap.Error(err))
	}
	s.Logger.Info("Booking submitted",
		zap.String("sessionID", sessionID),
		zap.String("bookingID", sg.bookingID),
		zap.String("userID", userID))
	return s.buildView(ctx, session, m), nil
}

func (s *DefaultBookingSessionService) enqueueReconcile(ctx context.Context, sessionID string, cause error, actions []models.ReconcileAction) {
	payload := models.ReconcilePayload{
		SessionID: sessionID,
		Reason:    cause.Error(),
		Actions:   actions,
		CreatedAt: s.now().UTC(),
	}
	if s.Reconciler == nil {
		s.Logger.Error("Compensations left unapplied, no reconciler configured",
			zap.String("sessionID", sessionID), zap.Any("actions", actions))
		return
	}
	if err := s.Reconciler.EnqueueReconcile(context.WithoutCancel(ctx), payload); err != nil {
		s.Logger.Error("Failed to enqueue reconciliation",
			zap.String("sessionID", sessionID), zap.Any("actions", actions), zap.Error(err))
		return
	}
	s.Logger.Warn("Reconciliation enqueued", zap.String("sessionID", sessionID), zap.Int("actions", len(actions)))
}

type compensation struct {
	action models.ReconcileAction
	undo   func(ctx context.Context) error
}

// submitSaga performs find-or-create vehicle, create booking and mark slot
// booked. Each completed write registers its undo.
type submitSaga struct {
	gateway   parkingRepo.WizardGateway
	logger    *zap.Logger
	sessionID string
	userID    string
	now       time.Time

	bookingID     string
	compensations []compensation
	failed        []models.ReconcileAction
}

func (sg *submitSaga) run(ctx context.Context, d models.BookingDraft) error {
	vehicle, err := sg.gateway.FindVehicle(ctx, d.VehicleNumber)
	if err != nil && !errors.Is(err, parkingRepo.ErrNotFound) {
		return sg.fail(ctx, StepFindVehicle, err)
	}
	if vehicle == nil {
		v := models.Vehicle{
			Number:        d.VehicleNumber,
			CustomerName:  d.CustomerName,
			ContactNumber: d.ContactNumber,
		}
		if err := sg.gateway.CreateVehicle(ctx, v); err != nil {
			return sg.fail(ctx, StepCreateVehicle, err)
		}
		sg.register(models.CompensateDeleteVehicle, v.Number, func(ctx context.Context) error {
			return sg.gateway.DeleteVehicle(ctx, v.Number)
		})
	}

	b := models.Booking{
		VehicleNumber: d.VehicleNumber,
		SlotID:        d.SlotID,
		Status:        models.BookingStatusBooked,
		PaymentStatus: models.PaymentStatusPending,
		AmountPaid:    d.EstimatedPrice,
		UserID:        sg.userID,
		CreatedAt:     sg.now,
	}
	if d.EntryTime != nil {
		b.EntryTime = *d.EntryTime
	}
	if d.ExitTime != nil {
		b.ExitTime = *d.ExitTime
	}
	bookingID, err := sg.gateway.CreateBooking(ctx, b)
	if err != nil {
		return sg.fail(ctx, StepCreateBooking, err)
	}
	sg.bookingID = bookingID
	sg.register(models.CompensateDeleteBooking, bookingID, func(ctx context.Context) error {
		return sg.gateway.DeleteBooking(ctx, bookingID)
	})

	if err := sg.gateway.UpdateSlotStatus(ctx, d.SlotID, models.SlotBooked); err != nil {
		return sg.fail(ctx, StepUpdateSlot, err)
	}
	return nil
}

func (sg *submitSaga) register(kind, ref string, undo func(context.Context) error) {
	sg.compensations = append(sg.compensations, compensation{
		action: models.ReconcileAction{Kind: kind, Ref: ref},
		undo:   undo,
	})
}

// fail undoes completed writes newest first and returns the original error.
// Undo failures are remembered for reconciliation.
func (sg *submitSaga) fail(ctx context.Context, step string, cause error) error {
	sg.logger.Error("Booking submit step failed", zap.String("step", step), zap.Error(cause))

	undoCtx := context.WithoutCancel(ctx)
	for i := len(sg.compensations) - 1; i >= 0; i-- {
		c := sg.compensations[i]
		err := c.undo(undoCtx)
		if err != nil && !errors.Is(err, parkingRepo.ErrNotFound) {
			sg.logger.Error("Compensation failed",
				zap.String("kind", c.action.Kind), zap.String("ref", c.action.Ref), zap.Error(err))
			metrics.IncCompensation(c.action.Kind, "failed")
			sg.failed = append(sg.failed, c.action)
			continue
		}
		sg.logger.Info("Compensation applied", zap.String("kind", c.action.Kind), zap.String("ref", c.action.Ref))
		metrics.IncCompensation(c.action.Kind, "ok")
	}
	sg.compensations = nil
	sg.bookingID = ""

	return &SubmitError{Step: step, Err: cause, Pending: len(sg.failed) > 0}
}

func (sg *submitSaga) pending() []models.ReconcileAction {
	return sg.failed
}
