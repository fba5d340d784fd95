package booking

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	parkingRepo "parkslot/database/repository/parking"
	"parkslot/metrics"
	"parkslot/models"
	"parkslot/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	StatusFilterAll       = "all"
	StatusFilterCompleted = "completed"
	StatusFilterCancelled = "cancelled"

	unknownValue = "Unknown"
)

func NewBookingHistoryService(gateway parkingRepo.HistoryGateway) *DefaultBookingHistoryService {
	return &DefaultBookingHistoryService{
		Gateway: gateway,
		Logger:  utils.GetLogger(),
		Now:     time.Now,
	}
}

// ListActive returns booked and active reservations, latest entry first,
// filtered by a case-insensitive search over vehicle, slot and status.
func (s *DefaultBookingHistoryService) ListActive(ctx context.Context, search string) ([]models.Booking, error) {
	bookings, err := s.Gateway.ListBookingsByStatus(ctx, models.ActiveBookingStatuses)
	if err != nil {
		s.Logger.Error("Failed to fetch active bookings", zap.Error(err))
		return nil, &FetchError{What: "active bookings", Err: err}
	}

	term := normalize(search)
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if matches(term, b.VehicleNumber, b.SlotID, b.Status) {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EntryTime.After(out[j].EntryTime)
	})
	return out, nil
}

// ListPast returns archived bookings, most recently archived first. status is one of
// all, completed or cancelled; empty means all.
func (s *DefaultBookingHistoryService) ListPast(ctx context.Context, search, status string) ([]models.PastBooking, error) {
	status = normalize(status)
	switch status {
	case "":
		status = StatusFilterAll
	case StatusFilterAll, StatusFilterCompleted, StatusFilterCancelled:
	default:
		return nil, ErrInvalidStatusFilter
	}

	past, err := s.Gateway.ListPastBookings(ctx)
	if err != nil {
		s.Logger.Error("Failed to fetch past bookings", zap.Error(err))
		return nil, &FetchError{What: "past bookings", Err: err}
	}

	term := normalize(search)
	out := make([]models.PastBooking, 0, len(past))
	for _, p := range past {
		if status != StatusFilterAll && !strings.EqualFold(p.Status, status) {
			continue
		}
		if matches(term, p.VehicleNumber, p.SlotID, p.Status, p.CustomerName, p.AreaName) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// CancelBooking archives a booked reservation as cancelled and frees its slot.
// Customer and area details are resolved best-effort; missing ones are stored
// as "Unknown".
func (s *DefaultBookingHistoryService) CancelBooking(ctx context.Context, bookingID string) (*models.PastBooking, error) {
	b, err := s.Gateway.GetBooking(ctx, bookingID)
	if errors.Is(err, parkingRepo.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		s.Logger.Error("Failed to fetch booking", zap.String("bookingID", bookingID), zap.Error(err))
		return nil, err
	}
	if b.Status != models.BookingStatusBooked {
		return nil, ErrNotCancellable
	}

	now := s.Now().UTC()
	past := models.PastBooking{
		ID:            uuid.New().String(),
		BookingID:     b.ID,
		VehicleNumber: b.VehicleNumber,
		SlotID:        b.SlotID,
		AreaName:      unknownValue,
		CustomerName:  unknownValue,
		ContactNumber: unknownValue,
		EntryTime:     b.EntryTime,
		ExitTime:      b.ExitTime,
		Status:        models.BookingStatusCancelled,
		PaymentStatus: b.PaymentStatus,
		AmountPaid:    b.AmountPaid,
		CancelledAt:   &now,
		CreatedAt:     now,
	}

	if v, err := s.Gateway.FindVehicle(ctx, b.VehicleNumber); err == nil && v != nil {
		past.CustomerName = orUnknown(v.CustomerName)
		past.ContactNumber = orUnknown(v.ContactNumber)
	} else if err != nil && !errors.Is(err, parkingRepo.ErrNotFound) {
		s.Logger.Warn("Vehicle lookup failed during cancel", zap.String("vehicle", b.VehicleNumber), zap.Error(err))
	}

	if slot, err := s.Gateway.GetSlot(ctx, b.SlotID); err == nil && slot != nil {
		if area, err := s.Gateway.GetArea(ctx, slot.AreaID); err == nil && area != nil {
			past.AreaName = orUnknown(area.Name)
		} else if err != nil && !errors.Is(err, parkingRepo.ErrNotFound) {
			s.Logger.Warn("Area lookup failed during cancel", zap.String("areaID", slot.AreaID), zap.Error(err))
		}
	} else if err != nil && !errors.Is(err, parkingRepo.ErrNotFound) {
		s.Logger.Warn("Slot lookup failed during cancel", zap.String("slotID", b.SlotID), zap.Error(err))
	}

	if err := s.Gateway.ArchiveBooking(ctx, past); err != nil {
		s.Logger.Error("Failed to archive cancelled booking", zap.String("bookingID", bookingID), zap.Error(err))
		return nil, err
	}
	metrics.IncBookingCancelled()
	s.Logger.Info("Booking cancelled", zap.String("bookingID", bookingID), zap.String("slotID", b.SlotID))
	return &past, nil
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// matches reports whether any field contains term; an empty term matches all.
func matches(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknownValue
	}
	return s
}
