// File: database/repository/parking/interface.go
package parkingRepo

import (
	"context"
	"errors"

	"parkslot/database"
	"parkslot/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a keyed lookup matches nothing.
var ErrNotFound = errors.New("record not found")

// WizardGateway is what the booking wizard reads and writes.
type WizardGateway interface {
	ListAreas(ctx context.Context) ([]models.Area, error)
	ListAvailableSlots(ctx context.Context, areaID string) ([]models.ParkingSlot, error)
	FindVehicle(ctx context.Context, number string) (*models.Vehicle, error)
	CreateVehicle(ctx context.Context, v models.Vehicle) error
	CreateBooking(ctx context.Context, b models.Booking) (string, error)
	UpdateSlotStatus(ctx context.Context, slotID string, status models.SlotStatus) error

	// Compensations for a failed submit.
	DeleteVehicle(ctx context.Context, number string) error
	DeleteBooking(ctx context.Context, bookingID string) error
}

// HistoryGateway serves the bookings pages and cancellation.
type HistoryGateway interface {
	GetArea(ctx context.Context, areaID string) (*models.Area, error)
	GetSlot(ctx context.Context, slotID string) (*models.ParkingSlot, error)
	FindVehicle(ctx context.Context, number string) (*models.Vehicle, error)
	GetBooking(ctx context.Context, bookingID string) (*models.Booking, error)
	ListBookingsByStatus(ctx context.Context, statuses []string) ([]models.Booking, error)
	ListPastBookings(ctx context.Context) ([]models.PastBooking, error)
	ArchiveBooking(ctx context.Context, past models.PastBooking) error
}

type Gateway interface {
	WizardGateway
	HistoryGateway
	EnsureIndexes(ctx context.Context) error
}

type mongoParkingRepo struct {
	areas    *mongo.Collection
	slots    *mongo.Collection
	vehicles *mongo.Collection
	bookings *mongo.Collection
	past     *mongo.Collection
}

// NewMongoParkingRepo constructs the MongoDB gateway on the application database.
func NewMongoParkingRepo() Gateway {
	return NewMongoParkingRepoFromDB(database.Database())
}

func NewMongoParkingRepoFromDB(db *mongo.Database) Gateway {
	return &mongoParkingRepo{
		areas:    db.Collection("areas"),
		slots:    db.Collection("parking_slots"),
		vehicles: db.Collection("vehicles"),
		bookings: db.Collection("bookings"),
		past:     db.Collection("past_bookings"),
	}
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
