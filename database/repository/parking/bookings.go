package parkingRepo

import (
	"context"
	"fmt"
	"time"

	"parkslot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateBooking inserts b, assigning an ID and creation time when unset.
func (r *mongoParkingRepo) CreateBooking(ctx context.Context, b models.Booking) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	if _, err := r.bookings.InsertOne(ctx, b); err != nil {
		return "", fmt.Errorf("insert booking: %w", err)
	}
	return b.ID, nil
}

func (r *mongoParkingRepo) GetBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var b models.Booking
	if err := r.bookings.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&b); err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

func (r *mongoParkingRepo) DeleteBooking(ctx context.Context, bookingID string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.bookings.DeleteOne(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return fmt.Errorf("delete booking %s: %w", bookingID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBookingsByStatus returns bookings in any of statuses, latest entry first.
func (r *mongoParkingRepo) ListBookingsByStatus(ctx context.Context, statuses []string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"status": bson.M{"$in": statuses}}
	opts := options.Find().SetSort(bson.D{{Key: "entry_time", Value: -1}})
	cursor, err := r.bookings.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

// ListPastBookings returns archived bookings, most recently archived first.
func (r *mongoParkingRepo) ListPastBookings(ctx context.Context) ([]models.PastBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.past.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list past bookings: %w", err)
	}
	defer cursor.Close(ctx)

	past := []models.PastBooking{}
	if err := cursor.All(ctx, &past); err != nil {
		return nil, fmt.Errorf("decode past bookings: %w", err)
	}
	return past, nil
}
