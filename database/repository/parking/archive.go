package parkingRepo

import (
	"context"
	"fmt"
	"time"

	"parkslot/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ArchiveBooking moves a booking into past_bookings, releases its slot and
// deletes the live record in a single transaction.
func (r *mongoParkingRepo) ArchiveBooking(ctx context.Context, past models.PastBooking) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if past.ID == "" {
		past.ID = uuid.New().String()
	}
	if past.CreatedAt.IsZero() {
		past.CreatedAt = time.Now().UTC()
	}

	client := r.bookings.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.past.InsertOne(sc, past); err != nil {
			return fmt.Errorf("insert past booking failed: %w", err)
		}

		res, err := r.slots.UpdateOne(sc,
			bson.M{"slot_id": past.SlotID},
			bson.M{"$set": bson.M{"status": models.SlotAvailable}},
		)
		if err != nil {
			return fmt.Errorf("release slot failed: %w", err)
		}
		if res.MatchedCount == 0 {
			return fmt.Errorf("release slot %s: %w", past.SlotID, ErrNotFound)
		}

		del, err := r.bookings.DeleteOne(sc, bson.M{"booking_id": past.BookingID})
		if err != nil {
			return fmt.Errorf("delete booking failed: %w", err)
		}
		if del.DeletedCount == 0 {
			return fmt.Errorf("delete booking %s: %w", past.BookingID, ErrNotFound)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("archive transaction failed: %w", err)
	}
	return nil
}
