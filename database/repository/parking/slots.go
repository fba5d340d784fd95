package parkingRepo

import (
	"context"
	"fmt"
	"time"

	"parkslot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoParkingRepo) ListAvailableSlots(ctx context.Context, areaID string) ([]models.ParkingSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"area_id": areaID, "status": models.SlotAvailable}
	opts := options.Find().SetSort(bson.D{{Key: "slot_id", Value: 1}})
	cursor, err := r.slots.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list slots for area %s: %w", areaID, err)
	}
	defer cursor.Close(ctx)

	slots := []models.ParkingSlot{}
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, fmt.Errorf("decode slots: %w", err)
	}
	return slots, nil
}

func (r *mongoParkingRepo) GetSlot(ctx context.Context, slotID string) (*models.ParkingSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var slot models.ParkingSlot
	if err := r.slots.FindOne(ctx, bson.M{"slot_id": slotID}).Decode(&slot); err != nil {
		return nil, notFound(err)
	}
	return &slot, nil
}

// UpdateSlotStatus flips the slot's status flag. There is no compare-and-set:
// concurrent bookings of one slot are not arbitrated here.
func (r *mongoParkingRepo) UpdateSlotStatus(ctx context.Context, slotID string, status models.SlotStatus) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.slots.UpdateOne(ctx, bson.M{"slot_id": slotID}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update slot %s: %w", slotID, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
