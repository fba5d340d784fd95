// FILE: database/repository/parking/indexes.go
package parkingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the keys the gateway queries by.
func (r *mongoParkingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	plan := []struct {
		coll   *mongo.Collection
		models []mongo.IndexModel
	}{
		{r.areas, []mongo.IndexModel{
			{Keys: bson.D{{Key: "area_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_area_id")},
		}},
		{r.slots, []mongo.IndexModel{
			{Keys: bson.D{{Key: "slot_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_slot_id")},
			// Primary query pattern: available slots of an area.
			{Keys: bson.D{{Key: "area_id", Value: 1}, {Key: "status", Value: 1}}, Options: options.Index().SetName("area_status_idx")},
		}},
		{r.vehicles, []mongo.IndexModel{
			{Keys: bson.D{{Key: "vehicle_number", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_vehicle_number")},
		}},
		{r.bookings, []mongo.IndexModel{
			{Keys: bson.D{{Key: "booking_id", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_booking_id")},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "entry_time", Value: -1}}, Options: options.Index().SetName("status_entry_idx")},
		}},
		{r.past, []mongo.IndexModel{
			{Keys: bson.D{{Key: "created_at", Value: -1}}, Options: options.Index().SetName("created_idx")},
		}},
	}

	for _, p := range plan {
		if _, err := p.coll.Indexes().CreateMany(ctx, p.models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", p.coll.Name(), err)
		}
	}
	return nil
}
