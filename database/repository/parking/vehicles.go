package parkingRepo

import (
	"context"
	"fmt"
	"time"

	"parkslot/models"

	"go.mongodb.org/mongo-driver/bson"
)

func (r *mongoParkingRepo) FindVehicle(ctx context.Context, number string) (*models.Vehicle, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var v models.Vehicle
	if err := r.vehicles.FindOne(ctx, bson.M{"vehicle_number": number}).Decode(&v); err != nil {
		return nil, notFound(err)
	}
	return &v, nil
}

func (r *mongoParkingRepo) CreateVehicle(ctx context.Context, v models.Vehicle) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.vehicles.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("insert vehicle %s: %w", v.Number, err)
	}
	return nil
}

func (r *mongoParkingRepo) DeleteVehicle(ctx context.Context, number string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := r.vehicles.DeleteOne(ctx, bson.M{"vehicle_number": number})
	if err != nil {
		return fmt.Errorf("delete vehicle %s: %w", number, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
