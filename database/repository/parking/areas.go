package parkingRepo

import (
	"context"
	"fmt"
	"time"

	"parkslot/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoParkingRepo) ListAreas(ctx context.Context) ([]models.Area, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "area_name", Value: 1}})
	cursor, err := r.areas.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list areas: %w", err)
	}
	defer cursor.Close(ctx)

	areas := []models.Area{}
	if err := cursor.All(ctx, &areas); err != nil {
		return nil, fmt.Errorf("decode areas: %w", err)
	}
	return areas, nil
}

func (r *mongoParkingRepo) GetArea(ctx context.Context, areaID string) (*models.Area, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var area models.Area
	if err := r.areas.FindOne(ctx, bson.M{"area_id": areaID}).Decode(&area); err != nil {
		return nil, notFound(err)
	}
	return &area, nil
}
