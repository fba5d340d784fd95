package models

// Area is a parking area that groups bookable slots.
type Area struct {
	ID        string   `bson:"area_id" json:"areaId"`
	Name      string   `bson:"area_name" json:"areaName"`
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
}
