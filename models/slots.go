package models

type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
)

// ParkingSlot is an individually bookable parking space within an area.
type ParkingSlot struct {
	ID     string     `bson:"slot_id" json:"slotId"`
	AreaID string     `bson:"area_id" json:"areaId"`
	Status SlotStatus `bson:"status" json:"status"`
}
