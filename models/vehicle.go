package models

// Vehicle is keyed by its registration number.
type Vehicle struct {
	Number        string `bson:"vehicle_number" json:"vehicleNumber"`
	CustomerName  string `bson:"customer_name" json:"customerName"`
	ContactNumber string `bson:"contact_number" json:"contactNumber"`
}
