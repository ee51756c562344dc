// model/bike.go
package model

type BikeStatus string

const (
	BikeAvailable   BikeStatus = "Available"
	BikeRented      BikeStatus = "Rented"
	BikeMaintenance BikeStatus = "Under Maintenance"
)

type Bike struct {
	ID        string     `json:"id" label:"Bike ID" validate:"required,max=9,idfmt"`
	Model     string     `json:"model" label:"Model" validate:"required,max=50,freetext"`
	Type      string     `json:"type" label:"Type" validate:"required,max=30,freetext"`
	DailyRate int64      `json:"daily_rate" label:"Daily rate" validate:"gt=0"`
	Picture   string     `json:"picture" label:"Picture" validate:"required,max=255,imagefile"`
	Status    BikeStatus `json:"status" label:"Status" validate:"required,oneof=Available Rented 'Under Maintenance'"`
}
