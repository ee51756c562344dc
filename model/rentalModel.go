// model/rental.go
package model

import "time"

type RentalStatus string

const (
	RentalActive    RentalStatus = "Active"
	RentalCompleted RentalStatus = "Completed"
	RentalOverdue   RentalStatus = "Overdue"
)

type Rental struct {
	ID         string       `json:"id" label:"Rental ID" validate:"required,max=9,idfmt"`
	CustomerID string       `json:"customer_id" label:"Customer ID" validate:"required,max=9"`
	BikeID     string       `json:"bike_id" label:"Bike ID" validate:"required,max=9"`
	RentalDate time.Time    `json:"rental_date" label:"Rental date" validate:"required"`
	Status     RentalStatus `json:"status" label:"Status" validate:"required,oneof=Active Completed Overdue"`

	// read-only, filled by joined reads
	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	BikeModel     *string `json:"bike_model,omitempty"`
	BikeDailyRate *int64  `json:"bike_daily_rate,omitempty"`
}
