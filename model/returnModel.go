// model/return.go
package model

import "time"

type Return struct {
	ID         string    `json:"id" label:"Return ID" validate:"required,max=9,idfmt"`
	RentalID   string    `json:"rental_id" label:"Rental ID" validate:"required,max=9"`
	CustomerID string    `json:"customer_id" label:"Customer ID" validate:"required,max=9"`
	BikeID     string    `json:"bike_id" label:"Bike ID" validate:"required,max=9"`
	ReturnDate time.Time `json:"return_date" label:"Return date" validate:"required"`

	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	BikeModel     *string `json:"bike_model,omitempty"`
	BikeDailyRate *int64  `json:"bike_daily_rate,omitempty"`
}
