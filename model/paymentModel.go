// model/payment.go
package model

import "time"

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "Unpaid"
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

// Payment rows with a negative AmountPaid are refunds. A nil AmountToPay
// means the rental cost was not known when the payment was taken.
type Payment struct {
	ID          string        `json:"id" label:"Payment ID" validate:"required,max=9,idfmt"`
	RentalID    string        `json:"rental_id" label:"Rental ID" validate:"required,max=9"`
	CustomerID  string        `json:"customer_id" label:"Customer ID" validate:"required,max=9"`
	BikeID      string        `json:"bike_id" label:"Bike ID" validate:"required,max=9"`
	AmountToPay *int64        `json:"amount_to_pay" label:"Amount to pay" validate:"omitempty,gt=0"`
	AmountPaid  int64         `json:"amount_paid" label:"Amount paid" validate:"ne=0"`
	PaymentDate time.Time     `json:"payment_date" label:"Payment date" validate:"required"`
	Status      PaymentStatus `json:"status" label:"Status" validate:"required,oneof=Unpaid Pending Paid Refunded"`

	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerPhone *string `json:"customer_phone,omitempty"`
	BikeModel     *string `json:"bike_model,omitempty"`
	BikeDailyRate *int64  `json:"bike_daily_rate,omitempty"`
}
