package payment

import (
	"bikerental/model"
	"bikerental/util/httpx"
)

type PaymentReq struct {
	ID          string `json:"id"`
	RentalID    string `json:"rental_id" validate:"required"`
	CustomerID  string `json:"customer_id"`
	BikeID      string `json:"bike_id"`
	AmountToPay *int64 `json:"amount_to_pay"`
	AmountPaid  int64  `json:"amount_paid"`
	PaymentDate string `json:"payment_date" example:"2026-01-31"`
	Status      string `json:"status"`
}

type RefundReq struct {
	Amount int64 `json:"amount" validate:"gt=0"`
}

func (r PaymentReq) toModel() (*model.Payment, error) {
	d, err := httpx.ParseDate(r.PaymentDate)
	if err != nil {
		return nil, err
	}
	return &model.Payment{
		ID:          r.ID,
		RentalID:    r.RentalID,
		CustomerID:  r.CustomerID,
		BikeID:      r.BikeID,
		AmountToPay: r.AmountToPay,
		AmountPaid:  r.AmountPaid,
		PaymentDate: d,
		Status:      model.PaymentStatus(r.Status),
	}, nil
}
