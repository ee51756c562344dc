package rental

import (
	"bikerental/model"
	"bikerental/util/httpx"
)

type StartRentalReq struct {
	ID         string `json:"id"`
	CustomerID string `json:"customer_id" validate:"required"`
	BikeID     string `json:"bike_id" validate:"required"`
	RentalDate string `json:"rental_date" example:"2026-01-31"`
}

type UpdateRentalReq struct {
	CustomerID string `json:"customer_id"`
	BikeID     string `json:"bike_id"`
	RentalDate string `json:"rental_date" example:"2026-01-31"`
	Status     string `json:"status"`
}

func (r StartRentalReq) toModel() (*model.Rental, error) {
	d, err := httpx.ParseDate(r.RentalDate)
	if err != nil {
		return nil, err
	}
	return &model.Rental{ID: r.ID, CustomerID: r.CustomerID, BikeID: r.BikeID, RentalDate: d}, nil
}

func (r UpdateRentalReq) toModel(id string) (*model.Rental, error) {
	d, err := httpx.ParseDate(r.RentalDate)
	if err != nil {
		return nil, err
	}
	return &model.Rental{
		ID:         id,
		CustomerID: r.CustomerID,
		BikeID:     r.BikeID,
		RentalDate: d,
		Status:     model.RentalStatus(r.Status),
	}, nil
}
