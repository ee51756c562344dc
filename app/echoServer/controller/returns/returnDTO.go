package returns

import (
	"bikerental/model"
	"bikerental/util/httpx"
)

// AddReturnReq closes a rental. ReleaseBike and DeactivateCustomer default
// to true when omitted.
type AddReturnReq struct {
	ID                 string `json:"id"`
	RentalID           string `json:"rental_id" validate:"required"`
	CustomerID         string `json:"customer_id"`
	BikeID             string `json:"bike_id"`
	ReturnDate         string `json:"return_date" example:"2026-01-31"`
	ReleaseBike        *bool  `json:"release_bike"`
	DeactivateCustomer *bool  `json:"deactivate_customer"`
}

func (r AddReturnReq) toModel() (*model.Return, error) {
	d, err := httpx.ParseDate(r.ReturnDate)
	if err != nil {
		return nil, err
	}
	return &model.Return{
		ID:         r.ID,
		RentalID:   r.RentalID,
		CustomerID: r.CustomerID,
		BikeID:     r.BikeID,
		ReturnDate: d,
	}, nil
}

func orTrue(b *bool) bool { return b == nil || *b }
