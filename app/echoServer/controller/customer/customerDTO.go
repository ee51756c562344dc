package customer

import (
	"bikerental/model"
	"bikerental/util/httpx"
)

type CustomerReq struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Address      string `json:"address"`
	IDPicture    string `json:"id_picture"`
	Status       string `json:"status"`
	RegisteredAt string `json:"registration_date" example:"2026-01-31"`
}

func (r CustomerReq) toModel() (*model.Customer, error) {
	at, err := httpx.ParseDate(r.RegisteredAt)
	if err != nil {
		return nil, err
	}
	return &model.Customer{
		ID:           r.ID,
		Name:         r.Name,
		Phone:        r.Phone,
		Address:      r.Address,
		IDPicture:    r.IDPicture,
		Status:       model.CustomerStatus(r.Status),
		RegisteredAt: at,
	}, nil
}
