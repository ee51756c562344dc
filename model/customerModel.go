// model/customer.go
package model

import "time"

type CustomerStatus string

const (
	CustomerActive      CustomerStatus = "Active"
	CustomerInactive    CustomerStatus = "Inactive"
	CustomerBlacklisted CustomerStatus = "Blacklisted"
)

type Customer struct {
	ID           string         `json:"id" label:"Customer ID" validate:"required,max=9,idfmt"`
	Name         string         `json:"name" label:"Name" validate:"required,max=50,personname"`
	Phone        string         `json:"phone" label:"Phone" validate:"required,max=15,phone"`
	Address      string         `json:"address" label:"Address" validate:"required,max=100,freetext"`
	IDPicture    string         `json:"id_picture" label:"ID picture" validate:"max=255"`
	Status       CustomerStatus `json:"status" label:"Status" validate:"required,oneof=Active Inactive Blacklisted"`
	RegisteredAt time.Time      `json:"registration_date" label:"Registration date"`
}
