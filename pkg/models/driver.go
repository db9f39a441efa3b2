package models

import "time"

const RoleDriver = "driver"

type DriverRecord struct {
	AccountID        int64     `json:"account_id"`
	FirstName        string    `json:"first_name"`
	LastName         string    `json:"last_name"`
	Birthdate        time.Time `json:"birthdate"`
	MotorcycleModel  string    `json:"motorcycle_model"`
	MotorcycleRegNo  string    `json:"motorcycle_reg_no"`
	PhoneNumber      string    `json:"phone_number"`
	Role             string    `json:"role"`
	IsApprovedDriver bool      `json:"is_approved_driver"`
	CreatedAt        time.Time `json:"created_at"`
}
