package models

import "time"

type Booking struct {
	ID              int64     `json:"id"`
	AccountID       int64     `json:"account_id"`
	BookedAt        time.Time `json:"booked_at"`
	RidePrice       int       `json:"ride_price"`
	Currency        string    `json:"currency"`
	PickupLocation  string    `json:"pickup_location"`
	DropoffLocation string    `json:"dropoff_location"`
	CreatedAt       time.Time `json:"created_at"`
}
