package domain

import (
	"context"
	"errors"
	"time"
)

// Passenger lifecycle statuses
const (
	StatusBooked    = "Booked"
	StatusCheckedIn = "CheckedIn"
	StatusBoarded   = "Boarded"
	StatusOffloaded = "Offloaded"
)

// ErrPassengerNotFound is returned when no passenger matches the lookup key
var ErrPassengerNotFound = errors.New("passenger not found")

// Passenger is a traveler on a flight, grouped with co-travelers by PNR
type Passenger struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Name         string    `json:"name" gorm:"size:128;not null"`
	PNR          string    `json:"pnr" gorm:"size:16;not null;index"`
	FlightNumber string    `json:"flight_number" gorm:"size:16;not null;index"`
	Status       string    `json:"status" gorm:"size:32;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Passenger) TableName() string {
	return "passengers"
}

// PassengerRepository defines the contract for passenger data access
type PassengerRepository interface {
	FindByID(ctx context.Context, id uint) (*Passenger, error)
	FindByFlightNumber(ctx context.Context, flightNumber string) ([]Passenger, error)
	FindByPNR(ctx context.Context, pnr string) ([]Passenger, error)
	Update(ctx context.Context, passenger *Passenger) error
}
