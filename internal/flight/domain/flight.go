package domain

import (
	"context"
	"time"
)

// FlightSchedule is a planned flight occurrence. At most one schedule exists
// per (flight_number, departure_date) pair; later upserts with the same key
// replace the remaining fields in place.
type FlightSchedule struct {
	ID                   uint      `json:"id" gorm:"primaryKey"`
	FlightNumber         string    `json:"flight_number" gorm:"size:16;not null;index;uniqueIndex:uq_flight_number_date"`
	DepartureDate        Date      `json:"departure_date" gorm:"type:date;not null;uniqueIndex:uq_flight_number_date"`
	Origin               string    `json:"origin" gorm:"size:64"`
	Destination          string    `json:"destination" gorm:"size:64"`
	BusinessSeatCapacity int       `json:"business_seat_capacity" gorm:"not null;default:0"`
	EconomySeatCapacity  int       `json:"economy_seat_capacity" gorm:"not null;default:0"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (FlightSchedule) TableName() string {
	return "flight_schedules"
}

// Inventory holds the booked-seat counters for one schedule (1:1 by
// flight_id). Upserts are full replacements of both counts, never deltas.
type Inventory struct {
	ID                  uint      `json:"id" gorm:"primaryKey"`
	FlightID            uint      `json:"flight_id" gorm:"not null;uniqueIndex"`
	BookedBusinessSeats int       `json:"booked_business_seats" gorm:"not null;default:0"`
	BookedEconomySeats  int       `json:"booked_economy_seats" gorm:"not null;default:0"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Inventory) TableName() string {
	return "flight_inventory"
}

// ScheduleRepository defines the contract for schedule data access
type ScheduleRepository interface {
	// Upsert atomically inserts the schedule or replaces the non-key fields
	// of the row matching its natural key. The passed schedule is refreshed
	// with the stored identity and timestamps.
	Upsert(ctx context.Context, schedule *FlightSchedule) error
	FindByFlightAndDate(ctx context.Context, flightNumber string, departureDate Date) (*FlightSchedule, error)
	// FindByFlightNumber resolves a schedule by flight number alone. When
	// several departure dates share the number, the oldest row wins.
	FindByFlightNumber(ctx context.Context, flightNumber string) (*FlightSchedule, error)
	FindAll(ctx context.Context) ([]FlightSchedule, error)
}

// InventoryRepository defines the contract for inventory data access
type InventoryRepository interface {
	// Upsert creates or fully replaces the inventory for the schedule
	// identified by (flightNumber, departureDate). The schedule lookup,
	// capacity validation and write happen in one transaction holding a row
	// lock on the schedule, so concurrent upserts cannot pass a stale
	// capacity check. Returns ErrScheduleNotFound or CapacityExceededError.
	Upsert(ctx context.Context, flightNumber string, departureDate Date, bookedBusiness, bookedEconomy int) (*Inventory, *FlightSchedule, error)
	FindByFlightID(ctx context.Context, flightID uint) (*Inventory, error)
}
