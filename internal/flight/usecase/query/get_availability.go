package query

import (
	"context"
	"fmt"

	"github.com/skyops/pss/internal/flight/domain"
)

// GetAvailabilityQuery represents the query for a flight's seat availability
type GetAvailabilityQuery struct {
	FlightNumber string
}

// InventoryView is the live availability of a flight, computed from the
// schedule's capacities and the inventory's booked counts on every read
type InventoryView struct {
	FlightNumber           string `json:"flight_number"`
	AvailableBusinessSeats int    `json:"available_business_seats"`
	AvailableEconomySeats  int    `json:"available_economy_seats"`
}

// GetAvailabilityHandler handles the availability query
type GetAvailabilityHandler struct {
	schedules   domain.ScheduleRepository
	inventories domain.InventoryRepository
}

// NewGetAvailabilityHandler creates a new availability handler
func NewGetAvailabilityHandler(schedules domain.ScheduleRepository, inventories domain.InventoryRepository) *GetAvailabilityHandler {
	return &GetAvailabilityHandler{schedules: schedules, inventories: inventories}
}

// Handle resolves the schedule by flight number alone and computes the
// availability. Returns domain.ErrScheduleNotFound or
// domain.ErrInventoryNotFound when either half is missing.
func (h *GetAvailabilityHandler) Handle(ctx context.Context, q GetAvailabilityQuery) (*InventoryView, error) {
	if q.FlightNumber == "" {
		return nil, fmt.Errorf("flight_number is required")
	}

	schedule, err := h.schedules.FindByFlightNumber(ctx, q.FlightNumber)
	if err != nil {
		return nil, err
	}

	inventory, err := h.inventories.FindByFlightID(ctx, schedule.ID)
	if err != nil {
		return nil, err
	}

	availableBusiness, availableEconomy := domain.Availability(schedule, inventory)

	return &InventoryView{
		FlightNumber:           schedule.FlightNumber,
		AvailableBusinessSeats: availableBusiness,
		AvailableEconomySeats:  availableEconomy,
	}, nil
}
