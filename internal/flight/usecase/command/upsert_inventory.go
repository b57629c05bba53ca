package command

import (
	"context"
	"fmt"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/flight/domain"
)

// UpsertInventoryCommand represents the command to create or fully replace
// the booked-seat counters of a flight
type UpsertInventoryCommand struct {
	FlightNumber        string
	DepartureDate       domain.Date
	BookedBusinessSeats int
	BookedEconomySeats  int
}

// InventoryResult is the post-write state returned to the caller, with
// availability computed per cabin
type InventoryResult struct {
	FlightNumber           string      `json:"flight_number"`
	DepartureDate          domain.Date `json:"departure_date"`
	BookedBusinessSeats    int         `json:"booked_business_seats"`
	BookedEconomySeats     int         `json:"booked_economy_seats"`
	AvailableBusinessSeats int         `json:"available_business_seats"`
	AvailableEconomySeats  int         `json:"available_economy_seats"`
}

// UpsertInventoryHandler handles the upsert inventory command
type UpsertInventoryHandler struct {
	repo      domain.InventoryRepository
	publisher events.Publisher
}

// NewUpsertInventoryHandler creates a new upsert inventory handler
func NewUpsertInventoryHandler(repo domain.InventoryRepository, publisher events.Publisher) *UpsertInventoryHandler {
	return &UpsertInventoryHandler{repo: repo, publisher: publisher}
}

// Handle replaces both booked counts for the flight's inventory. It fails
// with domain.ErrScheduleNotFound for an unknown flight and with
// domain.CapacityExceededError when a requested count exceeds capacity; in
// both cases nothing is written.
func (h *UpsertInventoryHandler) Handle(ctx context.Context, cmd UpsertInventoryCommand) (*InventoryResult, error) {
	if cmd.FlightNumber == "" {
		return nil, fmt.Errorf("flight_number is required")
	}
	if cmd.DepartureDate.IsZero() {
		return nil, fmt.Errorf("departure_date is required")
	}

	inventory, schedule, err := h.repo.Upsert(ctx, cmd.FlightNumber, cmd.DepartureDate, cmd.BookedBusinessSeats, cmd.BookedEconomySeats)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert inventory: %w", err)
	}

	availableBusiness, availableEconomy := domain.Availability(schedule, inventory)

	event := events.InventoryUpdatedEvent{
		InventoryID:            inventory.ID,
		FlightID:               schedule.ID,
		FlightNumber:           schedule.FlightNumber,
		DepartureDate:          schedule.DepartureDate.String(),
		BookedBusinessSeats:    inventory.BookedBusinessSeats,
		BookedEconomySeats:     inventory.BookedEconomySeats,
		AvailableBusinessSeats: availableBusiness,
		AvailableEconomySeats:  availableEconomy,
	}
	if err := h.publisher.Publish(ctx, events.EventInventoryUpdated, event); err != nil {
		return nil, fmt.Errorf("inventory stored but event publication failed: %w", err)
	}

	return &InventoryResult{
		FlightNumber:           schedule.FlightNumber,
		DepartureDate:          schedule.DepartureDate,
		BookedBusinessSeats:    inventory.BookedBusinessSeats,
		BookedEconomySeats:     inventory.BookedEconomySeats,
		AvailableBusinessSeats: availableBusiness,
		AvailableEconomySeats:  availableEconomy,
	}, nil
}
