package command

import (
	"context"
	"fmt"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/flight/domain"
)

// ScheduleCacheInvalidator drops cached schedule reads after a write
type ScheduleCacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// UpsertScheduleCommand represents the command to create or replace a
// schedule, keyed by (flight_number, departure_date)
type UpsertScheduleCommand struct {
	FlightNumber         string
	DepartureDate        domain.Date
	Origin               string
	Destination          string
	BusinessSeatCapacity int
	EconomySeatCapacity  int
}

// UpsertScheduleHandler handles the upsert schedule command
type UpsertScheduleHandler struct {
	repo      domain.ScheduleRepository
	publisher events.Publisher
	cache     ScheduleCacheInvalidator
}

// NewUpsertScheduleHandler creates a new upsert schedule handler. cache may
// be nil when caching is disabled.
func NewUpsertScheduleHandler(repo domain.ScheduleRepository, publisher events.Publisher, cache ScheduleCacheInvalidator) *UpsertScheduleHandler {
	return &UpsertScheduleHandler{repo: repo, publisher: publisher, cache: cache}
}

// Handle persists the schedule and announces the post-write state. The
// ScheduleCreated event is emitted on every call, update or insert alike.
func (h *UpsertScheduleHandler) Handle(ctx context.Context, cmd UpsertScheduleCommand) (*domain.FlightSchedule, error) {
	if cmd.FlightNumber == "" {
		return nil, fmt.Errorf("flight_number is required")
	}
	if cmd.DepartureDate.IsZero() {
		return nil, fmt.Errorf("departure_date is required")
	}

	// Capacities are deliberately not range-checked here; negative values
	// pass through unchanged.
	schedule := &domain.FlightSchedule{
		FlightNumber:         cmd.FlightNumber,
		DepartureDate:        cmd.DepartureDate,
		Origin:               cmd.Origin,
		Destination:          cmd.Destination,
		BusinessSeatCapacity: cmd.BusinessSeatCapacity,
		EconomySeatCapacity:  cmd.EconomySeatCapacity,
	}

	if err := h.repo.Upsert(ctx, schedule); err != nil {
		return nil, fmt.Errorf("failed to upsert schedule: %w", err)
	}

	if h.cache != nil {
		h.cache.Invalidate(ctx)
	}

	event := events.ScheduleCreatedEvent{
		FlightID:             schedule.ID,
		FlightNumber:         schedule.FlightNumber,
		DepartureDate:        schedule.DepartureDate.String(),
		Origin:               schedule.Origin,
		Destination:          schedule.Destination,
		BusinessSeatCapacity: schedule.BusinessSeatCapacity,
		EconomySeatCapacity:  schedule.EconomySeatCapacity,
	}
	if err := h.publisher.Publish(ctx, events.EventScheduleCreated, event); err != nil {
		// The write has already committed; the failure still surfaces to the
		// caller because nothing compensates for the missing event.
		return nil, fmt.Errorf("schedule stored but event publication failed: %w", err)
	}

	return schedule, nil
}
