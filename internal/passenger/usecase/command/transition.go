package command

import (
	"context"
	"fmt"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/passenger/domain"
	"github.com/skyops/pss/pkg/logger"
)

// statusTransition moves a passenger into a target status and announces the
// change with the corresponding event
type statusTransition struct {
	repo      domain.PassengerRepository
	publisher events.Publisher
	status    string
	eventName string
}

func (t *statusTransition) apply(ctx context.Context, passengerID uint) (*domain.Passenger, error) {
	if passengerID == 0 {
		return nil, fmt.Errorf("passenger_id is required")
	}

	passenger, err := t.repo.FindByID(ctx, passengerID)
	if err != nil {
		return nil, err
	}

	passenger.Status = t.status
	if err := t.repo.Update(ctx, passenger); err != nil {
		return nil, fmt.Errorf("failed to update passenger: %w", err)
	}

	logger.Info(ctx).
		Uint("passenger_id", passenger.ID).
		Str("status", passenger.Status).
		Msg("Passenger status updated")

	envelope := events.NewEnvelope(t.eventName, passenger)
	if err := t.publisher.Publish(ctx, t.eventName, envelope); err != nil {
		return nil, fmt.Errorf("passenger updated but event publication failed: %w", err)
	}

	return passenger, nil
}
