package command

import (
	"context"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/passenger/domain"
)

// OffloadPassengerCommand represents the command to offload a passenger
type OffloadPassengerCommand struct {
	PassengerID uint
}

// OffloadPassengerHandler handles the offload command
type OffloadPassengerHandler struct {
	transition statusTransition
}

// NewOffloadPassengerHandler creates a new offload handler
func NewOffloadPassengerHandler(repo domain.PassengerRepository, publisher events.Publisher) *OffloadPassengerHandler {
	return &OffloadPassengerHandler{
		transition: statusTransition{
			repo:      repo,
			publisher: publisher,
			status:    domain.StatusOffloaded,
			eventName: events.EventPassengerOffloaded,
		},
	}
}

// Handle executes the offload command
func (h *OffloadPassengerHandler) Handle(ctx context.Context, cmd OffloadPassengerCommand) (*domain.Passenger, error) {
	return h.transition.apply(ctx, cmd.PassengerID)
}
