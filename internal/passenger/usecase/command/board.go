package command

import (
	"context"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/passenger/domain"
)

// BoardPassengerCommand represents the command to board a passenger
type BoardPassengerCommand struct {
	PassengerID uint
}

// BoardPassengerHandler handles the board command
type BoardPassengerHandler struct {
	transition statusTransition
}

// NewBoardPassengerHandler creates a new board handler
func NewBoardPassengerHandler(repo domain.PassengerRepository, publisher events.Publisher) *BoardPassengerHandler {
	return &BoardPassengerHandler{
		transition: statusTransition{
			repo:      repo,
			publisher: publisher,
			status:    domain.StatusBoarded,
			eventName: events.EventPassengerBoarded,
		},
	}
}

// Handle executes the board command
func (h *BoardPassengerHandler) Handle(ctx context.Context, cmd BoardPassengerCommand) (*domain.Passenger, error) {
	return h.transition.apply(ctx, cmd.PassengerID)
}
