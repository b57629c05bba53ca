package command

import (
	"context"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/passenger/domain"
)

// CheckInPassengerCommand represents the command to check in a passenger
type CheckInPassengerCommand struct {
	PassengerID uint
}

// CheckInPassengerHandler handles the check-in command
type CheckInPassengerHandler struct {
	transition statusTransition
}

// NewCheckInPassengerHandler creates a new check-in handler
func NewCheckInPassengerHandler(repo domain.PassengerRepository, publisher events.Publisher) *CheckInPassengerHandler {
	return &CheckInPassengerHandler{
		transition: statusTransition{
			repo:      repo,
			publisher: publisher,
			status:    domain.StatusCheckedIn,
			eventName: events.EventPassengerCheckedIn,
		},
	}
}

// Handle executes the check-in command
func (h *CheckInPassengerHandler) Handle(ctx context.Context, cmd CheckInPassengerCommand) (*domain.Passenger, error) {
	return h.transition.apply(ctx, cmd.PassengerID)
}
