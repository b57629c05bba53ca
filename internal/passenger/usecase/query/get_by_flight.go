package query

import (
	"context"
	"fmt"

	"github.com/skyops/pss/internal/passenger/domain"
)

// GetByFlightQuery represents the query for all passengers on a flight
type GetByFlightQuery struct {
	FlightNumber string
}

// GetByFlightHandler handles the passengers-by-flight query
type GetByFlightHandler struct {
	repo domain.PassengerRepository
}

// NewGetByFlightHandler creates a new passengers-by-flight handler
func NewGetByFlightHandler(repo domain.PassengerRepository) *GetByFlightHandler {
	return &GetByFlightHandler{repo: repo}
}

// Handle returns every passenger booked on the flight; an unknown flight
// yields an empty list
func (h *GetByFlightHandler) Handle(ctx context.Context, q GetByFlightQuery) ([]domain.Passenger, error) {
	if q.FlightNumber == "" {
		return nil, fmt.Errorf("flight_number is required")
	}

	passengers, err := h.repo.FindByFlightNumber(ctx, q.FlightNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to list passengers: %w", err)
	}
	return passengers, nil
}
