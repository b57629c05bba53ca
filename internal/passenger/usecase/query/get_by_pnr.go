package query

import (
	"context"
	"fmt"

	"github.com/skyops/pss/internal/passenger/domain"
)

// GetByPNRQuery represents the query for all passengers sharing a PNR
type GetByPNRQuery struct {
	PNR string
}

// GetByPNRHandler handles the passengers-by-PNR query
type GetByPNRHandler struct {
	repo domain.PassengerRepository
}

// NewGetByPNRHandler creates a new passengers-by-PNR handler
func NewGetByPNRHandler(repo domain.PassengerRepository) *GetByPNRHandler {
	return &GetByPNRHandler{repo: repo}
}

// Handle returns every passenger on the booking reference. An empty result
// is domain.ErrPassengerNotFound; a PNR always covers at least one traveler.
func (h *GetByPNRHandler) Handle(ctx context.Context, q GetByPNRQuery) ([]domain.Passenger, error) {
	if q.PNR == "" {
		return nil, fmt.Errorf("pnr is required")
	}

	passengers, err := h.repo.FindByPNR(ctx, q.PNR)
	if err != nil {
		return nil, fmt.Errorf("failed to list passengers: %w", err)
	}
	if len(passengers) == 0 {
		return nil, domain.ErrPassengerNotFound
	}
	return passengers, nil
}
