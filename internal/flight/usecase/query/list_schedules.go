package query

import (
	"context"
	"fmt"

	"github.com/skyops/pss/internal/flight/domain"
)

// ScheduleListCache caches the full schedule list
type ScheduleListCache interface {
	GetSchedules(ctx context.Context) ([]domain.FlightSchedule, error)
	SetSchedules(ctx context.Context, schedules []domain.FlightSchedule) error
}

// ListSchedulesHandler handles the list schedules query
type ListSchedulesHandler struct {
	repo  domain.ScheduleRepository
	cache ScheduleListCache
}

// NewListSchedulesHandler creates a new list schedules handler. cache may be
// nil when caching is disabled.
func NewListSchedulesHandler(repo domain.ScheduleRepository, cache ScheduleListCache) *ListSchedulesHandler {
	return &ListSchedulesHandler{repo: repo, cache: cache}
}

// Handle returns every stored schedule. No ordering is guaranteed.
func (h *ListSchedulesHandler) Handle(ctx context.Context) ([]domain.FlightSchedule, error) {
	if h.cache != nil {
		if cached, err := h.cache.GetSchedules(ctx); err == nil && cached != nil {
			return cached, nil
		}
	}

	schedules, err := h.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}

	if h.cache != nil {
		_ = h.cache.SetSchedules(ctx, schedules)
	}

	return schedules, nil
}
