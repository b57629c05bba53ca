//go:build wireinject
// +build wireinject

package flight

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/skyops/pss/events"
	"github.com/skyops/pss/internal/flight/cache"
	httpDelivery "github.com/skyops/pss/internal/flight/delivery/http"
	"github.com/skyops/pss/internal/flight/usecase/command"
	"github.com/skyops/pss/internal/flight/usecase/query"
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB, publisher events.Publisher, scheduleCache *cache.ScheduleCache) (*httpDelivery.FlightHandler, error) {
	wire.Build(
		RepositorySet,
		CacheSet,
		command.NewUpsertScheduleHandler,
		command.NewUpsertInventoryHandler,
		query.NewListSchedulesHandler,
		query.NewGetAvailabilityHandler,
		httpDelivery.NewFlightHandler,
	)
	return nil, nil
}
