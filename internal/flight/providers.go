package flight

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/skyops/pss/internal/flight/cache"
	"github.com/skyops/pss/internal/flight/domain"
	"github.com/skyops/pss/internal/flight/repository"
	"github.com/skyops/pss/internal/flight/usecase/command"
	"github.com/skyops/pss/internal/flight/usecase/query"
)

// ProvideScheduleRepository provides the traced schedule repository
func ProvideScheduleRepository(db *gorm.DB) domain.ScheduleRepository {
	return repository.NewTracedScheduleRepository(db)
}

// ProvideInventoryRepository provides the traced inventory repository
func ProvideInventoryRepository(db *gorm.DB) domain.InventoryRepository {
	return repository.NewTracedInventoryRepository(db)
}

// ProvideScheduleCacheInvalidator adapts the optional schedule cache. A nil
// cache disables invalidation without a typed-nil interface sneaking through.
func ProvideScheduleCacheInvalidator(c *cache.ScheduleCache) command.ScheduleCacheInvalidator {
	if c == nil {
		return nil
	}
	return c
}

// ProvideScheduleListCache adapts the optional schedule cache for reads
func ProvideScheduleListCache(c *cache.ScheduleCache) query.ScheduleListCache {
	if c == nil {
		return nil
	}
	return c
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideScheduleRepository,
	ProvideInventoryRepository,
)

var CacheSet = wire.NewSet(
	ProvideScheduleCacheInvalidator,
	ProvideScheduleListCache,
)
