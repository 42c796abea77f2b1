package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vocatech/room-allocation-api/internal/dto"
	"github.com/vocatech/room-allocation-api/internal/models"
	appErrors "github.com/vocatech/room-allocation-api/pkg/errors"
)

const dashboardOverviewKey = dashboardCachePrefix + "overview"

// DashboardService composes the per-period occupancy overview.
type DashboardService struct {
	store    snapshotStore
	cache    *CacheService
	logger   *zap.Logger
	cacheTTL time.Duration
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(store snapshotStore, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		store:    store,
		cache:    cache,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// Overview returns occupancy counts per period and reports whether the
// payload was served from cache. A room counts as occupied for a period
// when at least one of its assigned classes runs in that period; blocked
// rooms with no assignment still count as available.
func (s *DashboardService) Overview(ctx context.Context) (dto.DashboardOverviewResponse, bool, error) {
	if s.cache != nil {
		var cached dto.DashboardOverviewResponse
		hit, err := s.cache.Get(ctx, dashboardOverviewKey, &cached)
		if err == nil && hit {
			return cached, true, nil
		}
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		return dto.DashboardOverviewResponse{}, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load allocation state")
	}

	occupied := make(map[models.Period]int, len(models.Periods))
	available := make(map[models.Period]int, len(models.Periods))
	for _, room := range snap.Rooms {
		assigned := snap.ClassesInRoom(room.ID)
		for _, period := range models.Periods {
			busy := false
			for _, class := range assigned {
				if class.Schedule.Period == period {
					busy = true
					break
				}
			}
			if busy {
				occupied[period]++
			} else {
				available[period]++
			}
		}
	}

	resp := dto.DashboardOverviewResponse{Periods: make([]dto.PeriodOccupancy, 0, len(models.Periods))}
	for _, period := range models.Periods {
		resp.Periods = append(resp.Periods, dto.PeriodOccupancy{
			Period:    period,
			Occupied:  occupied[period],
			Available: available[period],
		})
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, dashboardOverviewKey, resp, s.cacheTTL); err != nil {
			s.logger.Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return resp, false, nil
}
