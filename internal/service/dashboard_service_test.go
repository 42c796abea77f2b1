package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vocatech/room-allocation-api/internal/models"
)

func TestDashboardServiceOverview_CountsPerPeriod(t *testing.T) {
	morning := testSchedule(t, "2025-02-03", "2025-06-30", models.PeriodMorning, models.WeekdayMonday)
	evening := testSchedule(t, "2025-02-03", "2025-06-30", models.PeriodEvening, models.WeekdayTuesday)
	store := &fakeStore{snap: models.Snapshot{
		Rooms: []models.Room{
			{ID: "room-1", Capacity: 30, Status: models.RoomStatusOccupied},
			{ID: "room-2", Capacity: 30, Status: models.RoomStatusAvailable},
			{ID: "room-3", Capacity: 30, Status: models.RoomStatusBlocked},
		},
		Classes: []models.Classroom{
			assignedClass("class-1", "room-1", morning, 10),
			assignedClass("class-2", "room-1", evening, 10),
		},
	}}
	svc := NewDashboardService(store, nil, time.Minute, zap.NewNop())

	resp, cached, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)

	require.Len(t, resp.Periods, 3)
	byPeriod := map[models.Period]int{}
	for _, entry := range resp.Periods {
		byPeriod[entry.Period] = entry.Occupied
		assert.Equal(t, 3, entry.Occupied+entry.Available)
	}
	assert.Equal(t, 1, byPeriod[models.PeriodMorning])
	assert.Equal(t, 0, byPeriod[models.PeriodAfternoon])
	assert.Equal(t, 1, byPeriod[models.PeriodEvening])
}

func TestDashboardServiceOverview_ServesFromCache(t *testing.T) {
	store := &fakeStore{snap: models.Snapshot{
		Rooms: []models.Room{{ID: "room-1", Capacity: 30, Status: models.RoomStatusAvailable}},
	}}
	cacheRepo := &stubCacheRepo{}
	svc := NewDashboardService(store, testCache(cacheRepo), time.Minute, zap.NewNop())

	first, cached, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)

	// A state change without invalidation is not observed until the TTL expires.
	store.snap.Rooms = append(store.snap.Rooms, models.Room{ID: "room-2", Capacity: 10})

	second, cached, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)
}

func TestDashboardServiceOverview_CacheInvalidatedByMutation(t *testing.T) {
	store := &fakeStore{snap: models.Snapshot{
		Rooms: []models.Room{{ID: "room-1", Capacity: 30, Status: models.RoomStatusAvailable}},
	}}
	cacheRepo := &stubCacheRepo{}
	cache := testCache(cacheRepo)
	svc := NewDashboardService(store, cache, time.Minute, zap.NewNop())

	_, _, err := svc.Overview(context.Background())
	require.NoError(t, err)

	cache.InvalidateDashboard(context.Background())

	_, cached, err := svc.Overview(context.Background())
	require.NoError(t, err)
	assert.False(t, cached)
}
