package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vocatech/room-allocation-api/internal/dto"
	"github.com/vocatech/room-allocation-api/internal/models"
	appErrors "github.com/vocatech/room-allocation-api/pkg/errors"
)

type fakeStore struct {
	mu         sync.Mutex
	snap       models.Snapshot
	loadErr    error
	replaceErr error
	replaced   int
}

func (f *fakeStore) Lock()   { f.mu.Lock() }
func (f *fakeStore) Unlock() { f.mu.Unlock() }

func (f *fakeStore) Load(context.Context) (models.Snapshot, error) {
	if f.loadErr != nil {
		return models.Snapshot{}, f.loadErr
	}
	return f.snap.Clone(), nil
}

func (f *fakeStore) Replace(_ context.Context, snap models.Snapshot) error {
	if f.replaceErr != nil {
		return f.replaceErr
	}
	f.snap = snap
	f.replaced++
	return nil
}

func (f *fakeStore) CountRooms(context.Context) (int, error) {
	return len(f.snap.Rooms), nil
}

type stubCacheRepo struct {
	entries  map[string][]byte
	patterns []string
}

func (s *stubCacheRepo) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := s.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (s *stubCacheRepo) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if s.entries == nil {
		s.entries = map[string][]byte{}
	}
	s.entries[key] = raw
	return nil
}

func (s *stubCacheRepo) DeleteByPattern(_ context.Context, pattern string) error {
	s.patterns = append(s.patterns, pattern)
	s.entries = map[string][]byte{}
	return nil
}

func testCache(repo *stubCacheRepo) *CacheService {
	return NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
}

func testDate(t *testing.T, raw string) models.Date {
	t.Helper()
	d, err := models.ParseDate(raw)
	require.NoError(t, err)
	return d
}

func testSchedule(t *testing.T, start, end string, period models.Period, days ...models.Weekday) models.ClassSchedule {
	t.Helper()
	return models.ClassSchedule{
		StartDate:  testDate(t, start),
		EndDate:    testDate(t, end),
		DaysOfWeek: models.WeekdayList(days),
		Period:     period,
	}
}

func assignedClass(id, roomID string, schedule models.ClassSchedule, students int) models.Classroom {
	return models.Classroom{
		ID:           id,
		Name:         id,
		Schedule:     schedule,
		StudentCount: students,
		RoomID:       &roomID,
	}
}

func TestRoomServiceCreate_DefaultsStatus(t *testing.T) {
	store := &fakeStore{}
	cacheRepo := &stubCacheRepo{}
	svc := NewRoomService(store, testCache(cacheRepo), nil, zap.NewNop())
	svc.newID = func() string { return "room-1" }

	room, err := svc.Create(context.Background(), dto.CreateRoomRequest{
		Name:     "Lab 1",
		RoomType: "Computing",
		Capacity: 20,
	})
	require.NoError(t, err)

	assert.Equal(t, "room-1", room.ID)
	assert.Equal(t, models.RoomStatusAvailable, room.Status)
	assert.Len(t, store.snap.Rooms, 1)
	assert.Contains(t, cacheRepo.patterns, "dash:*")
}

func TestRoomServiceCreate_RejectsUnknownStatus(t *testing.T) {
	svc := NewRoomService(&fakeStore{}, nil, nil, zap.NewNop())

	bogus := "SOMETHING"
	_, err := svc.Create(context.Background(), dto.CreateRoomRequest{
		Name:     "Lab 1",
		RoomType: "Computing",
		Capacity: 20,
		Status:   &bogus,
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRoomServiceUpdate_RederivesStatus(t *testing.T) {
	sched := testSchedule(t, "2025-02-03", "2025-06-30", models.PeriodMorning, models.WeekdayMonday)
	store := &fakeStore{snap: models.Snapshot{
		Rooms: []models.Room{
			{ID: "room-1", Name: "Lab 1", RoomType: "Computing", Capacity: 20, Status: models.RoomStatusReserved},
		},
		Classes: []models.Classroom{assignedClass("class-1", "room-1", sched, 10)},
	}}
	svc := NewRoomService(store, testCache(&stubCacheRepo{}), nil, zap.NewNop())

	capacity := 25
	room, err := svc.Update(context.Background(), "room-1", dto.UpdateRoomRequest{Capacity: &capacity})
	require.NoError(t, err)

	assert.Equal(t, 25, room.Capacity)
	assert.Equal(t, models.RoomStatusOccupied, room.Status)
}

func TestRoomServiceUpdate_BlockedSticks(t *testing.T) {
	store := &fakeStore{snap: models.Snapshot{
		Rooms: []models.Room{{ID: "room-1", Name: "Lab 1", Capacity: 20, Status: models.RoomStatusAvailable}},
	}}
	svc := NewRoomService(store, testCache(&stubCacheRepo{}), nil, zap.NewNop())

	blocked := string(models.RoomStatusBlocked)
	room, err := svc.Update(context.Background(), "room-1", dto.UpdateRoomRequest{Status: &blocked})
	require.NoError(t, err)

	assert.Equal(t, models.RoomStatusBlocked, room.Status)
}

func TestRoomServiceUpdate_NotFound(t *testing.T) {
	svc := NewRoomService(&fakeStore{}, nil, nil, zap.NewNop())

	_, err := svc.Update(context.Background(), "missing", dto.UpdateRoomRequest{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestRoomServiceSearch_GroupsByDerivedStatus(t *testing.T) {
	sched := testSchedule(t, "2025-02-03", "2025-06-30", models.PeriodMorning, models.WeekdayMonday)
	store := &fakeStore{snap: models.Snapshot{
		Rooms: []models.Room{
			{ID: "room-1", Name: "Lab 1", RoomType: "Computing", Capacity: 20, Status: models.RoomStatusAvailable},
			{ID: "room-2", Name: "Lab 2", RoomType: "Computing", Capacity: 30, Status: models.RoomStatusAvailable},
			{ID: "room-3", Name: "Room 4", RoomType: "Standard", Capacity: 45, Status: models.RoomStatusBlocked},
		},
		Classes: []models.Classroom{assignedClass("class-1", "room-1", sched, 10)},
	}}
	svc := NewRoomService(store, nil, nil, zap.NewNop())

	resp, err := svc.Search(context.Background(), models.RoomSearchFilter{RoomType: "Computing"})
	require.NoError(t, err)

	require.Len(t, resp.Occupied, 1)
	assert.Equal(t, "room-1", resp.Occupied[0].ID)
	require.Len(t, resp.Available, 1)
	assert.Equal(t, "room-2", resp.Available[0].ID)
	assert.Empty(t, resp.Blocked)
	assert.NotNil(t, resp.Reserved)
}

func TestRoomServiceSearch_InvalidStatusFilter(t *testing.T) {
	svc := NewRoomService(&fakeStore{}, nil, nil, zap.NewNop())

	_, err := svc.Search(context.Background(), models.RoomSearchFilter{Status: "NOPE"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRoomServiceSearch_MinCapacity(t *testing.T) {
	store := &fakeStore{snap: models.Snapshot{
		Rooms: []models.Room{
			{ID: "room-1", Capacity: 18, Status: models.RoomStatusAvailable},
			{ID: "room-2", Capacity: 40, Status: models.RoomStatusAvailable},
		},
	}}
	svc := NewRoomService(store, nil, nil, zap.NewNop())

	min := 30
	resp, err := svc.Search(context.Background(), models.RoomSearchFilter{MinCapacity: &min})
	require.NoError(t, err)

	require.Len(t, resp.Available, 1)
	assert.Equal(t, "room-2", resp.Available[0].ID)
}

func TestRoomServiceEnsureSeeded_PopulatesEmptyCatalog(t *testing.T) {
	store := &fakeStore{}
	svc := NewRoomService(store, nil, nil, zap.NewNop())

	require.NoError(t, svc.EnsureSeeded(context.Background()))

	assert.Len(t, store.snap.Rooms, 21)
	for _, room := range store.snap.Rooms {
		assert.Equal(t, models.RoomStatusAvailable, room.Status)
		assert.NotEmpty(t, room.ID)
	}
}

func TestRoomServiceEnsureSeeded_SkipsNonEmptyCatalog(t *testing.T) {
	store := &fakeStore{snap: models.Snapshot{
		Rooms: []models.Room{{ID: "room-1", Name: "Lab 1", Capacity: 10}},
	}}
	svc := NewRoomService(store, nil, nil, zap.NewNop())

	require.NoError(t, svc.EnsureSeeded(context.Background()))

	assert.Len(t, store.snap.Rooms, 1)
	assert.Zero(t, store.replaced)
}
