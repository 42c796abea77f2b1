package service

import (
	"context"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vocatech/room-allocation-api/internal/allocation"
	"github.com/vocatech/room-allocation-api/internal/dto"
	"github.com/vocatech/room-allocation-api/internal/models"
	appErrors "github.com/vocatech/room-allocation-api/pkg/errors"
)

// snapshotStore abstracts the persisted allocation state. Lock/Unlock
// bracket read-modify-write sequences so concurrent mutations serialize
// on a single writer.
type snapshotStore interface {
	sync.Locker
	Load(ctx context.Context) (models.Snapshot, error)
	Replace(ctx context.Context, snap models.Snapshot) error
	CountRooms(ctx context.Context) (int, error)
}

// RoomService manages the room catalog and room search.
type RoomService struct {
	store    snapshotStore
	cache    *CacheService
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewRoomService constructs a RoomService.
func NewRoomService(store snapshotStore, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{
		store:    store,
		cache:    cache,
		validate: validate,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// List returns every room in storage order.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	if snap.Rooms == nil {
		snap.Rooms = []models.Room{}
	}
	return snap.Rooms, nil
}

// Create registers a new room.
func (s *RoomService) Create(ctx context.Context, req dto.CreateRoomRequest) (models.Room, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Room{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	status := models.RoomStatusAvailable
	if req.Status != nil {
		status = models.RoomStatus(*req.Status)
		if !status.IsValid() {
			return models.Room{}, appErrors.Clone(appErrors.ErrValidation, "invalid room status")
		}
	}

	s.store.Lock()
	defer s.store.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return models.Room{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}

	now := s.now().UTC()
	room := models.Room{
		ID:           s.newID(),
		Name:         req.Name,
		RoomType:     req.RoomType,
		Capacity:     req.Capacity,
		Status:       status,
		BlockedDates: models.DateList(req.BlockedDates),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	snap.Rooms = append(snap.Rooms, room)

	if err := s.store.Replace(ctx, snap); err != nil {
		return models.Room{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist room")
	}
	s.cache.InvalidateDashboard(ctx)
	s.logger.Info("room created", zap.String("room_id", room.ID), zap.String("name", room.Name))
	return room, nil
}

// Update applies a partial update to a room. Unless the room ends up
// BLOCKED, its status is re-derived from current assignments.
func (s *RoomService) Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (models.Room, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Room{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid room payload")
	}
	if req.Status != nil && !models.RoomStatus(*req.Status).IsValid() {
		return models.Room{}, appErrors.Clone(appErrors.ErrValidation, "invalid room status")
	}

	s.store.Lock()
	defer s.store.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return models.Room{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	idx := snap.RoomByID(id)
	if idx < 0 {
		return models.Room{}, appErrors.Clone(appErrors.ErrNotFound, "room not found")
	}

	room := snap.Rooms[idx]
	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.RoomType != nil {
		room.RoomType = *req.RoomType
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Status != nil {
		room.Status = models.RoomStatus(*req.Status)
	}
	if req.BlockedDates != nil {
		room.BlockedDates = models.DateList(*req.BlockedDates)
	}
	if room.Status != models.RoomStatusBlocked {
		room.Status = allocation.DeriveStatus(room, snap.Classes)
	}
	room.UpdatedAt = s.now().UTC()
	snap.Rooms[idx] = room

	if err := s.store.Replace(ctx, snap); err != nil {
		return models.Room{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist room")
	}
	s.cache.InvalidateDashboard(ctx)
	return room, nil
}

// Search filters rooms on their stored attributes and groups the matches
// by re-derived status.
func (s *RoomService) Search(ctx context.Context, filter models.RoomSearchFilter) (dto.RoomSearchResponse, error) {
	if filter.Status != "" && !models.RoomStatus(filter.Status).IsValid() {
		return dto.RoomSearchResponse{}, appErrors.Clone(appErrors.ErrValidation, "invalid status filter")
	}

	snap, err := s.store.Load(ctx)
	if err != nil {
		return dto.RoomSearchResponse{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}

	resp := dto.NewRoomSearchResponse()
	for _, room := range snap.Rooms {
		if filter.RoomType != "" && filter.RoomType != room.RoomType {
			continue
		}
		if filter.Status != "" && models.RoomStatus(filter.Status) != room.Status {
			continue
		}
		if filter.MinCapacity != nil && room.Capacity < *filter.MinCapacity {
			continue
		}
		room.Status = allocation.DeriveStatus(room, snap.Classes)
		resp.Add(room)
	}
	return resp, nil
}

// EnsureSeeded inserts the default room catalog when storage is empty.
func (s *RoomService) EnsureSeeded(ctx context.Context) error {
	count, err := s.store.CountRooms(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count rooms")
	}
	if count > 0 {
		return nil
	}

	s.store.Lock()
	defer s.store.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load rooms")
	}
	if len(snap.Rooms) > 0 {
		return nil
	}

	now := s.now().UTC()
	for _, seed := range defaultRoomCatalog {
		snap.Rooms = append(snap.Rooms, models.Room{
			ID:           s.newID(),
			Name:         seed.name,
			RoomType:     seed.roomType,
			Capacity:     seed.capacity,
			Status:       models.RoomStatusAvailable,
			BlockedDates: models.DateList{},
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	if err := s.store.Replace(ctx, snap); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to seed rooms")
	}
	s.logger.Info("seeded default room catalog", zap.Int("rooms", len(snap.Rooms)))
	return nil
}

type seedRoom struct {
	name     string
	roomType string
	capacity int
}

var defaultRoomCatalog = []seedRoom{
	{"Lab 1", "Computing", 18},
	{"Lab 2", "Computing", 20},
	{"Lab 3", "Computing", 40},
	{"Room 4", "Experimental", 45},
	{"Lab 5", "Computing", 35},
	{"Lab 6", "Computing", 28},
	{"Lab 7", "Health", 30},
	{"Lab 8", "Wellness", 30},
	{"Lab 9", "Beauty", 30},
	{"Room 10", "Standard", 32},
	{"Room 11", "Standard", 32},
	{"Room 12", "Standard", 32},
	{"Room 13", "Standard", 32},
	{"Room 14", "Theater", 35},
	{"Room 15", "Fashion", 35},
	{"Room 16", "Standard", 32},
	{"Room 17", "Standard", 32},
	{"Room 18", "Standard", 32},
	{"Room 19", "Standard", 32},
	{"Room 20", "Standard", 32},
	{"Library", "Experimental", 45},
}
