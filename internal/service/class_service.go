package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vocatech/room-allocation-api/internal/allocation"
	"github.com/vocatech/room-allocation-api/internal/dto"
	"github.com/vocatech/room-allocation-api/internal/models"
	appErrors "github.com/vocatech/room-allocation-api/pkg/errors"
)

// ClassroomService manages classes and their room assignments.
type ClassroomService struct {
	store    snapshotStore
	cache    *CacheService
	metrics  *MetricsService
	validate *validator.Validate
	logger   *zap.Logger
	now      func() time.Time
	newID    func() string
}

// NewClassroomService constructs a ClassroomService.
func NewClassroomService(store snapshotStore, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{
		store:    store,
		cache:    cache,
		metrics:  metrics,
		validate: validate,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// List returns every class in storage order.
func (s *ClassroomService) List(ctx context.Context) ([]models.Classroom, error) {
	snap, err := s.store.Load(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classes")
	}
	if snap.Classes == nil {
		snap.Classes = []models.Classroom{}
	}
	return snap.Classes, nil
}

// Create registers a class and assigns it a room. When the request names
// a room, only that room is considered; otherwise the first eligible room
// in catalog order wins. Failure to place the class yields a conflict
// with a best-effort next-window hint.
func (s *ClassroomService) Create(ctx context.Context, req dto.CreateClassroomRequest) (models.Classroom, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Classroom{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}
	schedule := req.Schedule.ToModel()
	if err := validateSchedule(schedule); err != nil {
		return models.Classroom{}, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return models.Classroom{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load allocation state")
	}

	candidates := snap.Rooms
	if req.RoomID != nil {
		idx := snap.RoomByID(*req.RoomID)
		if idx < 0 {
			return models.Classroom{}, appErrors.Clone(appErrors.ErrNotFound, "room not found")
		}
		candidates = snap.Rooms[idx : idx+1]
	}

	selected, ok := allocation.SelectRoom(candidates, schedule, req.StudentCount, snap.Classes)
	if !ok {
		s.recordAllocation("create_class", "no_room")
		msg := "No room available for the given criteria."
		if hint, found := allocation.SuggestNextAvailable(snap.Rooms, schedule, req.StudentCount, snap.Classes); found {
			msg = fmt.Sprintf("%s Next window from %s.", msg, hint)
		}
		return models.Classroom{}, appErrors.Clone(appErrors.ErrNoRoomAvailable, msg)
	}

	now := s.now().UTC()
	roomID := selected.ID
	class := models.Classroom{
		ID:            s.newID(),
		Name:          req.Name,
		Schedule:      schedule,
		StudentCount:  req.StudentCount,
		RoomID:        &roomID,
		ReleasedSlots: []models.ClassroomRelease{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	snap.Classes = append(snap.Classes, class)
	snap.Rooms = allocation.RederiveStatuses(snap.Rooms, snap.Classes)

	if err := s.store.Replace(ctx, snap); err != nil {
		return models.Classroom{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist class")
	}
	s.cache.InvalidateDashboard(ctx)
	s.recordAllocation("create_class", "assigned")
	s.logger.Info("class created", zap.String("class_id", class.ID), zap.String("room_id", roomID))
	return class, nil
}

// Update applies a partial update to a class. The effective room and
// schedule are re-validated against the target room, excluding the class
// itself from the conflict set. Unlike Create, no retry hint is computed.
func (s *ClassroomService) Update(ctx context.Context, id string, req dto.UpdateClassroomRequest) (models.Classroom, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Classroom{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid class payload")
	}

	s.store.Lock()
	defer s.store.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return models.Classroom{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load allocation state")
	}
	idx := snap.ClassByID(id)
	if idx < 0 {
		return models.Classroom{}, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}
	class := snap.Classes[idx]

	schedule := class.Schedule
	if req.Schedule != nil {
		schedule = req.Schedule.ToModel()
		if err := validateSchedule(schedule); err != nil {
			return models.Classroom{}, err
		}
	}
	roomID := class.RoomID
	if req.RoomID != nil {
		roomID = req.RoomID
	}
	if roomID == nil {
		return models.Classroom{}, appErrors.Clone(appErrors.ErrNotFound, "room not found")
	}
	roomIdx := snap.RoomByID(*roomID)
	if roomIdx < 0 {
		return models.Classroom{}, appErrors.Clone(appErrors.ErrNotFound, "room not found")
	}
	studentCount := class.StudentCount
	if req.StudentCount != nil {
		studentCount = *req.StudentCount
	}

	others := make([]models.Classroom, 0, len(snap.Classes)-1)
	for _, other := range snap.Classes {
		if other.ID != class.ID {
			others = append(others, other)
		}
	}
	if !allocation.IsEligible(snap.Rooms[roomIdx], schedule, studentCount, others) {
		s.recordAllocation("update_class", "no_room")
		return models.Classroom{}, appErrors.Clone(appErrors.ErrNoRoomAvailable, "Room unavailable for the new criteria")
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	class.Schedule = schedule
	class.StudentCount = studentCount
	class.RoomID = roomID
	class.UpdatedAt = s.now().UTC()
	snap.Classes[idx] = class
	snap.Rooms = allocation.RederiveStatuses(snap.Rooms, snap.Classes)

	if err := s.store.Replace(ctx, snap); err != nil {
		return models.Classroom{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist class")
	}
	s.cache.InvalidateDashboard(ctx)
	s.recordAllocation("update_class", "assigned")
	return class, nil
}

// Release appends a day-release record to a class. Released slots are
// stored and surfaced but do not free the slot for other classes.
func (s *ClassroomService) Release(ctx context.Context, id string, req dto.ReleaseRequest) (models.Classroom, error) {
	if err := s.validate.Struct(req); err != nil {
		return models.Classroom{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid release payload")
	}
	if !req.Period.IsValid() {
		return models.Classroom{}, appErrors.Clone(appErrors.ErrValidation, "invalid period")
	}

	s.store.Lock()
	defer s.store.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return models.Classroom{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load allocation state")
	}
	idx := snap.ClassByID(id)
	if idx < 0 {
		return models.Classroom{}, appErrors.Clone(appErrors.ErrNotFound, "class not found")
	}

	class := snap.Classes[idx]
	class.ReleasedSlots = append(class.ReleasedSlots, models.ClassroomRelease{
		Date:   req.Date,
		Period: req.Period,
		Reason: req.Reason,
	})
	class.UpdatedAt = s.now().UTC()
	snap.Classes[idx] = class

	if err := s.store.Replace(ctx, snap); err != nil {
		return models.Classroom{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist class")
	}
	return class, nil
}

func (s *ClassroomService) recordAllocation(operation, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordAllocation(operation, outcome)
	}
}

func validateSchedule(schedule models.ClassSchedule) error {
	if schedule.StartDate.IsZero() || schedule.EndDate.IsZero() {
		return appErrors.Clone(appErrors.ErrValidation, "startDate and endDate are required")
	}
	if schedule.EndDate.Before(schedule.StartDate) {
		return appErrors.Clone(appErrors.ErrValidation, "endDate must not be before startDate")
	}
	if len(schedule.DaysOfWeek) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "daysOfWeek must not be empty")
	}
	for _, day := range schedule.DaysOfWeek {
		if !day.IsValid() {
			return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("invalid weekday %s", day))
		}
	}
	if !schedule.Period.IsValid() {
		return appErrors.Clone(appErrors.ErrValidation, "invalid period")
	}
	return nil
}
