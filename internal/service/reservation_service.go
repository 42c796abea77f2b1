package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/vocatech/room-allocation-api/internal/allocation"
	"github.com/vocatech/room-allocation-api/internal/dto"
	appErrors "github.com/vocatech/room-allocation-api/pkg/errors"
)

// ReservationService runs the pre-emptive reservation flow.
type ReservationService struct {
	store    snapshotStore
	cache    *CacheService
	metrics  *MetricsService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewReservationService constructs a ReservationService.
func NewReservationService(store snapshotStore, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ReservationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReservationService{
		store:    store,
		cache:    cache,
		metrics:  metrics,
		validate: validate,
		logger:   logger,
	}
}

// Reserve grants the requesting class the desired room, relocating the
// current occupant when possible. The whole operation is all-or-nothing:
// when the occupant cannot be relocated, nothing is persisted.
func (s *ReservationService) Reserve(ctx context.Context, req dto.ReservationRequest) (dto.ReservationResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return dto.ReservationResponse{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reservation payload")
	}

	s.store.Lock()
	defer s.store.Unlock()

	snap, err := s.store.Load(ctx)
	if err != nil {
		return dto.ReservationResponse{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load allocation state")
	}

	next, outcome, err := allocation.Reserve(snap, req.RequestingClassID, req.DesiredRoomID)
	if err != nil {
		var notFound *allocation.NotFoundError
		if errors.As(err, &notFound) {
			return dto.ReservationResponse{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s not found", notFound.Resource))
		}
		var displacement *allocation.DisplacementError
		if errors.As(err, &displacement) {
			s.recordAllocation("reserve", "displacement_impossible")
			return dto.ReservationResponse{}, appErrors.Clone(appErrors.ErrDisplacementImpossible, "Cannot relocate the current occupant to complete the reservation")
		}
		return dto.ReservationResponse{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "reservation failed")
	}

	if err := s.store.Replace(ctx, next); err != nil {
		return dto.ReservationResponse{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist reservation")
	}
	s.cache.InvalidateDashboard(ctx)
	s.recordAllocation("reserve", "reserved")
	s.logger.Info("room reserved",
		zap.String("class_id", outcome.RequestingClassID),
		zap.String("room_id", outcome.NewRoomForRequester),
		zap.Bool("displaced", outcome.DisplacedClassID != nil))

	return dto.ReservationResponse{
		RequestingClassID:    outcome.RequestingClassID,
		DisplacedClassID:     outcome.DisplacedClassID,
		NewRoomForRequesting: outcome.NewRoomForRequester,
		NewRoomForDisplaced:  outcome.NewRoomForDisplaced,
		Status:               outcome.Status,
		Message:              "Room reserved successfully",
	}, nil
}

func (s *ReservationService) recordAllocation(operation, outcome string) {
	if s.metrics != nil {
		s.metrics.RecordAllocation(operation, outcome)
	}
}
