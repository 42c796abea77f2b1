package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vocatech/room-allocation-api/internal/dto"
	"github.com/vocatech/room-allocation-api/internal/models"
	appErrors "github.com/vocatech/room-allocation-api/pkg/errors"
	"github.com/vocatech/room-allocation-api/pkg/response"
)

type roomService interface {
	List(ctx context.Context) ([]models.Room, error)
	Create(ctx context.Context, req dto.CreateRoomRequest) (models.Room, error)
	Update(ctx context.Context, id string, req dto.UpdateRoomRequest) (models.Room, error)
	Search(ctx context.Context, filter models.RoomSearchFilter) (dto.RoomSearchResponse, error)
}

type reservationService interface {
	Reserve(ctx context.Context, req dto.ReservationRequest) (dto.ReservationResponse, error)
}

// RoomHandler wires room catalog operations to HTTP endpoints.
type RoomHandler struct {
	rooms        roomService
	reservations reservationService
}

// NewRoomHandler constructs the handler.
func NewRoomHandler(rooms roomService, reservations reservationService) *RoomHandler {
	return &RoomHandler{rooms: rooms, reservations: reservations}
}

// List godoc
// @Summary List rooms
// @Tags Rooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	rooms, err := h.rooms.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rooms)
}

// Create godoc
// @Summary Create a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body dto.CreateRoomRequest true "Room payload"
// @Success 201 {object} response.Envelope
// @Router /rooms [post]
func (h *RoomHandler) Create(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	room, err := h.rooms.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, room)
}

// Update godoc
// @Summary Partially update a room
// @Tags Rooms
// @Accept json
// @Produce json
// @Param id path string true "Room ID"
// @Param payload body dto.UpdateRoomRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Router /rooms/{id} [patch]
func (h *RoomHandler) Update(c *gin.Context) {
	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	room, err := h.rooms.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room)
}

// Search godoc
// @Summary Search rooms grouped by status
// @Tags Rooms
// @Produce json
// @Param roomType query string false "Room type"
// @Param status query string false "Stored status filter"
// @Param minCapacity query int false "Minimum capacity"
// @Success 200 {object} response.Envelope
// @Router /rooms/search [get]
func (h *RoomHandler) Search(c *gin.Context) {
	filter := models.RoomSearchFilter{
		RoomType: strings.TrimSpace(c.Query("roomType")),
		Status:   strings.TrimSpace(c.Query("status")),
	}
	if raw := strings.TrimSpace(c.Query("minCapacity")); raw != "" {
		value, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "minCapacity must be an integer"))
			return
		}
		filter.MinCapacity = &value
	}
	result, err := h.rooms.Search(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Reserve godoc
// @Summary Reserve a room for a class, displacing the occupant if needed
// @Tags Rooms
// @Accept json
// @Produce json
// @Param payload body dto.ReservationRequest true "Reservation payload"
// @Success 200 {object} response.Envelope
// @Router /rooms/reserve [post]
func (h *RoomHandler) Reserve(c *gin.Context) {
	if h.reservations == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req dto.ReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	result, err := h.reservations.Reserve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}
