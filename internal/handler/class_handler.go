package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vocatech/room-allocation-api/internal/dto"
	"github.com/vocatech/room-allocation-api/internal/models"
	appErrors "github.com/vocatech/room-allocation-api/pkg/errors"
	"github.com/vocatech/room-allocation-api/pkg/response"
)

type classroomService interface {
	List(ctx context.Context) ([]models.Classroom, error)
	Create(ctx context.Context, req dto.CreateClassroomRequest) (models.Classroom, error)
	Update(ctx context.Context, id string, req dto.UpdateClassroomRequest) (models.Classroom, error)
	Release(ctx context.Context, id string, req dto.ReleaseRequest) (models.Classroom, error)
}

// ClassHandler wires class operations to HTTP endpoints.
type ClassHandler struct {
	classes classroomService
}

// NewClassHandler constructs the handler.
func NewClassHandler(classes classroomService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// List godoc
// @Summary List classes
// @Tags Classes
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classes [get]
func (h *ClassHandler) List(c *gin.Context) {
	classes, err := h.classes.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes)
}

// Create godoc
// @Summary Create a class and allocate a room
// @Tags Classes
// @Accept json
// @Produce json
// @Param payload body dto.CreateClassroomRequest true "Class payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope "No eligible room"
// @Router /classes [post]
func (h *ClassHandler) Create(c *gin.Context) {
	var req dto.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	class, err := h.classes.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, class)
}

// Update godoc
// @Summary Partially update a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body dto.UpdateClassroomRequest true "Fields to update"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Room unavailable"
// @Router /classes/{id} [patch]
func (h *ClassHandler) Update(c *gin.Context) {
	var req dto.UpdateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	class, err := h.classes.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}

// Release godoc
// @Summary Record a day release for a class
// @Tags Classes
// @Accept json
// @Produce json
// @Param id path string true "Class ID"
// @Param payload body dto.ReleaseRequest true "Release payload"
// @Success 200 {object} response.Envelope
// @Router /classes/{id}/release [post]
func (h *ClassHandler) Release(c *gin.Context) {
	var req dto.ReleaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
		return
	}
	class, err := h.classes.Release(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, class)
}
