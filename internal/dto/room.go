package dto

import "github.com/vocatech/room-allocation-api/internal/models"

// CreateRoomRequest captures POST /rooms payload.
type CreateRoomRequest struct {
	Name         string        `json:"name" validate:"required"`
	RoomType     string        `json:"roomType" validate:"required"`
	Capacity     int           `json:"capacity" validate:"required,min=1"`
	Status       *string       `json:"status" validate:"omitempty"`
	BlockedDates []models.Date `json:"blockedDates" validate:"omitempty"`
}

// UpdateRoomRequest captures PATCH /rooms/:id payload. Nil fields are
// left untouched.
type UpdateRoomRequest struct {
	Name         *string        `json:"name" validate:"omitempty,min=1"`
	RoomType     *string        `json:"roomType" validate:"omitempty,min=1"`
	Capacity     *int           `json:"capacity" validate:"omitempty,min=1"`
	Status       *string        `json:"status" validate:"omitempty"`
	BlockedDates *[]models.Date `json:"blockedDates" validate:"omitempty"`
}

// ReservationRequest captures POST /rooms/reserve payload.
type ReservationRequest struct {
	RequestingClassID string `json:"requestingClassId" validate:"required"`
	DesiredRoomID     string `json:"desiredRoomId" validate:"required"`
}

// RoomSearchResponse groups matching rooms by their re-derived status.
// Every bucket is always present, possibly empty.
type RoomSearchResponse struct {
	Available []models.Room `json:"available"`
	Occupied  []models.Room `json:"occupied"`
	Reserved  []models.Room `json:"reserved"`
	Blocked   []models.Room `json:"blocked"`
}

// NewRoomSearchResponse returns a response with all buckets initialised.
func NewRoomSearchResponse() RoomSearchResponse {
	return RoomSearchResponse{
		Available: []models.Room{},
		Occupied:  []models.Room{},
		Reserved:  []models.Room{},
		Blocked:   []models.Room{},
	}
}

// Add places a room into the bucket matching its status.
func (r *RoomSearchResponse) Add(room models.Room) {
	switch room.Status {
	case models.RoomStatusOccupied:
		r.Occupied = append(r.Occupied, room)
	case models.RoomStatusReserved:
		r.Reserved = append(r.Reserved, room)
	case models.RoomStatusBlocked:
		r.Blocked = append(r.Blocked, room)
	default:
		r.Available = append(r.Available, room)
	}
}
