package dto

import "github.com/vocatech/room-allocation-api/internal/models"

// ReservationResponse reports the outcome of a pre-emptive reservation.
type ReservationResponse struct {
	RequestingClassID    string            `json:"requestingClassId"`
	DisplacedClassID     *string           `json:"displacedClassId,omitempty"`
	NewRoomForRequesting string            `json:"newRoomForRequesting"`
	NewRoomForDisplaced  *string           `json:"newRoomForDisplaced,omitempty"`
	Status               models.RoomStatus `json:"status"`
	Message              string            `json:"message"`
}
