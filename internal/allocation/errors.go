package allocation

import (
	"fmt"

	"github.com/vocatech/room-allocation-api/internal/models"
)

// NotFoundError signals that a referenced room or class does not exist in
// the supplied snapshot.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// NoRoomAvailableError signals that no room satisfies capacity, status,
// block-date, and conflict constraints. NextAvailable, when set, is a
// best-effort hint for the earliest retry date.
type NoRoomAvailableError struct {
	NextAvailable *models.Date
}

func (e *NoRoomAvailableError) Error() string {
	if e.NextAvailable != nil {
		return fmt.Sprintf("no eligible room; next window from %s", e.NextAvailable)
	}
	return "no eligible room for the given criteria"
}

// DisplacementError signals that a reservation would evict an occupant
// that cannot be relocated anywhere else. The reservation is aborted.
type DisplacementError struct {
	OccupantID string
}

func (e *DisplacementError) Error() string {
	return fmt.Sprintf("cannot relocate occupant class %s to complete the reservation", e.OccupantID)
}
